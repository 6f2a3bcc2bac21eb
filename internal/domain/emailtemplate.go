package domain

import (
	"context"
	"time"
)

// EmailTemplate is a stored campaign template with {{placeholder}} slots.
type EmailTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	BodyHTML  string    `json:"body_html"`
	BodyText  string    `json:"body_text"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailTemplateUpdate carries the optional fields for a partial update.
type EmailTemplateUpdate struct {
	Name     *string
	Subject  *string
	BodyHTML *string
	BodyText *string
}

// EmailTemplateRepository defines the interface for template storage.
type EmailTemplateRepository interface {
	Create(ctx context.Context, t *EmailTemplate) error
	GetByID(ctx context.Context, id string) (*EmailTemplate, error)
	List(ctx context.Context, params PaginationParams) ([]*EmailTemplate, int, error)
	Update(ctx context.Context, id string, upd EmailTemplateUpdate) (*EmailTemplate, error)
	Delete(ctx context.Context, id string) error
}

// EmailTemplateService defines the business logic for campaign templates.
type EmailTemplateService interface {
	CreateTemplate(ctx context.Context, actor *User, t *EmailTemplate) error
	GetTemplateByID(ctx context.Context, id string) (*EmailTemplate, error)
	ListTemplates(ctx context.Context, actor *User, params PaginationParams) ([]*EmailTemplate, int, error)
	UpdateTemplate(ctx context.Context, actor *User, id string, upd EmailTemplateUpdate) (*EmailTemplate, error)
	DeleteTemplate(ctx context.Context, actor *User, id string) error
}
