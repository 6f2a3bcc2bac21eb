package domain

import (
	"context"
	"time"
)

// College represents a registered institution (tenant).
// swagger:model College
type College struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ShortName    *string   `json:"short_name"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	Country      *string   `json:"country"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	WebsiteURL   *string   `json:"website_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CollegeUpdate carries the optional fields for a partial college update.
// Nil fields are left unchanged.
type CollegeUpdate struct {
	Name         *string
	ShortName    *string
	City         *string
	State        *string
	Country      *string
	ContactEmail *string
	ContactPhone *string
	WebsiteURL   *string
}

// CollegeRepository defines the interface for college storage.
// Deletes are soft: rows are flagged is_deleted and excluded from reads.
type CollegeRepository interface {
	Create(ctx context.Context, c *College) error
	GetByID(ctx context.Context, id string) (*College, error)
	List(ctx context.Context, search string, params PaginationParams) ([]*College, int, error)
	Update(ctx context.Context, id string, upd CollegeUpdate) (*College, error)
	Delete(ctx context.Context, id string) error
}

// CollegeService defines the business logic for college management.
type CollegeService interface {
	CreateCollege(ctx context.Context, c *College) error
	GetCollegeByID(ctx context.Context, id string) (*College, error)
	ListColleges(ctx context.Context, search string, params PaginationParams) ([]*College, int, error)
	UpdateCollege(ctx context.Context, id string, upd CollegeUpdate) (*College, error)
	DeleteCollege(ctx context.Context, id string) error
}
