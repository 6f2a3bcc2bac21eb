package domain

import (
	"context"
	"time"
)

// Campaign statuses.
const (
	CampaignStatusDraft   = "draft"
	CampaignStatusSending = "sending"
	CampaignStatusSent    = "sent"
	CampaignStatusFailed  = "failed"
)

// Campaign is a bulk email send targeting an event's registrants.
type Campaign struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	TemplateID string     `json:"template_id"`
	EventID    string     `json:"event_id"`
	Status     string     `json:"status"`
	SentCount  int        `json:"sent_count"`
	FailCount  int        `json:"fail_count"`
	CreatedBy  string     `json:"created_by"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CampaignRepository defines the interface for campaign storage.
type CampaignRepository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, params PaginationParams) ([]*Campaign, int, error)
	UpdateStatus(ctx context.Context, id, status string, sentCount, failCount int, sentAt *time.Time) error
}

// CampaignService defines the business logic for email campaigns.
type CampaignService interface {
	CreateCampaign(ctx context.Context, actor *User, c *Campaign) error
	GetCampaignByID(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context, actor *User, params PaginationParams) ([]*Campaign, int, error)

	// SendCampaign renders the template for every active registrant of
	// the campaign's event and sends the emails, recording per-recipient
	// outcomes on the campaign row.
	SendCampaign(ctx context.Context, actor *User, id string) (*Campaign, error)
}
