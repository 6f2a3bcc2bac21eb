package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInviteExpired is returned when consuming an invite past its
	// expiry.
	ErrInviteExpired = errors.New("invite has expired")

	// ErrInviteUsed is returned when consuming an invite twice.
	ErrInviteUsed = errors.New("invite already used")
)

// InviteToken grants a role within a college to whoever signs up with it.
type InviteToken struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CollegeID *string    `json:"college_id"`
	CreatedBy string     `json:"created_by"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// InviteRepository defines the interface for invite storage.
type InviteRepository interface {
	Create(ctx context.Context, inv *InviteToken) error
	GetByToken(ctx context.Context, token string) (*InviteToken, error)
	GetByID(ctx context.Context, id string) (*InviteToken, error)
	MarkUsed(ctx context.Context, id string, at time.Time) error
	ListByCreator(ctx context.Context, creatorID string, params PaginationParams) ([]*InviteToken, int, error)
	Delete(ctx context.Context, id string) error
}

// InviteService defines the business logic for admin invites.
type InviteService interface {
	// CreateInvite mints an invite and emails it to the invitee. Admins
	// may only invite into their own college.
	CreateInvite(ctx context.Context, actor *User, email, role string, collegeID *string) (*InviteToken, error)

	// ConsumeInvite validates a token and marks it used, returning the
	// granted role and college.
	ConsumeInvite(ctx context.Context, token string) (*InviteToken, error)

	// ValidateInvite checks a token without consuming it, so signup forms
	// can prefill the invited email and role.
	ValidateInvite(ctx context.Context, token string) (*InviteToken, error)

	ListInvites(ctx context.Context, actor *User, params PaginationParams) ([]*InviteToken, int, error)

	// DeleteInvite revokes an unused invite.
	DeleteInvite(ctx context.Context, actor *User, id string) error
}
