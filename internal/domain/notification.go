package domain

import (
	"context"
	"time"
)

// Notification types.
const (
	NotificationRegistrationConfirmed = "registration_confirmed"
	NotificationRegistrationCancelled = "registration_cancelled"
	NotificationEventUpdated          = "event_updated"
	NotificationEventCancelled        = "event_cancelled"
)

// Notification is an in-app message for a user.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	EventID   *string    `json:"event_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationRepository defines the interface for notification storage.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string, unreadOnly bool, params PaginationParams) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string, at time.Time) error
	MarkAllRead(ctx context.Context, userID string, at time.Time) error
	Delete(ctx context.Context, id, userID string) error
}

// NotificationService defines the business logic for in-app notifications.
type NotificationService interface {
	Notify(ctx context.Context, n *Notification) error
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, params PaginationParams) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id, userID string) error
}
