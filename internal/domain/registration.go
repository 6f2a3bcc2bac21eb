package domain

import (
	"context"
	"errors"
	"time"
)

// Registration statuses. Cancelled registrations free their capacity slot.
const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusCancelled  = "cancelled"
	RegistrationStatusAttended   = "attended"
)

var (
	// ErrEventNotPublished is returned when registering for an event that
	// is not in the published state.
	ErrEventNotPublished = errors.New("event is not published")

	// ErrRegistrationClosed is returned when the registration deadline has
	// passed.
	ErrRegistrationClosed = errors.New("registration deadline has passed")

	// ErrEventFull is returned when the event has reached its participant
	// limit.
	ErrEventFull = errors.New("event is full")

	// ErrAlreadyRegistered is returned when the user already holds an
	// active registration for the event.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrRegistrationNotFound is returned when a registration does not
	// exist or does not belong to the requesting user.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrAlreadyCancelled is returned when cancelling a registration that
	// is already cancelled.
	ErrAlreadyCancelled = errors.New("registration already cancelled")

	// ErrNotCancellable is returned when cancelling a registration whose
	// status is not registered, such as attended.
	ErrNotCancellable = errors.New("registration cannot be cancelled")

	// ErrWriteFailed is returned when the registration insert cannot be
	// completed, including an unresolved ticket number collision.
	ErrWriteFailed = errors.New("registration could not be saved")
)

// Registration is a user's ticket for an event.
// swagger:model Registration
type Registration struct {
	ID           string     `json:"id"`
	EventID      string     `json:"event_id"`
	UserID       string     `json:"user_id"`
	TicketNumber string     `json:"ticket_number"`
	Status       string     `json:"status"`
	RegisteredAt time.Time  `json:"registered_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// RegistrationWithEvent joins a registration with its event for listings.
type RegistrationWithEvent struct {
	Registration
	Event Event `json:"event"`
}

// EventSnapshot holds the event fields the registration transaction reads
// under lock.
type EventSnapshot struct {
	ID                   string
	Status               string
	MaxParticipants      *int
	RegistrationDeadline *time.Time
}

// RegistrationTx is a single registration transaction. The event row stays
// locked from LockEvent until Commit or Rollback.
type RegistrationTx interface {
	// LockEvent loads the event row with a row-level write lock, returning
	// ErrNotFound when the event does not exist or is soft-deleted.
	LockEvent(ctx context.Context, eventID string) (*EventSnapshot, error)

	// CountActive returns the number of non-cancelled registrations for
	// the event.
	CountActive(ctx context.Context, eventID string) (int, error)

	// HasActive reports whether the user holds a non-cancelled
	// registration for the event.
	HasActive(ctx context.Context, eventID, userID string) (bool, error)

	// Insert writes a new registration row. A unique-violation on the
	// ticket number is reported as ErrTicketCollision.
	Insert(ctx context.Context, r *Registration) error

	Commit() error
	Rollback() error
}

// ErrTicketCollision signals a ticket number unique-violation inside the
// registration transaction. The caller retries with a fresh number.
var ErrTicketCollision = errors.New("ticket number collision")

// RegistrationStore defines the interface for registration storage.
type RegistrationStore interface {
	// Begin opens a registration transaction.
	Begin(ctx context.Context) (RegistrationTx, error)

	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Registration, int, error)
	ListByUserID(ctx context.Context, userID string, params PaginationParams) ([]*RegistrationWithEvent, int, error)
	Cancel(ctx context.Context, id string, at time.Time) error
	MarkAttended(ctx context.Context, id string) error
}

// RegistrationService defines the business logic for event registration.
type RegistrationService interface {
	// Register creates a registration for the user, enforcing publication,
	// deadline, capacity and duplicate rules atomically.
	Register(ctx context.Context, eventID, userID string) (*Registration, error)

	// CancelRegistration cancels the user's registration, freeing its
	// capacity slot.
	CancelRegistration(ctx context.Context, registrationID, userID string) error

	// GetMyRegistration returns the user's active registration for the
	// event, or ErrRegistrationNotFound.
	GetMyRegistration(ctx context.Context, eventID, userID string) (*Registration, error)

	ListEventRegistrations(ctx context.Context, actor *User, eventID string, params PaginationParams) ([]*Registration, int, error)
	ListUserRegistrations(ctx context.Context, userID string, params PaginationParams) ([]*RegistrationWithEvent, int, error)
	MarkAttended(ctx context.Context, actor *User, registrationID string) error
}
