package domain

import (
	"context"
	"time"
)

// Event publication statuses. Only published events accept registrations.
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// Event represents a college event.
// swagger:model Event
type Event struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          *string    `json:"description"`
	CollegeID            string     `json:"college_id"`
	DepartmentID         *string    `json:"department_id"`
	Category             string     `json:"category"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              time.Time  `json:"end_time"`
	Location             *string    `json:"location"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	MaxParticipants      *int       `json:"max_participants"`
	CreatedBy            string     `json:"created_by"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// EventFilter narrows event listings. Zero values mean "no filter".
type EventFilter struct {
	CollegeID    string
	DepartmentID string
	Category     string
	Status       string
	Search       string
}

// EventUpdate carries the optional fields for a partial event update.
// Nil fields are left unchanged.
type EventUpdate struct {
	Title                *string
	Description          *string
	DepartmentID         *string
	Category             *string
	StartTime            *time.Time
	EndTime              *time.Time
	Location             *string
	RegistrationDeadline *time.Time
	MaxParticipants      *int
	Status               *string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, actor *User, e *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, actor *User, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, actor *User, id string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, actor *User, id string) error
}
