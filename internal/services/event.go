package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

var validEventStatuses = map[string]bool{
	domain.EventStatusDraft:     true,
	domain.EventStatusPublished: true,
	domain.EventStatusCancelled: true,
	domain.EventStatusCompleted: true,
}

type eventService struct {
	eventRepo      domain.EventRepository
	collegeRepo    domain.CollegeRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	collegeRepo domain.CollegeRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		collegeRepo:    collegeRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actor *domain.User, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return err
	}
	if actor.Role == domain.RoleAdmin {
		// Admins create events only within their own college.
		if actor.CollegeID == nil || *actor.CollegeID != event.CollegeID {
			return domain.ErrForbidden
		}
	}

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return domain.ErrInvalidInput
	}
	if !event.EndTime.After(event.StartTime) {
		return domain.ErrInvalidInput
	}
	if event.MaxParticipants != nil && *event.MaxParticipants <= 0 {
		return domain.ErrInvalidInput
	}
	if event.RegistrationDeadline != nil && event.RegistrationDeadline.After(event.StartTime) {
		return domain.ErrInvalidInput
	}

	if _, err := s.collegeRepo.GetByID(ctx, event.CollegeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("get college: %w", err)
	}

	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}
	if !validEventStatuses[event.Status] {
		return domain.ErrInvalidInput
	}
	event.CreatedBy = actor.ID
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, actor *domain.User, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Unauthenticated and regular visitors only see published events.
	if actor == nil || actor.Role == domain.RoleUser {
		filter.Status = domain.EventStatusPublished
	}
	if actor != nil && actor.Role == domain.RoleAdmin {
		if actor.CollegeID != nil {
			filter.CollegeID = *actor.CollegeID
		}
	}

	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, actor *domain.User, id string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := requireCollegeAccess(actor, event.CollegeID); err != nil {
		return nil, err
	}

	if upd.Status != nil && !validEventStatuses[*upd.Status] {
		return nil, domain.ErrInvalidInput
	}
	if upd.MaxParticipants != nil && *upd.MaxParticipants <= 0 {
		return nil, domain.ErrInvalidInput
	}
	start := event.StartTime
	if upd.StartTime != nil {
		start = *upd.StartTime
	}
	end := event.EndTime
	if upd.EndTime != nil {
		end = *upd.EndTime
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidInput
	}

	updated, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := requireCollegeAccess(actor, event.CollegeID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
