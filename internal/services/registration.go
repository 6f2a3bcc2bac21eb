package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

type registrationService struct {
	store               domain.RegistrationStore
	eventRepo           domain.EventRepository
	userRepo            domain.UserRepository
	notificationService domain.NotificationService
	emailService        domain.EmailService
	logger              *slog.Logger
	contextTimeout      time.Duration
	now                 func() time.Time
}

func NewRegistrationService(store domain.RegistrationStore,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	notificationService domain.NotificationService,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		store:               store,
		eventRepo:           eventRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		emailService:        emailService,
		logger:              logger,
		contextTimeout:      timeout,
		now:                 time.Now,
	}
}

// generateTicketNumber builds a short human-readable ticket code from a
// random UUID.
func generateTicketNumber() string {
	id := uuid.NewString()
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

func (s *registrationService) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}
	defer tx.Rollback()

	// The event row stays locked for the rest of the transaction, so the
	// checks below cannot race with a concurrent registration.
	event, err := tx.LockEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}

	if event.Status != domain.EventStatusPublished {
		return nil, domain.ErrEventNotPublished
	}

	now := s.now()
	if event.RegistrationDeadline != nil && !event.RegistrationDeadline.After(now) {
		return nil, domain.ErrRegistrationClosed
	}

	if event.MaxParticipants != nil {
		count, err := tx.CountActive(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		if count >= *event.MaxParticipants {
			return nil, domain.ErrEventFull
		}
	}

	registered, err := tx.HasActive(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	if registered {
		return nil, domain.ErrAlreadyRegistered
	}

	reg := &domain.Registration{
		EventID:      eventID,
		UserID:       userID,
		TicketNumber: generateTicketNumber(),
		Status:       domain.RegistrationStatusRegistered,
		RegisteredAt: now,
	}
	if err := tx.Insert(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrTicketCollision) {
			// One retry with a fresh number covers the realistic case.
			reg.TicketNumber = generateTicketNumber()
			err = tx.Insert(ctx, reg)
		}
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyRegistered):
				return nil, domain.ErrAlreadyRegistered
			case errors.Is(err, domain.ErrTicketCollision), errors.Is(err, domain.ErrWriteFailed):
				return nil, domain.ErrWriteFailed
			default:
				return nil, fmt.Errorf("insert registration: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	s.notifyRegistered(ctx, reg)

	return reg, nil
}

// notifyRegistered delivers the in-app notification and ticket email. Both
// are best effort; the registration is already committed.
func (s *registrationService) notifyRegistered(ctx context.Context, reg *domain.Registration) {
	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		s.logger.Warn("skipping registration notifications", "registration_id", reg.ID, "error", err)
		return
	}

	n := &domain.Notification{
		UserID:  reg.UserID,
		Type:    domain.NotificationRegistrationConfirmed,
		Title:   "Registration confirmed",
		Body:    fmt.Sprintf("Your ticket %s for %s is confirmed.", reg.TicketNumber, event.Title),
		EventID: &reg.EventID,
	}
	if err := s.notificationService.Notify(ctx, n); err != nil {
		s.logger.Warn("failed to create registration notification", "registration_id", reg.ID, "error", err)
	}

	user, err := s.userRepo.GetByID(ctx, reg.UserID)
	if err != nil {
		s.logger.Warn("skipping ticket email", "registration_id", reg.ID, "error", err)
		return
	}
	if err := s.emailService.SendTicketConfirmation(ctx, user, event, reg); err != nil {
		s.logger.Warn("failed to send ticket email", "registration_id", reg.ID, "error", err)
	}
}

func (s *registrationService) CancelRegistration(ctx context.Context, registrationID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.store.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if reg.UserID != userID {
		return domain.ErrRegistrationNotFound
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return domain.ErrAlreadyCancelled
	}
	if reg.Status != domain.RegistrationStatusRegistered {
		return domain.ErrNotCancellable
	}

	if err := s.store.Cancel(ctx, registrationID, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAlreadyCancelled
		}
		return fmt.Errorf("cancel registration: %w", err)
	}

	n := &domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationRegistrationCancelled,
		Title:   "Registration cancelled",
		Body:    fmt.Sprintf("Your ticket %s has been cancelled.", reg.TicketNumber),
		EventID: &reg.EventID,
	}
	if err := s.notificationService.Notify(ctx, n); err != nil {
		s.logger.Warn("failed to create cancellation notification", "registration_id", registrationID, "error", err)
	}
	return nil
}

func (s *registrationService) GetMyRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.store.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) ListEventRegistrations(ctx context.Context, actor *domain.User, eventID string, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	if err := requireCollegeAccess(actor, event.CollegeID); err != nil {
		return nil, 0, err
	}

	regs, total, err := s.store.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return regs, total, nil
}

func (s *registrationService) ListUserRegistrations(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.RegistrationWithEvent, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, total, err := s.store.ListByUserID(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return regs, total, nil
}

func (s *registrationService) MarkAttended(ctx context.Context, actor *domain.User, registrationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.store.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if err := requireCollegeAccess(actor, event.CollegeID); err != nil {
		return err
	}
	if err := s.store.MarkAttended(ctx, registrationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("mark attended: %w", err)
	}
	return nil
}
