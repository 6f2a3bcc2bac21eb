package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistrationService(store *fakeRegistrationStore, events *fakeEventRepo, users *fakeUserRepo, notifications *fakeNotificationService, emails *fakeEmailService) *registrationService {
	svc := NewRegistrationService(store, events, users, notifications, emails, testLogger(), 2*time.Second)
	return svc.(*registrationService)
}

func seedPublishedEvent(store *fakeRegistrationStore, events *fakeEventRepo, max *int, deadline *time.Time) *domain.Event {
	e := &domain.Event{
		Title:                "Tech Fest",
		CollegeID:            "col-1",
		Category:             "technical",
		StartTime:            time.Now().Add(48 * time.Hour),
		EndTime:              time.Now().Add(56 * time.Hour),
		Status:               domain.EventStatusPublished,
		MaxParticipants:      max,
		RegistrationDeadline: deadline,
	}
	events.byID["ev-1"] = e
	e.ID = "ev-1"
	store.events["ev-1"] = &domain.EventSnapshot{
		ID:                   "ev-1",
		Status:               e.Status,
		MaxParticipants:      max,
		RegistrationDeadline: deadline,
	}
	return e
}

func TestRegistrationService_Register_Success(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	notifications := &fakeNotificationService{}
	emails := &fakeEmailService{}
	users.byID["user-1"] = &domain.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
	seedPublishedEvent(store, events, nil, nil)

	svc := newTestRegistrationService(store, events, users, notifications, emails)

	reg, err := svc.Register(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, reg.ID)
	assert.Equal(t, domain.RegistrationStatusRegistered, reg.Status)
	assert.True(t, strings.HasPrefix(reg.TicketNumber, "TKT-"))
	assert.Len(t, reg.TicketNumber, 12)
	assert.Equal(t, strings.ToUpper(reg.TicketNumber), reg.TicketNumber)

	require.Len(t, notifications.notified, 1)
	assert.Equal(t, domain.NotificationRegistrationConfirmed, notifications.notified[0].Type)
	require.Len(t, emails.tickets, 1)
}

func TestRegistrationService_Register_EventNotFound(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	svc := newTestRegistrationService(store, newFakeEventRepo(), newFakeUserRepo(), &fakeNotificationService{}, &fakeEmailService{})

	_, err := svc.Register(ctx, "ev-missing", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationService_Register_NotPublished(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{domain.EventStatusDraft, domain.EventStatusCancelled, domain.EventStatusCompleted} {
		t.Run(status, func(t *testing.T) {
			store := newFakeRegistrationStore()
			store.events["ev-1"] = &domain.EventSnapshot{ID: "ev-1", Status: status}
			svc := newTestRegistrationService(store, newFakeEventRepo(), newFakeUserRepo(), &fakeNotificationService{}, &fakeEmailService{})

			_, err := svc.Register(ctx, "ev-1", "user-1")
			assert.ErrorIs(t, err, domain.ErrEventNotPublished)
		})
	}
}

func TestRegistrationService_Register_DeadlineBoundary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		wantErr  error
	}{
		{name: "before deadline", deadline: now.Add(time.Minute)},
		{name: "exactly at deadline", deadline: now, wantErr: domain.ErrRegistrationClosed},
		{name: "after deadline", deadline: now.Add(-time.Minute), wantErr: domain.ErrRegistrationClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeRegistrationStore()
			events := newFakeEventRepo()
			users := newFakeUserRepo()
			users.byID["user-1"] = &domain.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
			dl := tt.deadline
			seedPublishedEvent(store, events, nil, &dl)

			svc := newTestRegistrationService(store, events, users, &fakeNotificationService{}, &fakeEmailService{})
			svc.now = func() time.Time { return now }

			_, err := svc.Register(ctx, "ev-1", "user-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRegistrationService_Register_EventFull(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	max := 1
	seedPublishedEvent(store, events, &max, nil)
	store.registrations["reg-0"] = &domain.Registration{
		ID: "reg-0", EventID: "ev-1", UserID: "user-0", Status: domain.RegistrationStatusRegistered,
	}

	svc := newTestRegistrationService(store, events, users, &fakeNotificationService{}, &fakeEmailService{})

	_, err := svc.Register(ctx, "ev-1", "user-1")
	assert.ErrorIs(t, err, domain.ErrEventFull)
}

func TestRegistrationService_Register_CancelledSlotReopens(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	users.byID["user-1"] = &domain.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
	max := 1
	seedPublishedEvent(store, events, &max, nil)
	// A cancelled registration does not count against capacity.
	store.registrations["reg-0"] = &domain.Registration{
		ID: "reg-0", EventID: "ev-1", UserID: "user-0", Status: domain.RegistrationStatusCancelled,
	}

	svc := newTestRegistrationService(store, events, users, &fakeNotificationService{}, &fakeEmailService{})

	reg, err := svc.Register(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusRegistered, reg.Status)
}

func TestRegistrationService_Register_AlreadyRegistered(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{domain.RegistrationStatusRegistered, domain.RegistrationStatusAttended} {
		t.Run(status, func(t *testing.T) {
			store := newFakeRegistrationStore()
			events := newFakeEventRepo()
			seedPublishedEvent(store, events, nil, nil)
			store.registrations["reg-0"] = &domain.Registration{
				ID: "reg-0", EventID: "ev-1", UserID: "user-1", Status: status,
			}

			svc := newTestRegistrationService(store, events, newFakeUserRepo(), &fakeNotificationService{}, &fakeEmailService{})

			_, err := svc.Register(ctx, "ev-1", "user-1")
			assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		})
	}
}

func TestRegistrationService_Register_ReregisterAfterCancel(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	users.byID["user-1"] = &domain.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
	seedPublishedEvent(store, events, nil, nil)

	svc := newTestRegistrationService(store, events, users, &fakeNotificationService{}, &fakeEmailService{})

	first, err := svc.Register(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	require.NoError(t, svc.CancelRegistration(ctx, first.ID, "user-1"))

	second, err := svc.Register(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.TicketNumber, second.TicketNumber)
}

func TestRegistrationService_Register_TicketCollisionRetry(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	users.byID["user-1"] = &domain.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
	seedPublishedEvent(store, events, nil, nil)
	store.collideTimes = 1

	svc := newTestRegistrationService(store, events, users, &fakeNotificationService{}, &fakeEmailService{})

	reg, err := svc.Register(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, reg.ID)
}

func TestRegistrationService_Register_TicketCollisionTwiceFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	seedPublishedEvent(store, events, nil, nil)
	store.collideTimes = 2

	svc := newTestRegistrationService(store, events, newFakeUserRepo(), &fakeNotificationService{}, &fakeEmailService{})

	_, err := svc.Register(ctx, "ev-1", "user-1")
	assert.ErrorIs(t, err, domain.ErrWriteFailed)
	assert.Equal(t, 0, store.activeCount("ev-1"))
}

func TestRegistrationService_Register_CapacityUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	max := 5
	seedPublishedEvent(store, events, &max, nil)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("user-%d", i)
		users.byID[id] = &domain.User{ID: id, Name: id, Email: id + "@example.com"}
	}

	svc := newTestRegistrationService(store, events, users, &fakeNotificationService{}, &fakeEmailService{})

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := svc.Register(ctx, "ev-1", userID)
			results <- err
		}(fmt.Sprintf("user-%d", i))
	}
	wg.Wait()
	close(results)

	succeeded, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, domain.ErrEventFull):
			full++
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, full)
	assert.Equal(t, 5, store.activeCount("ev-1"))
}

func TestRegistrationService_CancelRegistration(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	users.byID["user-1"] = &domain.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
	seedPublishedEvent(store, events, nil, nil)
	notifications := &fakeNotificationService{}

	svc := newTestRegistrationService(store, events, users, notifications, &fakeEmailService{})

	reg, err := svc.Register(ctx, "ev-1", "user-1")
	require.NoError(t, err)

	t.Run("wrong user", func(t *testing.T) {
		err := svc.CancelRegistration(ctx, reg.ID, "user-2")
		assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.CancelRegistration(ctx, reg.ID, "user-1"))
		stored, err := store.GetByID(ctx, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusCancelled, stored.Status)
		assert.NotNil(t, stored.CancelledAt)
	})

	t.Run("already cancelled", func(t *testing.T) {
		err := svc.CancelRegistration(ctx, reg.ID, "user-1")
		assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	})

	t.Run("unknown registration", func(t *testing.T) {
		err := svc.CancelRegistration(ctx, "reg-missing", "user-1")
		assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
	})
}

func TestRegistrationService_CancelAttendedRegistration(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	users.byID["user-1"] = &domain.User{ID: "user-1", Name: "Asha", Email: "asha@example.com"}
	seedPublishedEvent(store, events, nil, nil)

	svc := newTestRegistrationService(store, events, users, &fakeNotificationService{}, &fakeEmailService{})

	reg, err := svc.Register(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	staff := &domain.User{ID: "sa", Role: domain.RoleSuperadmin}
	require.NoError(t, svc.MarkAttended(ctx, staff, reg.ID))

	err = svc.CancelRegistration(ctx, reg.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotCancellable)

	stored, err := store.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusAttended, stored.Status)
}

func TestRegistrationService_Register_InsertStorageError(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	seedPublishedEvent(store, events, nil, nil)
	store.insertErr = errors.New("connection reset")

	svc := newTestRegistrationService(store, events, newFakeUserRepo(), &fakeNotificationService{}, &fakeEmailService{})

	_, err := svc.Register(ctx, "ev-1", "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrWriteFailed)
	assert.ErrorContains(t, err, "insert registration")
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 0, store.activeCount("ev-1"))
}

func TestRegistrationService_ListEventRegistrations_Scoping(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	seedPublishedEvent(store, events, nil, nil)
	store.registrations["reg-1"] = &domain.Registration{
		ID: "reg-1", EventID: "ev-1", UserID: "user-1", Status: domain.RegistrationStatusRegistered,
	}

	svc := newTestRegistrationService(store, events, newFakeUserRepo(), &fakeNotificationService{}, &fakeEmailService{})

	col1 := "col-1"
	col2 := "col-2"
	tests := []struct {
		name    string
		actor   *domain.User
		wantErr error
	}{
		{name: "superadmin", actor: &domain.User{ID: "sa", Role: domain.RoleSuperadmin}},
		{name: "admin same college", actor: &domain.User{ID: "ad", Role: domain.RoleAdmin, CollegeID: &col1}},
		{name: "admin other college", actor: &domain.User{ID: "ad2", Role: domain.RoleAdmin, CollegeID: &col2}, wantErr: domain.ErrForbidden},
		{name: "regular user", actor: &domain.User{ID: "u", Role: domain.RoleUser}, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regs, total, err := svc.ListEventRegistrations(ctx, tt.actor, "ev-1", domain.PaginationParams{Page: 1, PageSize: 20})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, total)
			assert.Len(t, regs, 1)
		})
	}
}

func TestRegistrationService_MarkAttended(t *testing.T) {
	ctx := context.Background()
	store := newFakeRegistrationStore()
	events := newFakeEventRepo()
	seedPublishedEvent(store, events, nil, nil)
	store.registrations["reg-1"] = &domain.Registration{
		ID: "reg-1", EventID: "ev-1", UserID: "user-1", Status: domain.RegistrationStatusRegistered,
	}

	svc := newTestRegistrationService(store, events, newFakeUserRepo(), &fakeNotificationService{}, &fakeEmailService{})

	admin := &domain.User{ID: "sa", Role: domain.RoleSuperadmin}
	require.NoError(t, svc.MarkAttended(ctx, admin, "reg-1"))

	stored, err := store.GetByID(ctx, "reg-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusAttended, stored.Status)

	// Attending twice is rejected.
	err = svc.MarkAttended(ctx, admin, "reg-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
