package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestRegistrationStore_RegisterFlow(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	deadline := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, status, max_participants, registration_deadline`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "max_participants", "registration_deadline"}).
			AddRow("ev-1", "published", 100, deadline))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM event_registrations`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ev-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`SAVEPOINT insert_registration`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO event_registrations`).
		WithArgs("ev-1", "user-1", "TKT-ABCD1234", "registered", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-1"))
	mock.ExpectExec(`RELEASE SAVEPOINT insert_registration`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	store := NewRegistrationStore(db)
	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	snap, err := tx.LockEvent(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, "published", snap.Status)
	require.NotNil(t, snap.MaxParticipants)
	require.Equal(t, 100, *snap.MaxParticipants)
	require.NotNil(t, snap.RegistrationDeadline)
	require.True(t, snap.RegistrationDeadline.Equal(deadline))

	count, err := tx.CountActive(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 42, count)

	exists, err := tx.HasActive(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	require.False(t, exists)

	reg := &domain.Registration{
		EventID:      "ev-1",
		UserID:       "user-1",
		TicketNumber: "TKT-ABCD1234",
		Status:       domain.RegistrationStatusRegistered,
		RegisteredAt: time.Now(),
	}
	require.NoError(t, tx.Insert(ctx, reg))
	require.Equal(t, "reg-1", reg.ID)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationTx_LockEvent_NotFound(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, status, max_participants, registration_deadline`).
		WithArgs("ev-missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	store := NewRegistrationStore(db)
	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = tx.LockEvent(ctx, "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationTx_LockEvent_NullableFields(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, status, max_participants, registration_deadline`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "max_participants", "registration_deadline"}).
			AddRow("ev-1", "published", nil, nil))

	store := NewRegistrationStore(db)
	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	snap, err := tx.LockEvent(ctx, "ev-1")
	require.NoError(t, err)
	require.Nil(t, snap.MaxParticipants)
	require.Nil(t, snap.RegistrationDeadline)
}

func TestRegistrationTx_Insert_UniqueViolations(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{
			name:       "ticket number collision",
			constraint: "event_registrations_ticket_number_key",
			wantErr:    domain.ErrTicketCollision,
		},
		{
			name:       "duplicate active registration",
			constraint: "event_registrations_active_event_user_idx",
			wantErr:    domain.ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectExec(`SAVEPOINT insert_registration`).
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(`INSERT INTO event_registrations`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: tt.constraint})
			mock.ExpectExec(`ROLLBACK TO SAVEPOINT insert_registration`).
				WillReturnResult(sqlmock.NewResult(0, 0))

			store := NewRegistrationStore(db)
			tx, err := store.Begin(ctx)
			require.NoError(t, err)

			reg := &domain.Registration{
				EventID:      "ev-1",
				UserID:       "user-1",
				TicketNumber: "TKT-ABCD1234",
				Status:       domain.RegistrationStatusRegistered,
				RegisteredAt: time.Now(),
			}
			err = tx.Insert(ctx, reg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistrationStore_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()

	registeredAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Registration
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, ticket_number, status, registered_at, cancelled_at`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "ticket_number", "status", "registered_at", "cancelled_at"}).
						AddRow("reg-1", "ev-1", "user-1", "TKT-ABCD1234", "registered", registeredAt, nil))
			},
			want: &domain.Registration{
				ID:           "reg-1",
				EventID:      "ev-1",
				UserID:       "user-1",
				TicketNumber: "TKT-ABCD1234",
				Status:       "registered",
				RegisteredAt: registeredAt,
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, ticket_number, status, registered_at, cancelled_at`).
					WithArgs("ev-1", "user-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			store := NewRegistrationStore(db)
			got, err := store.GetByEventAndUser(ctx, "ev-1", "user-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationStore_Cancel(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`(?s)UPDATE event_registrations.+status = 'registered'`).
					WithArgs("reg-1", at).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not in registered status",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`(?s)UPDATE event_registrations.+status = 'registered'`).
					WithArgs("reg-1", at).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			store := NewRegistrationStore(db)
			err = store.Cancel(ctx, "reg-1", at)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationStore_ListByUserID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	registeredAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM event_registrations`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT r\.id, r\.event_id`).
		WithArgs("user-1", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "event_id", "user_id", "ticket_number", "status", "registered_at", "cancelled_at",
			"e_id", "title", "description", "college_id", "department_id", "category",
			"start_time", "end_time", "location", "registration_deadline", "max_participants",
			"created_by", "e_status", "created_at", "updated_at",
		}).AddRow(
			"reg-1", "ev-1", "user-1", "TKT-ABCD1234", "registered", registeredAt, nil,
			"ev-1", "Tech Fest", nil, "col-1", nil, "technical",
			start, end, nil, nil, nil,
			"admin-1", "published", registeredAt, registeredAt,
		))

	store := NewRegistrationStore(db)
	regs, total, err := store.ListByUserID(ctx, "user-1", domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, regs, 1)
	require.Equal(t, "TKT-ABCD1234", regs[0].TicketNumber)
	require.Equal(t, "Tech Fest", regs[0].Event.Title)
	require.Nil(t, regs[0].Event.MaxParticipants)
	require.NoError(t, mock.ExpectationsWereMet())
}
