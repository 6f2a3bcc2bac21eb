package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func intPtr(n int) *int          { return &n }
func timePtr(t time.Time) *time.Time { return &t }

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	createdAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:           "Tech Fest",
				CollegeID:       "col-1",
				Category:        "technical",
				StartTime:       start,
				EndTime:         end,
				MaxParticipants: intPtr(200),
				CreatedBy:       "admin-1",
				Status:          domain.EventStatusDraft,
				CreatedAt:       createdAt,
				UpdatedAt:       createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:     "Tech Fest",
				CollegeID: "col-1",
				Category:  "technical",
				StartTime: start,
				EndTime:   end,
				CreatedBy: "admin-1",
				Status:    domain.EventStatusDraft,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	createdAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	deadline := start.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, college_id`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{
						"id", "title", "description", "college_id", "department_id", "category",
						"start_time", "end_time", "location", "registration_deadline", "max_participants",
						"created_by", "status", "created_at", "updated_at",
					}).AddRow(
						"ev-1", "Tech Fest", "Annual fest", "col-1", "dep-1", "technical",
						start, end, "Main Auditorium", deadline, 200,
						"admin-1", "published", createdAt, createdAt,
					))
			},
			want: &domain.Event{
				ID:                   "ev-1",
				Title:                "Tech Fest",
				Description:          strPtr("Annual fest"),
				CollegeID:            "col-1",
				DepartmentID:         strPtr("dep-1"),
				Category:             "technical",
				StartTime:            start,
				EndTime:              end,
				Location:             strPtr("Main Auditorium"),
				RegistrationDeadline: timePtr(deadline),
				MaxParticipants:      intPtr(200),
				CreatedBy:            "admin-1",
				Status:               "published",
				CreatedAt:            createdAt,
				UpdatedAt:            createdAt,
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, college_id`).
					WithArgs("ev-missing").
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
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
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

func TestEventRepository_List_Filters(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	createdAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
		WithArgs("col-1", "published", "%fest%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, title, description, college_id`).
		WithArgs("col-1", "published", "%fest%", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "college_id", "department_id", "category",
			"start_time", "end_time", "location", "registration_deadline", "max_participants",
			"created_by", "status", "created_at", "updated_at",
		}).AddRow(
			"ev-1", "Tech Fest", nil, "col-1", nil, "technical",
			start, end, nil, nil, nil,
			"admin-1", "published", createdAt, createdAt,
		))

	repo := NewEventRepository(db)
	filter := domain.EventFilter{CollegeID: "col-1", Status: "published", Search: "fest"}
	events, total, err := repo.List(ctx, filter, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, events, 1)
	require.Equal(t, "Tech Fest", events[0].Title)
	require.Nil(t, events[0].MaxParticipants)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	createdAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE events SET`).
		WithArgs(300, "published", "ev-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "college_id", "department_id", "category",
			"start_time", "end_time", "location", "registration_deadline", "max_participants",
			"created_by", "status", "created_at", "updated_at",
		}).AddRow(
			"ev-1", "Tech Fest", nil, "col-1", nil, "technical",
			start, end, nil, nil, 300,
			"admin-1", "published", createdAt, createdAt,
		))

	repo := NewEventRepository(db)
	got, err := repo.Update(ctx, "ev-1", domain.EventUpdate{
		Status:          strPtr("published"),
		MaxParticipants: intPtr(300),
	})
	require.NoError(t, err)
	require.Equal(t, "published", got.Status)
	require.Equal(t, 300, *got.MaxParticipants)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET is_deleted = true`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET is_deleted = true`).
					WithArgs("ev-1").
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
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, "ev-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
