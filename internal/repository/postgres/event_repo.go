package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

const eventColumns = `id, title, description, college_id, department_id, category,
		start_time, end_time, location, registration_deadline, max_participants,
		created_by, status, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, college_id, department_id, category,
			start_time, end_time, location, registration_deadline, max_participants,
			created_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, nullString(e.Description), e.CollegeID, nullString(e.DepartmentID), e.Category,
		e.StartTime, e.EndTime, nullString(e.Location), nullTime(e.RegistrationDeadline), nullInt(e.MaxParticipants),
		e.CreatedBy, e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1 AND is_deleted = false
	`, eventColumns)
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	whereClauses := []string{"is_deleted = false"}
	args := []interface{}{}
	n := 1
	if filter.CollegeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("college_id = $%d", n))
		args = append(args, filter.CollegeID)
		n++
	}
	if filter.DepartmentID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("department_id = $%d", n))
		args = append(args, filter.DepartmentID)
		n++
	}
	if filter.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", n))
		args = append(args, filter.Category)
		n++
	}
	if filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
		n++
	}
	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	where := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events WHERE %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY start_time ASC
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEventRows(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Title != nil {
		addSet("title", *upd.Title)
	}
	if upd.Description != nil {
		addSet("description", *upd.Description)
	}
	if upd.DepartmentID != nil {
		addSet("department_id", *upd.DepartmentID)
	}
	if upd.Category != nil {
		addSet("category", *upd.Category)
	}
	if upd.StartTime != nil {
		addSet("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		addSet("end_time", *upd.EndTime)
	}
	if upd.Location != nil {
		addSet("location", *upd.Location)
	}
	if upd.RegistrationDeadline != nil {
		addSet("registration_deadline", *upd.RegistrationDeadline)
	}
	if upd.MaxParticipants != nil {
		addSet("max_participants", *upd.MaxParticipants)
	}
	if upd.Status != nil {
		addSet("status", *upd.Status)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d AND is_deleted = false
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	return scanEvent(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE events SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var description, departmentID, location sql.NullString
	var deadline sql.NullTime
	var maxParticipants sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Title, &description, &e.CollegeID, &departmentID, &e.Category,
		&e.StartTime, &e.EndTime, &location, &deadline, &maxParticipants,
		&e.CreatedBy, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Description = nullStringPtr(description)
	e.DepartmentID = nullStringPtr(departmentID)
	e.Location = nullStringPtr(location)
	e.RegistrationDeadline = nullTimePtr(deadline)
	e.MaxParticipants = nullIntPtr(maxParticipants)
	return e, nil
}

func scanEventRows(rows *sql.Rows) (*domain.Event, error) {
	e := &domain.Event{}
	var description, departmentID, location sql.NullString
	var deadline sql.NullTime
	var maxParticipants sql.NullInt64
	err := rows.Scan(
		&e.ID, &e.Title, &description, &e.CollegeID, &departmentID, &e.Category,
		&e.StartTime, &e.EndTime, &location, &deadline, &maxParticipants,
		&e.CreatedBy, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Description = nullStringPtr(description)
	e.DepartmentID = nullStringPtr(departmentID)
	e.Location = nullStringPtr(location)
	e.RegistrationDeadline = nullTimePtr(deadline)
	e.MaxParticipants = nullIntPtr(maxParticipants)
	return e, nil
}
