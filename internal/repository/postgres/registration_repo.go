package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

const pqUniqueViolation = "23505"

type registrationStore struct {
	DB *sql.DB
}

func NewRegistrationStore(db *sql.DB) domain.RegistrationStore {
	return &registrationStore{
		DB: db,
	}
}

func (s *registrationStore) Begin(ctx context.Context) (domain.RegistrationTx, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &registrationTx{tx: tx}, nil
}

func (s *registrationStore) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, ticket_number, status, registered_at, cancelled_at
		FROM event_registrations
		WHERE id = $1
	`
	return scanRegistration(s.DB.QueryRowContext(ctx, query, id))
}

func (s *registrationStore) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, ticket_number, status, registered_at, cancelled_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2 AND status <> 'cancelled'
	`
	return scanRegistration(s.DB.QueryRowContext(ctx, query, eventID, userID))
}

func (s *registrationStore) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`
	if err := s.DB.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, user_id, ticket_number, status, registered_at, cancelled_at
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY registered_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.DB.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := []*domain.Registration{}
	for rows.Next() {
		reg, err := scanRegistrationRows(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (s *registrationStore) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.RegistrationWithEvent, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM event_registrations WHERE user_id = $1`
	if err := s.DB.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT r.id, r.event_id, r.user_id, r.ticket_number, r.status, r.registered_at, r.cancelled_at,
			e.id, e.title, e.description, e.college_id, e.department_id, e.category,
			e.start_time, e.end_time, e.location, e.registration_deadline, e.max_participants,
			e.created_by, e.status, e.created_at, e.updated_at
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.registered_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.DB.QueryContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := []*domain.RegistrationWithEvent{}
	for rows.Next() {
		rwe := &domain.RegistrationWithEvent{}
		var cancelledAt sql.NullTime
		var description, departmentID, location sql.NullString
		var deadline sql.NullTime
		var maxParticipants sql.NullInt64
		err := rows.Scan(
			&rwe.ID, &rwe.EventID, &rwe.UserID, &rwe.TicketNumber, &rwe.Status, &rwe.RegisteredAt, &cancelledAt,
			&rwe.Event.ID, &rwe.Event.Title, &description, &rwe.Event.CollegeID, &departmentID, &rwe.Event.Category,
			&rwe.Event.StartTime, &rwe.Event.EndTime, &location, &deadline, &maxParticipants,
			&rwe.Event.CreatedBy, &rwe.Event.Status, &rwe.Event.CreatedAt, &rwe.Event.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		rwe.CancelledAt = nullTimePtr(cancelledAt)
		rwe.Event.Description = nullStringPtr(description)
		rwe.Event.DepartmentID = nullStringPtr(departmentID)
		rwe.Event.Location = nullStringPtr(location)
		rwe.Event.RegistrationDeadline = nullTimePtr(deadline)
		rwe.Event.MaxParticipants = nullIntPtr(maxParticipants)
		regs = append(regs, rwe)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (s *registrationStore) Cancel(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE event_registrations
		SET status = 'cancelled', cancelled_at = $2
		WHERE id = $1 AND status = 'registered'
	`
	res, err := s.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *registrationStore) MarkAttended(ctx context.Context, id string) error {
	query := `
		UPDATE event_registrations
		SET status = 'attended'
		WHERE id = $1 AND status = 'registered'
	`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type registrationTx struct {
	tx *sql.Tx
}

func (t *registrationTx) LockEvent(ctx context.Context, eventID string) (*domain.EventSnapshot, error) {
	query := `
		SELECT id, status, max_participants, registration_deadline
		FROM events
		WHERE id = $1 AND is_deleted = false
		FOR UPDATE
	`
	snap := &domain.EventSnapshot{}
	var maxParticipants sql.NullInt64
	var deadline sql.NullTime
	err := t.tx.QueryRowContext(ctx, query, eventID).
		Scan(&snap.ID, &snap.Status, &maxParticipants, &deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	snap.MaxParticipants = nullIntPtr(maxParticipants)
	snap.RegistrationDeadline = nullTimePtr(deadline)
	return snap, nil
}

func (t *registrationTx) CountActive(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM event_registrations
		WHERE event_id = $1 AND status <> 'cancelled'
	`
	var count int
	if err := t.tx.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (t *registrationTx) HasActive(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_registrations
			WHERE event_id = $1 AND user_id = $2 AND status <> 'cancelled'
		)
	`
	var exists bool
	if err := t.tx.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Insert wraps the row insert in a savepoint so a unique violation leaves
// the surrounding transaction usable for a retry.
func (t *registrationTx) Insert(ctx context.Context, reg *domain.Registration) error {
	if _, err := t.tx.ExecContext(ctx, `SAVEPOINT insert_registration`); err != nil {
		return err
	}
	query := `
		INSERT INTO event_registrations (event_id, user_id, ticket_number, status, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := t.tx.QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.TicketNumber, reg.Status, reg.RegisteredAt).
		Scan(&reg.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			if _, rbErr := t.tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT insert_registration`); rbErr != nil {
				return rbErr
			}
			if strings.Contains(pqErr.Constraint, "ticket_number") {
				return domain.ErrTicketCollision
			}
			return domain.ErrAlreadyRegistered
		}
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrWriteFailed
		}
		return err
	}
	_, err = t.tx.ExecContext(ctx, `RELEASE SAVEPOINT insert_registration`)
	return err
}

func (t *registrationTx) Commit() error {
	return t.tx.Commit()
}

func (t *registrationTx) Rollback() error {
	return t.tx.Rollback()
}

func scanRegistration(row *sql.Row) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var cancelledAt sql.NullTime
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.TicketNumber, &reg.Status, &reg.RegisteredAt, &cancelledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	reg.CancelledAt = nullTimePtr(cancelledAt)
	return reg, nil
}

func scanRegistrationRows(rows *sql.Rows) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var cancelledAt sql.NullTime
	err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.TicketNumber, &reg.Status, &reg.RegisteredAt, &cancelledAt)
	if err != nil {
		return nil, err
	}
	reg.CancelledAt = nullTimePtr(cancelledAt)
	return reg, nil
}
