package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusevents/internal/domain"
)

const inviteColumns = `id, token, email, role, college_id, created_by, expires_at, used_at, created_at`

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{
		DB: db,
	}
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.InviteToken) error {
	query := `
		INSERT INTO invite_tokens (token, email, role, college_id, created_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		inv.Token, inv.Email, inv.Role, nullString(inv.CollegeID), inv.CreatedBy, inv.ExpiresAt, inv.CreatedAt,
	).Scan(&inv.ID)
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*domain.InviteToken, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM invite_tokens
		WHERE token = $1
	`
	inv := &domain.InviteToken{}
	var collegeID sql.NullString
	var usedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, token).Scan(
		&inv.ID, &inv.Token, &inv.Email, &inv.Role, &collegeID, &inv.CreatedBy,
		&inv.ExpiresAt, &usedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.CollegeID = nullStringPtr(collegeID)
	inv.UsedAt = nullTimePtr(usedAt)
	return inv, nil
}

func (r *inviteRepository) GetByID(ctx context.Context, id string) (*domain.InviteToken, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM invite_tokens
		WHERE id = $1
	`
	inv := &domain.InviteToken{}
	var collegeID sql.NullString
	var usedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.Token, &inv.Email, &inv.Role, &collegeID, &inv.CreatedBy,
		&inv.ExpiresAt, &usedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.CollegeID = nullStringPtr(collegeID)
	inv.UsedAt = nullTimePtr(usedAt)
	return inv, nil
}

func (r *inviteRepository) MarkUsed(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE invite_tokens SET used_at = $2
		WHERE id = $1 AND used_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInviteUsed
	}
	return nil
}

func (r *inviteRepository) ListByCreator(ctx context.Context, creatorID string, params domain.PaginationParams) ([]*domain.InviteToken, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM invite_tokens WHERE created_by = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, creatorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + inviteColumns + `
		FROM invite_tokens
		WHERE created_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, creatorID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invites := make([]*domain.InviteToken, 0)
	for rows.Next() {
		inv := &domain.InviteToken{}
		var collegeID sql.NullString
		var usedAt sql.NullTime
		err := rows.Scan(
			&inv.ID, &inv.Token, &inv.Email, &inv.Role, &collegeID, &inv.CreatedBy,
			&inv.ExpiresAt, &usedAt, &inv.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		inv.CollegeID = nullStringPtr(collegeID)
		inv.UsedAt = nullTimePtr(usedAt)
		invites = append(invites, inv)
	}
	return invites, total, rows.Err()
}

// Delete removes an invite that has not been used yet.
func (r *inviteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invite_tokens WHERE id = $1 AND used_at IS NULL`
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
