package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusevents/internal/domain"
)

const campaignColumns = `id, name, template_id, event_id, status, sent_count, fail_count, created_by, sent_at, created_at`

type campaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) domain.CampaignRepository {
	return &campaignRepository{
		DB: db,
	}
}

func (r *campaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	query := `
		INSERT INTO email_campaigns (name, template_id, event_id, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		c.Name, c.TemplateID, c.EventID, c.Status, c.CreatedBy, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM email_campaigns
		WHERE id = $1
	`
	c := &domain.Campaign{}
	var sentAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.TemplateID, &c.EventID, &c.Status, &c.SentCount, &c.FailCount,
		&c.CreatedBy, &sentAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.SentAt = nullTimePtr(sentAt)
	return c, nil
}

func (r *campaignRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Campaign, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_campaigns`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + campaignColumns + `
		FROM email_campaigns
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		c := &domain.Campaign{}
		var sentAt sql.NullTime
		err := rows.Scan(
			&c.ID, &c.Name, &c.TemplateID, &c.EventID, &c.Status, &c.SentCount, &c.FailCount,
			&c.CreatedBy, &sentAt, &c.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		c.SentAt = nullTimePtr(sentAt)
		campaigns = append(campaigns, c)
	}
	return campaigns, total, rows.Err()
}

func (r *campaignRepository) UpdateStatus(ctx context.Context, id, status string, sentCount, failCount int, sentAt *time.Time) error {
	query := `
		UPDATE email_campaigns
		SET status = $2, sent_count = $3, fail_count = $4, sent_at = $5
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id, status, sentCount, failCount, nullTime(sentAt))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
