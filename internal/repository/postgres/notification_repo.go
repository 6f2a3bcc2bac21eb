package postgres

import (
	"context"
	"database/sql"
	"time"

	"campusevents/internal/domain"
)

const notificationColumns = `id, user_id, type, title, body, event_id, read_at, created_at`

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, body, event_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Body, nullString(n.EventID), n.CreatedAt,
	).Scan(&n.ID)
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string, unreadOnly bool, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	where := "user_id = $1"
	if unreadOnly {
		where += " AND read_at IS NULL"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications WHERE ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		var eventID sql.NullString
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &eventID, &readAt, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		n.EventID = nullStringPtr(eventID)
		n.ReadAt = nullTimePtr(readAt)
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string, at time.Time) error {
	query := `
		UPDATE notifications SET read_at = $3
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id, userID, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string, at time.Time) error {
	query := `
		UPDATE notifications SET read_at = $2
		WHERE user_id = $1 AND read_at IS NULL
	`
	_, err := r.DB.ExecContext(ctx, query, userID, at)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
