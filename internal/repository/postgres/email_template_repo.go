package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

const emailTemplateColumns = `id, name, subject, body_html, body_text, created_by, created_at, updated_at`

type emailTemplateRepository struct {
	DB *sql.DB
}

func NewEmailTemplateRepository(db *sql.DB) domain.EmailTemplateRepository {
	return &emailTemplateRepository{
		DB: db,
	}
}

func (r *emailTemplateRepository) Create(ctx context.Context, t *domain.EmailTemplate) error {
	query := `
		INSERT INTO email_templates (name, subject, body_html, body_text, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		t.Name, t.Subject, t.BodyHTML, t.BodyText, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
}

func (r *emailTemplateRepository) GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	query := `
		SELECT ` + emailTemplateColumns + `
		FROM email_templates
		WHERE id = $1
	`
	t := &domain.EmailTemplate{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Subject, &t.BodyHTML, &t.BodyText, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *emailTemplateRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.EmailTemplate, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_templates`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + emailTemplateColumns + `
		FROM email_templates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	templates := make([]*domain.EmailTemplate, 0)
	for rows.Next() {
		t := &domain.EmailTemplate{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.BodyHTML, &t.BodyText, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		templates = append(templates, t)
	}
	return templates, total, rows.Err()
}

func (r *emailTemplateRepository) Update(ctx context.Context, id string, upd domain.EmailTemplateUpdate) (*domain.EmailTemplate, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Name != nil {
		addSet("name", *upd.Name)
	}
	if upd.Subject != nil {
		addSet("subject", *upd.Subject)
	}
	if upd.BodyHTML != nil {
		addSet("body_html", *upd.BodyHTML)
	}
	if upd.BodyText != nil {
		addSet("body_text", *upd.BodyText)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE email_templates SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, emailTemplateColumns)
	t := &domain.EmailTemplate{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.Subject, &t.BodyHTML, &t.BodyText, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *emailTemplateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
