package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

const collegeColumns = `id, name, short_name, city, state, country,
		contact_email, contact_phone, website_url, created_at, updated_at`

type collegeRepository struct {
	DB *sql.DB
}

func NewCollegeRepository(db *sql.DB) domain.CollegeRepository {
	return &collegeRepository{
		DB: db,
	}
}

func (r *collegeRepository) Create(ctx context.Context, c *domain.College) error {
	query := `
		INSERT INTO colleges (name, short_name, city, state, country,
			contact_email, contact_phone, website_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		c.Name, nullString(c.ShortName), nullString(c.City), nullString(c.State), nullString(c.Country),
		nullString(c.ContactEmail), nullString(c.ContactPhone), nullString(c.WebsiteURL),
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

func (r *collegeRepository) GetByID(ctx context.Context, id string) (*domain.College, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM colleges
		WHERE id = $1 AND is_deleted = false
	`, collegeColumns)
	return scanCollege(r.DB.QueryRowContext(ctx, query, id))
}

func (r *collegeRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.College, int, error) {
	where := "is_deleted = false"
	args := []interface{}{}
	n := 1
	if search != "" {
		where = fmt.Sprintf("is_deleted = false AND (name ILIKE $%d OR short_name ILIKE $%d)", n, n)
		args = append(args, "%"+search+"%")
		n++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM colleges WHERE %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM colleges
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, collegeColumns, where, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	colleges := make([]*domain.College, 0)
	for rows.Next() {
		c := &domain.College{}
		var shortName, city, state, country, email, phone, website sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &shortName, &city, &state, &country, &email, &phone, &website, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		c.ShortName = nullStringPtr(shortName)
		c.City = nullStringPtr(city)
		c.State = nullStringPtr(state)
		c.Country = nullStringPtr(country)
		c.ContactEmail = nullStringPtr(email)
		c.ContactPhone = nullStringPtr(phone)
		c.WebsiteURL = nullStringPtr(website)
		colleges = append(colleges, c)
	}
	return colleges, total, rows.Err()
}

func (r *collegeRepository) Update(ctx context.Context, id string, upd domain.CollegeUpdate) (*domain.College, error) {
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
	if upd.ShortName != nil {
		addSet("short_name", *upd.ShortName)
	}
	if upd.City != nil {
		addSet("city", *upd.City)
	}
	if upd.State != nil {
		addSet("state", *upd.State)
	}
	if upd.Country != nil {
		addSet("country", *upd.Country)
	}
	if upd.ContactEmail != nil {
		addSet("contact_email", *upd.ContactEmail)
	}
	if upd.ContactPhone != nil {
		addSet("contact_phone", *upd.ContactPhone)
	}
	if upd.WebsiteURL != nil {
		addSet("website_url", *upd.WebsiteURL)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE colleges SET %s
		WHERE id = $%d AND is_deleted = false
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, collegeColumns)
	return scanCollege(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *collegeRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE colleges SET is_deleted = true, updated_at = NOW()
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

func scanCollege(row *sql.Row) (*domain.College, error) {
	c := &domain.College{}
	var shortName, city, state, country, email, phone, website sql.NullString
	err := row.Scan(&c.ID, &c.Name, &shortName, &city, &state, &country, &email, &phone, &website, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.ShortName = nullStringPtr(shortName)
	c.City = nullStringPtr(city)
	c.State = nullStringPtr(state)
	c.Country = nullStringPtr(country)
	c.ContactEmail = nullStringPtr(email)
	c.ContactPhone = nullStringPtr(phone)
	c.WebsiteURL = nullStringPtr(website)
	return c, nil
}
