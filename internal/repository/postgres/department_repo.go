package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

const departmentColumns = `id, college_id, name, short_name, contact_email, contact_phone, created_at, updated_at`

type departmentRepository struct {
	DB *sql.DB
}

func NewDepartmentRepository(db *sql.DB) domain.DepartmentRepository {
	return &departmentRepository{
		DB: db,
	}
}

func (r *departmentRepository) Create(ctx context.Context, d *domain.Department) error {
	query := `
		INSERT INTO departments (college_id, name, short_name, contact_email, contact_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		d.CollegeID, d.Name, nullString(d.ShortName), nullString(d.ContactEmail), nullString(d.ContactPhone),
		d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM departments
		WHERE id = $1
	`, departmentColumns)
	return scanDepartment(r.DB.QueryRowContext(ctx, query, id))
}

func (r *departmentRepository) List(ctx context.Context, collegeID, search string, params domain.PaginationParams) ([]*domain.Department, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	n := 1
	if collegeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("college_id = $%d", n))
		args = append(args, collegeID)
		n++
	}
	if search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR short_name ILIKE $%d)", n, n))
		args = append(args, "%"+search+"%")
		n++
	}
	where := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM departments WHERE %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM departments
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, departmentColumns, where, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		d := &domain.Department{}
		var shortName, email, phone sql.NullString
		if err := rows.Scan(&d.ID, &d.CollegeID, &d.Name, &shortName, &email, &phone, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		d.ShortName = nullStringPtr(shortName)
		d.ContactEmail = nullStringPtr(email)
		d.ContactPhone = nullStringPtr(phone)
		departments = append(departments, d)
	}
	return departments, total, rows.Err()
}

func (r *departmentRepository) Update(ctx context.Context, id string, upd domain.DepartmentUpdate) (*domain.Department, error) {
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
	if upd.ContactEmail != nil {
		addSet("contact_email", *upd.ContactEmail)
	}
	if upd.ContactPhone != nil {
		addSet("contact_phone", *upd.ContactPhone)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE departments SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, departmentColumns)
	return scanDepartment(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM departments WHERE id = $1`
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

func scanDepartment(row *sql.Row) (*domain.Department, error) {
	d := &domain.Department{}
	var shortName, email, phone sql.NullString
	err := row.Scan(&d.ID, &d.CollegeID, &d.Name, &shortName, &email, &phone, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d.ShortName = nullStringPtr(shortName)
	d.ContactEmail = nullStringPtr(email)
	d.ContactPhone = nullStringPtr(phone)
	return d, nil
}
