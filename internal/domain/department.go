package domain

import (
	"context"
	"time"
)

// Department represents a department within a college.
// swagger:model Department
type Department struct {
	ID           string    `json:"id"`
	CollegeID    string    `json:"college_id"`
	Name         string    `json:"name"`
	ShortName    *string   `json:"short_name"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DepartmentUpdate carries the optional fields for a partial department update.
type DepartmentUpdate struct {
	Name         *string
	ShortName    *string
	ContactEmail *string
	ContactPhone *string
}

// DepartmentRepository defines the interface for department storage.
type DepartmentRepository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id string) (*Department, error)
	List(ctx context.Context, collegeID, search string, params PaginationParams) ([]*Department, int, error)
	Update(ctx context.Context, id string, upd DepartmentUpdate) (*Department, error)
	Delete(ctx context.Context, id string) error
}

// DepartmentService defines the business logic for department management.
// Admins may only manage departments of their own college.
type DepartmentService interface {
	CreateDepartment(ctx context.Context, actor *User, d *Department) error
	GetDepartmentByID(ctx context.Context, id string) (*Department, error)
	ListDepartments(ctx context.Context, collegeID, search string, params PaginationParams) ([]*Department, int, error)
	UpdateDepartment(ctx context.Context, actor *User, id string, upd DepartmentUpdate) (*Department, error)
	DeleteDepartment(ctx context.Context, actor *User, id string) error
}
