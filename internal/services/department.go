package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type departmentService struct {
	departmentRepo domain.DepartmentRepository
	collegeRepo    domain.CollegeRepository
	contextTimeout time.Duration
}

func NewDepartmentService(departmentRepo domain.DepartmentRepository,
	collegeRepo domain.CollegeRepository,
	timeout time.Duration,
) domain.DepartmentService {
	return &departmentService{
		departmentRepo: departmentRepo,
		collegeRepo:    collegeRepo,
		contextTimeout: timeout,
	}
}

func (s *departmentService) CreateDepartment(ctx context.Context, actor *domain.User, d *domain.Department) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireCollegeAccess(actor, d.CollegeID); err != nil {
		return err
	}
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.collegeRepo.GetByID(ctx, d.CollegeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("get college: %w", err)
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	return s.departmentRepo.Create(ctx, d)
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, id string) (*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dept, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return dept, nil
}

func (s *departmentService) ListDepartments(ctx context.Context, collegeID, search string, params domain.PaginationParams) ([]*domain.Department, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	depts, total, err := s.departmentRepo.List(ctx, collegeID, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}
	return depts, total, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, actor *domain.User, id string, upd domain.DepartmentUpdate) (*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dept, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	if err := requireCollegeAccess(actor, dept.CollegeID); err != nil {
		return nil, err
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	updated, err := s.departmentRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update department: %w", err)
	}
	return updated, nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, actor *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dept, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get department: %w", err)
	}
	if err := requireCollegeAccess(actor, dept.CollegeID); err != nil {
		return err
	}
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
