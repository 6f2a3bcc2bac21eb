package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type collegeService struct {
	collegeRepo    domain.CollegeRepository
	contextTimeout time.Duration
}

func NewCollegeService(collegeRepo domain.CollegeRepository, timeout time.Duration) domain.CollegeService {
	return &collegeService{
		collegeRepo:    collegeRepo,
		contextTimeout: timeout,
	}
}

func (s *collegeService) CreateCollege(ctx context.Context, c *domain.College) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.ErrInvalidInput
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return s.collegeRepo.Create(ctx, c)
}

func (s *collegeService) GetCollegeByID(ctx context.Context, id string) (*domain.College, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	college, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get college: %w", err)
	}
	return college, nil
}

func (s *collegeService) ListColleges(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.College, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	colleges, total, err := s.collegeRepo.List(ctx, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, total, nil
}

func (s *collegeService) UpdateCollege(ctx context.Context, id string, upd domain.CollegeUpdate) (*domain.College, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	updated, err := s.collegeRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update college: %w", err)
	}
	return updated, nil
}

func (s *collegeService) DeleteCollege(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.collegeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete college: %w", err)
	}
	return nil
}
