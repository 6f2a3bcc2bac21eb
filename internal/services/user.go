package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

func NewUserService(userRepo domain.UserRepository, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor *domain.User, params domain.PaginationParams) ([]*domain.User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return nil, 0, err
	}
	collegeID := ""
	if actor.Role == domain.RoleAdmin {
		if actor.CollegeID == nil {
			return nil, 0, domain.ErrForbidden
		}
		collegeID = *actor.CollegeID
	}
	users, total, err := s.userRepo.List(ctx, collegeID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor *domain.User, id string, upd domain.UserUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor == nil {
		return nil, domain.ErrForbidden
	}
	// Role changes are reserved for superadmins. Everything else a user
	// may change on their own account.
	if upd.Role != nil {
		if err := requireSuperadmin(actor); err != nil {
			return nil, err
		}
		switch *upd.Role {
		case domain.RoleUser, domain.RoleAdmin, domain.RoleSuperadmin:
		default:
			return nil, domain.ErrInvalidInput
		}
	} else if actor.ID != id && actor.Role != domain.RoleSuperadmin {
		return nil, domain.ErrForbidden
	}

	updated, err := s.userRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor == nil {
		return domain.ErrForbidden
	}
	if actor.ID != id && actor.Role != domain.RoleSuperadmin {
		return domain.ErrForbidden
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
