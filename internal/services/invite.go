package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

const inviteTTL = 7 * 24 * time.Hour

type inviteService struct {
	inviteRepo     domain.InviteRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewInviteService(inviteRepo domain.InviteRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InviteService {
	return &inviteService{
		inviteRepo:     inviteRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *inviteService) CreateInvite(ctx context.Context, actor *domain.User, email, role string, collegeID *string) (*domain.InviteToken, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	switch role {
	case domain.RoleUser, domain.RoleAdmin:
	case domain.RoleSuperadmin:
		// Only superadmins can mint superadmin invites.
		if err := requireSuperadmin(actor); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if actor.Role == domain.RoleAdmin {
		if actor.CollegeID == nil || collegeID == nil || *collegeID != *actor.CollegeID {
			return nil, domain.ErrForbidden
		}
	}

	now := s.now()
	inv := &domain.InviteToken{
		Token:     uuid.NewString(),
		Email:     email,
		Role:      role,
		CollegeID: collegeID,
		CreatedBy: actor.ID,
		ExpiresAt: now.Add(inviteTTL),
		CreatedAt: now,
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}
	if err := s.emailService.SendInviteEmail(ctx, inv); err != nil {
		s.logger.Warn("failed to send invite email", "invite_id", inv.ID, "error", err)
	}
	return inv, nil
}

func (s *inviteService) ConsumeInvite(ctx context.Context, token string) (*domain.InviteToken, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	if inv.UsedAt != nil {
		return nil, domain.ErrInviteUsed
	}
	now := s.now()
	if !inv.ExpiresAt.After(now) {
		return nil, domain.ErrInviteExpired
	}
	if err := s.inviteRepo.MarkUsed(ctx, inv.ID, now); err != nil {
		if errors.Is(err, domain.ErrInviteUsed) {
			return nil, domain.ErrInviteUsed
		}
		return nil, fmt.Errorf("mark invite used: %w", err)
	}
	inv.UsedAt = &now
	return inv, nil
}

func (s *inviteService) ValidateInvite(ctx context.Context, token string) (*domain.InviteToken, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	if inv.UsedAt != nil {
		return nil, domain.ErrInviteUsed
	}
	if !inv.ExpiresAt.After(s.now()) {
		return nil, domain.ErrInviteExpired
	}
	return inv, nil
}

func (s *inviteService) ListInvites(ctx context.Context, actor *domain.User, params domain.PaginationParams) ([]*domain.InviteToken, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return nil, 0, err
	}
	invites, total, err := s.inviteRepo.ListByCreator(ctx, actor.ID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invites: %w", err)
	}
	return invites, total, nil
}

func (s *inviteService) DeleteInvite(ctx context.Context, actor *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return err
	}
	inv, err := s.inviteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invite: %w", err)
	}
	if actor.Role != domain.RoleSuperadmin && inv.CreatedBy != actor.ID {
		return domain.ErrForbidden
	}
	if inv.UsedAt != nil {
		return domain.ErrInviteUsed
	}
	if err := s.inviteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}
