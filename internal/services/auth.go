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

const verificationTokenTTL = 24 * time.Hour

type authService struct {
	userRepo       domain.UserRepository
	inviteService  domain.InviteService
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewAuthService(userRepo domain.UserRepository,
	inviteService domain.InviteService,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		inviteService:  inviteService,
		hasher:         hasher,
		issuer:         issuer,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *authService) SignUp(ctx context.Context, name, email, password, inviteToken string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	user := &domain.User{
		Name:      name,
		Email:     email,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if inviteToken != "" {
		inv, err := s.inviteService.ConsumeInvite(ctx, inviteToken)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(inv.Email, email) {
			return nil, domain.ErrInvalidToken
		}
		user.Role = inv.Role
		user.CollegeID = inv.CollegeID
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.Warn("failed to send verification email", "user_id", user.ID, "error", err)
	}
	return user, nil
}

func (s *authService) sendVerification(ctx context.Context, user *domain.User) error {
	token := uuid.NewString()
	if err := s.userRepo.SaveVerificationToken(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return fmt.Errorf("save verification token: %w", err)
	}
	return s.emailService.SendVerificationEmail(ctx, user, token)
}

func (s *authService) LogIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, "", domain.ErrEmailNotVerified
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	userID, err := s.userRepo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("consume verification token: %w", err)
	}
	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	return nil
}

func (s *authService) ResendVerification(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Do not reveal whether the address exists.
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}
	if user.EmailVerified {
		return domain.ErrAlreadyVerified
	}
	return s.sendVerification(ctx, user)
}
