package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type emailTemplateService struct {
	templateRepo   domain.EmailTemplateRepository
	contextTimeout time.Duration
}

func NewEmailTemplateService(templateRepo domain.EmailTemplateRepository, timeout time.Duration) domain.EmailTemplateService {
	return &emailTemplateService{
		templateRepo:   templateRepo,
		contextTimeout: timeout,
	}
}

func (s *emailTemplateService) CreateTemplate(ctx context.Context, actor *domain.User, t *domain.EmailTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" || t.Subject == "" || (t.BodyHTML == "" && t.BodyText == "") {
		return domain.ErrInvalidInput
	}
	t.CreatedBy = actor.ID
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return s.templateRepo.Create(ctx, t)
}

func (s *emailTemplateService) GetTemplateByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (s *emailTemplateService) ListTemplates(ctx context.Context, actor *domain.User, params domain.PaginationParams) ([]*domain.EmailTemplate, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return nil, 0, err
	}
	templates, total, err := s.templateRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	return templates, total, nil
}

func (s *emailTemplateService) UpdateTemplate(ctx context.Context, actor *domain.User, id string, upd domain.EmailTemplateUpdate) (*domain.EmailTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	updated, err := s.templateRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update template: %w", err)
	}
	return updated, nil
}

func (s *emailTemplateService) DeleteTemplate(ctx context.Context, actor *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
