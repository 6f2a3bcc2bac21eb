package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campusevents/internal/domain"
)

const campaignPageSize = 200

type campaignService struct {
	campaignRepo   domain.CampaignRepository
	templateRepo   domain.EmailTemplateRepository
	eventRepo      domain.EventRepository
	store          domain.RegistrationStore
	userRepo       domain.UserRepository
	mailer         domain.Mailer
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewCampaignService(campaignRepo domain.CampaignRepository,
	templateRepo domain.EmailTemplateRepository,
	eventRepo domain.EventRepository,
	store domain.RegistrationStore,
	userRepo domain.UserRepository,
	mailer domain.Mailer,
	logger *slog.Logger,
	timeout time.Duration,
) domain.CampaignService {
	return &campaignService{
		campaignRepo:   campaignRepo,
		templateRepo:   templateRepo,
		eventRepo:      eventRepo,
		store:          store,
		userRepo:       userRepo,
		mailer:         mailer,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *campaignService) CreateCampaign(ctx context.Context, actor *domain.User, c *domain.Campaign) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" || c.TemplateID == "" || c.EventID == "" {
		return domain.ErrInvalidInput
	}

	if _, err := s.templateRepo.GetByID(ctx, c.TemplateID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("get template: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, c.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := requireCollegeAccess(actor, event.CollegeID); err != nil {
		return err
	}

	c.Status = domain.CampaignStatusDraft
	c.CreatedBy = actor.ID
	c.CreatedAt = time.Now()
	return s.campaignRepo.Create(ctx, c)
}

func (s *campaignService) GetCampaignByID(ctx context.Context, id string) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (s *campaignService) ListCampaigns(ctx context.Context, actor *domain.User, params domain.PaginationParams) ([]*domain.Campaign, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := requireStaff(actor); err != nil {
		return nil, 0, err
	}
	campaigns, total, err := s.campaignRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, total, nil
}

func (s *campaignService) SendCampaign(ctx context.Context, actor *domain.User, id string) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c.Status == domain.CampaignStatusSent || c.Status == domain.CampaignStatusSending {
		return nil, domain.ErrInvalidInput
	}

	tmpl, err := s.templateRepo.GetByID(ctx, c.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, c.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := requireCollegeAccess(actor, event.CollegeID); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.UpdateStatus(ctx, c.ID, domain.CampaignStatusSending, 0, 0, nil); err != nil {
		return nil, fmt.Errorf("update campaign status: %w", err)
	}

	sent, failed := 0, 0
	page := 1
	for {
		regs, total, err := s.store.ListByEventID(ctx, c.EventID, domain.PaginationParams{Page: page, PageSize: campaignPageSize})
		if err != nil {
			return nil, fmt.Errorf("list registrations: %w", err)
		}
		for _, reg := range regs {
			if reg.Status == domain.RegistrationStatusCancelled {
				continue
			}
			if err := s.sendToRegistrant(ctx, tmpl, event, reg); err != nil {
				s.logger.Warn("campaign email failed", "campaign_id", c.ID, "registration_id", reg.ID, "error", err)
				failed++
				continue
			}
			sent++
		}
		if page*campaignPageSize >= total {
			break
		}
		page++
	}

	status := domain.CampaignStatusSent
	if sent == 0 && failed > 0 {
		status = domain.CampaignStatusFailed
	}
	now := time.Now()
	if err := s.campaignRepo.UpdateStatus(ctx, c.ID, status, sent, failed, &now); err != nil {
		return nil, fmt.Errorf("update campaign status: %w", err)
	}
	c.Status = status
	c.SentCount = sent
	c.FailCount = failed
	c.SentAt = &now
	return c, nil
}

func (s *campaignService) sendToRegistrant(ctx context.Context, tmpl *domain.EmailTemplate, event *domain.Event, reg *domain.Registration) error {
	user, err := s.userRepo.GetByID(ctx, reg.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	replacer := strings.NewReplacer(
		"{{name}}", user.Name,
		"{{event_title}}", event.Title,
		"{{ticket_number}}", reg.TicketNumber,
	)
	return s.mailer.Send(ctx, &domain.Email{
		To:       []string{user.Email},
		Subject:  replacer.Replace(tmpl.Subject),
		BodyHTML: replacer.Replace(tmpl.BodyHTML),
		BodyText: replacer.Replace(tmpl.BodyText),
	})
}
