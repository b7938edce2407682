package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/internal/repository"
	"tapfolio.app/backend/internal/widget"
	"tapfolio.app/backend/pkg/apperror"
)

// WidgetService owns the per-card widget settings and the content records
// behind the links, social and services widgets. Every mutation verifies
// card ownership before touching the store.
type WidgetService interface {
	UpsertSetting(ctx context.Context, userID, cardID uuid.UUID, widgetType model.WidgetType, input dto.UpsertWidgetSettingInput) (*model.WidgetSetting, error)

	CreateCustomLink(ctx context.Context, userID, cardID uuid.UUID, input dto.CreateCustomLinkInput) (*model.CustomLink, error)
	UpdateCustomLink(ctx context.Context, userID, cardID, linkID uuid.UUID, input dto.UpdateCustomLinkInput) (*model.CustomLink, error)
	DeleteCustomLink(ctx context.Context, userID, cardID, linkID uuid.UUID) error

	CreateSocialLink(ctx context.Context, userID, cardID uuid.UUID, input dto.CreateSocialLinkInput) (*model.SocialLink, error)
	UpdateSocialLink(ctx context.Context, userID, cardID, linkID uuid.UUID, input dto.UpdateSocialLinkInput) (*model.SocialLink, error)
	DeleteSocialLink(ctx context.Context, userID, cardID, linkID uuid.UUID) error

	CreateService(ctx context.Context, userID, cardID uuid.UUID, input dto.CreateServiceInput) (*model.Service, error)
	UpdateService(ctx context.Context, userID, cardID, serviceID uuid.UUID, input dto.UpdateServiceInput) (*model.Service, error)
	DeleteService(ctx context.Context, userID, cardID, serviceID uuid.UUID) error
}

type widgetService struct {
	profileRepo repository.ProfileRepository
	widgetRepo  repository.WidgetSettingRepository
	linkRepo    repository.CustomLinkRepository
	socialRepo  repository.SocialLinkRepository
	serviceRepo repository.ServiceRepository
}

func NewWidgetService(
	profileRepo repository.ProfileRepository,
	widgetRepo repository.WidgetSettingRepository,
	linkRepo repository.CustomLinkRepository,
	socialRepo repository.SocialLinkRepository,
	serviceRepo repository.ServiceRepository,
) WidgetService {
	return &widgetService{
		profileRepo: profileRepo,
		widgetRepo:  widgetRepo,
		linkRepo:    linkRepo,
		socialRepo:  socialRepo,
		serviceRepo: serviceRepo,
	}
}

func (s *widgetService) UpsertSetting(ctx context.Context, userID, cardID uuid.UUID, widgetType model.WidgetType, input dto.UpsertWidgetSettingInput) (*model.WidgetSetting, error) {
	if !model.ValidWidgetType(widgetType) {
		return nil, fmt.Errorf("unknown widget type %q: %w", widgetType, apperror.ErrInvalidInput)
	}

	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return nil, err
	}

	// Keep the stored order unless the caller overrides it.
	order := model.DefaultWidgetOrder(widgetType)
	existing, err := s.widgetRepo.FindByProfileID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}
	if current, ok := widget.SettingsMap(existing)[widgetType]; ok {
		order = current.Order
	}
	if input.Order != nil {
		order = *input.Order
	}

	setting := &model.WidgetSetting{
		ProfileID:  cardID,
		WidgetType: widgetType,
		Enabled:    *input.Enabled,
		Order:      order,
	}

	if err := s.widgetRepo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to save widget setting: %w", err)
	}

	return setting, nil
}

func (s *widgetService) CreateCustomLink(ctx context.Context, userID, cardID uuid.UUID, input dto.CreateCustomLinkInput) (*model.CustomLink, error) {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return nil, err
	}

	link := &model.CustomLink{
		ProfileID: cardID,
		Title:     input.Title,
		URL:       input.URL,
		ImageURL:  normalizeOptional(input.ImageURL),
		Order:     input.Order,
		Enabled:   enabledOrDefault(input.Enabled),
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return link, nil
}

func (s *widgetService) UpdateCustomLink(ctx context.Context, userID, cardID, linkID uuid.UUID, input dto.UpdateCustomLinkInput) (*model.CustomLink, error) {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return nil, err
	}

	link, err := s.linkRepo.FindByID(ctx, linkID)
	if err != nil {
		return nil, notFoundOrInternal(err, "link")
	}
	if link.ProfileID != cardID {
		return nil, fmt.Errorf("link %s: %w", linkID, apperror.ErrNotFound)
	}

	if input.Title != nil {
		link.Title = *input.Title
	}
	if input.URL != nil {
		link.URL = *input.URL
	}
	if input.ImageURL != nil {
		link.ImageURL = normalizeOptional(input.ImageURL)
	}
	if input.Order != nil {
		link.Order = *input.Order
	}
	if input.Enabled != nil {
		link.Enabled = *input.Enabled
	}

	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}

	return link, nil
}

func (s *widgetService) DeleteCustomLink(ctx context.Context, userID, cardID, linkID uuid.UUID) error {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return err
	}

	link, err := s.linkRepo.FindByID(ctx, linkID)
	if err != nil {
		return notFoundOrInternal(err, "link")
	}
	if link.ProfileID != cardID {
		return fmt.Errorf("link %s: %w", linkID, apperror.ErrNotFound)
	}

	return s.linkRepo.Delete(ctx, linkID)
}

func (s *widgetService) CreateSocialLink(ctx context.Context, userID, cardID uuid.UUID, input dto.CreateSocialLinkInput) (*model.SocialLink, error) {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return nil, err
	}

	link := &model.SocialLink{
		ProfileID: cardID,
		Platform:  input.Platform,
		URL:       input.URL,
		Enabled:   enabledOrDefault(input.Enabled),
	}

	if err := s.socialRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create social link: %w", err)
	}

	return link, nil
}

func (s *widgetService) UpdateSocialLink(ctx context.Context, userID, cardID, linkID uuid.UUID, input dto.UpdateSocialLinkInput) (*model.SocialLink, error) {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return nil, err
	}

	link, err := s.socialRepo.FindByID(ctx, linkID)
	if err != nil {
		return nil, notFoundOrInternal(err, "social link")
	}
	if link.ProfileID != cardID {
		return nil, fmt.Errorf("social link %s: %w", linkID, apperror.ErrNotFound)
	}

	if input.Platform != nil {
		link.Platform = *input.Platform
	}
	if input.URL != nil {
		link.URL = *input.URL
	}
	if input.Enabled != nil {
		link.Enabled = *input.Enabled
	}

	if err := s.socialRepo.Update(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to update social link: %w", err)
	}

	return link, nil
}

func (s *widgetService) DeleteSocialLink(ctx context.Context, userID, cardID, linkID uuid.UUID) error {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return err
	}

	link, err := s.socialRepo.FindByID(ctx, linkID)
	if err != nil {
		return notFoundOrInternal(err, "social link")
	}
	if link.ProfileID != cardID {
		return fmt.Errorf("social link %s: %w", linkID, apperror.ErrNotFound)
	}

	return s.socialRepo.Delete(ctx, linkID)
}

func (s *widgetService) CreateService(ctx context.Context, userID, cardID uuid.UUID, input dto.CreateServiceInput) (*model.Service, error) {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return nil, err
	}

	service := &model.Service{
		ProfileID:   cardID,
		Title:       input.Title,
		Description: normalizeOptional(input.Description),
		Bullets:     input.Bullets,
		Icon:        normalizeOptional(input.Icon),
		Order:       input.Order,
		Enabled:     enabledOrDefault(input.Enabled),
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return service, nil
}

func (s *widgetService) UpdateService(ctx context.Context, userID, cardID, serviceID uuid.UUID, input dto.UpdateServiceInput) (*model.Service, error) {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return nil, err
	}

	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, notFoundOrInternal(err, "service")
	}
	if service.ProfileID != cardID {
		return nil, fmt.Errorf("service %s: %w", serviceID, apperror.ErrNotFound)
	}

	if input.Title != nil {
		service.Title = *input.Title
	}
	if input.Description != nil {
		service.Description = normalizeOptional(input.Description)
	}
	if input.Bullets != nil {
		service.Bullets = input.Bullets
	}
	if input.Icon != nil {
		service.Icon = normalizeOptional(input.Icon)
	}
	if input.Order != nil {
		service.Order = *input.Order
	}
	if input.Enabled != nil {
		service.Enabled = *input.Enabled
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return service, nil
}

func (s *widgetService) DeleteService(ctx context.Context, userID, cardID, serviceID uuid.UUID) error {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return err
	}

	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return notFoundOrInternal(err, "service")
	}
	if service.ProfileID != cardID {
		return fmt.Errorf("service %s: %w", serviceID, apperror.ErrNotFound)
	}

	return s.serviceRepo.Delete(ctx, serviceID)
}

func enabledOrDefault(enabled *bool) bool {
	if enabled == nil {
		return true
	}
	return *enabled
}

func notFoundOrInternal(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", resource, apperror.ErrNotFound)
	}
	return fmt.Errorf("%w: %v", apperror.ErrInternal, err)
}
