package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/internal/repository"
	"tapfolio.app/backend/internal/widget"
	"tapfolio.app/backend/pkg/apperror"
	"tapfolio.app/backend/pkg/vcard"
)

const defaultCreateCardLimit = 10 * time.Second

type CardService interface {
	Onboarding(ctx context.Context, userID uuid.UUID, input dto.OnboardingInput) (*model.Profile, error)
	CreateCard(ctx context.Context, userID uuid.UUID, input dto.CreateCardInput) (*model.Profile, error)
	ListCards(ctx context.Context, userID uuid.UUID) ([]*model.Profile, error)
	Directory(ctx context.Context, query string, limit int) ([]dto.DirectoryEntry, error)
	UpdateVisibility(ctx context.Context, userID, cardID uuid.UUID, isPublic bool) error
	SetPrimary(ctx context.Context, userID, cardID uuid.UUID) error
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
	GetCardPage(ctx context.Context, username string, viewerID uuid.UUID, mode widget.Mode, viewerKey string) (*dto.CardPageResponse, error)
	GetVCard(ctx context.Context, username string, viewerID uuid.UUID) (string, string, error)
}

type cardService struct {
	profileRepo     repository.ProfileRepository
	searchSvc       SearchService
	viewSvc         ViewService
	redisClient     *redis.Client
	logger          *zap.Logger
	createCardLimit time.Duration
}

func NewCardService(
	profileRepo repository.ProfileRepository,
	searchSvc SearchService,
	viewSvc ViewService,
	redisClient *redis.Client,
	logger *zap.Logger,
	createCardLimit time.Duration,
) CardService {
	if createCardLimit <= 0 {
		createCardLimit = defaultCreateCardLimit
	}

	return &cardService{
		profileRepo:     profileRepo,
		searchSvc:       searchSvc,
		viewSvc:         viewSvc,
		redisClient:     redisClient,
		logger:          logger,
		createCardLimit: createCardLimit,
	}
}

// Onboarding claims the user's first username and creates their primary,
// public card. Usernames are lowercased before the availability check so
// "JohnDoe" and "johndoe" collide.
func (s *cardService) Onboarding(ctx context.Context, userID uuid.UUID, input dto.OnboardingInput) (*model.Profile, error) {
	username := strings.ToLower(input.Username)

	taken, err := s.profileRepo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}
	if taken {
		return nil, fmt.Errorf("username already taken: %w", apperror.ErrConflict)
	}

	profile := &model.Profile{
		UserID:              userID,
		Username:            username,
		CardName:            "My Card",
		IsPrimary:           true,
		IsPublic:            true,
		OnboardingCompleted: true,
	}

	if err := s.profileRepo.Create(ctx, profile, model.DefaultWidgetSettings(uuid.Nil)); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.indexProfile(profile)

	return profile, nil
}

func (s *cardService) CreateCard(ctx context.Context, userID uuid.UUID, input dto.CreateCardInput) (*model.Profile, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "create_card", s.createCardLimit)
	if err != nil {
		s.logger.Warn("rate limit check failed, allowing request", zap.Error(err))
	} else if !allowed {
		return nil, fmt.Errorf("please wait before creating another card: %w", apperror.ErrRateLimitExceeded)
	}

	username := strings.ToLower(input.Username)

	taken, err := s.profileRepo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}
	if taken {
		return nil, fmt.Errorf("username already taken: %w", apperror.ErrConflict)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	profile := &model.Profile{
		UserID:          userID,
		Username:        username,
		CardName:        input.CardName,
		IsPrimary:       input.IsPrimary,
		IsPublic:        isPublic,
		DisplayName:     normalizeOptional(input.DisplayName),
		JobTitle:        normalizeOptional(input.JobTitle),
		Company:         normalizeOptional(input.Company),
		Location:        normalizeOptional(input.Location),
		Bio:             normalizeOptional(input.Bio),
		ProfileImageURL: normalizeOptional(input.ProfileImageURL),
		Email:           normalizeOptional(input.Email),
		Phone:           normalizeOptional(input.Phone),
		Website:         normalizeOptional(input.Website),
		Address:         normalizeOptional(input.Address),
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
	}

	settings := model.DefaultWidgetSettings(uuid.Nil)
	for i := range settings {
		if enabled, ok := input.EnabledWidgets[settings[i].WidgetType]; ok {
			settings[i].Enabled = enabled
		}
	}

	if err := s.profileRepo.Create(ctx, profile, settings); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	if input.IsPrimary {
		if err := s.profileRepo.SetPrimary(ctx, userID, profile.ID); err != nil {
			return nil, fmt.Errorf("failed to set card as primary: %w", err)
		}
	}

	s.indexProfile(profile)

	return profile, nil
}

func (s *cardService) ListCards(ctx context.Context, userID uuid.UUID) ([]*model.Profile, error) {
	return s.profileRepo.FindByUserID(ctx, userID)
}

func (s *cardService) Directory(ctx context.Context, query string, limit int) ([]dto.DirectoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if query != "" && s.searchSvc != nil {
		return s.searchSvc.SearchDirectory(query, limit)
	}

	profiles, err := s.profileRepo.FindPublic(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}

	entries := make([]dto.DirectoryEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, dto.DirectoryEntry{
			Username:        p.Username,
			CardName:        p.CardName,
			DisplayName:     p.DisplayName,
			JobTitle:        p.JobTitle,
			Company:         p.Company,
			Location:        p.Location,
			ProfileImageURL: p.ProfileImageURL,
		})
	}

	return entries, nil
}

func (s *cardService) UpdateVisibility(ctx context.Context, userID, cardID uuid.UUID, isPublic bool) error {
	profile, err := requireCardOwner(ctx, s.profileRepo, userID, cardID)
	if err != nil {
		return err
	}

	profile.IsPublic = isPublic
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to update visibility: %w", err)
	}

	s.indexProfile(profile)

	return nil
}

func (s *cardService) SetPrimary(ctx context.Context, userID, cardID uuid.UUID) error {
	if _, err := requireCardOwner(ctx, s.profileRepo, userID, cardID); err != nil {
		return err
	}

	if err := s.profileRepo.SetPrimary(ctx, userID, cardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("card %s: %w", cardID, apperror.ErrNotFound)
		}
		return fmt.Errorf("failed to set card as primary: %w", err)
	}

	return nil
}

func (s *cardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	profile, err := requireCardOwner(ctx, s.profileRepo, userID, cardID)
	if err != nil {
		return err
	}

	if err := s.profileRepo.Delete(ctx, cardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.RemoveProfile(profile.ID.String()); err != nil {
			s.logger.Warn("failed to remove card from search index", zap.String("profile_id", profile.ID.String()), zap.Error(err))
		}
	}

	return nil
}

// GetCardPage resolves the widget list for one card as seen by the given
// viewer. Unknown usernames and private cards viewed by anyone but their
// owner are both a NotFound.
func (s *cardService) GetCardPage(ctx context.Context, username string, viewerID uuid.UUID, mode widget.Mode, viewerKey string) (*dto.CardPageResponse, error) {
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card %q: %w", username, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}

	isOwner := viewerID != uuid.Nil && viewerID == profile.UserID
	if !profile.IsPublic && !isOwner {
		return nil, fmt.Errorf("card %q: %w", username, apperror.ErrNotFound)
	}
	if !isOwner {
		mode = widget.ModePreview
	}

	widgets := widget.Resolve(widget.Input{
		Profile:       *profile,
		CustomLinks:   profile.CustomLinks,
		SocialLinks:   profile.SocialLinks,
		Services:      profile.Services,
		Settings:      profile.WidgetSettings,
		ViewerIsOwner: isOwner,
		Mode:          mode,
	})

	if !isOwner && s.viewSvc != nil && viewerKey != "" {
		if err := s.viewSvc.RecordView(ctx, profile.ID, viewerKey); err != nil {
			s.logger.Warn("failed to record card view", zap.String("profile_id", profile.ID.String()), zap.Error(err))
		}
	}

	return &dto.CardPageResponse{
		Profile: profile,
		Widgets: widgets,
		IsOwner: isOwner,
		Mode:    mode,
	}, nil
}

// GetVCard renders the downloadable vCard for a card. Returns the vCard
// body and the suggested file name.
func (s *cardService) GetVCard(ctx context.Context, username string, viewerID uuid.UUID) (string, string, error) {
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", fmt.Errorf("card %q: %w", username, apperror.ErrNotFound)
		}
		return "", "", fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}

	isOwner := viewerID != uuid.Nil && viewerID == profile.UserID
	if !profile.IsPublic && !isOwner {
		return "", "", fmt.Errorf("card %q: %w", username, apperror.ErrNotFound)
	}

	return vcard.Generate(profile), profile.Username + ".vcf", nil
}

func (s *cardService) indexProfile(profile *model.Profile) {
	if s.searchSvc == nil {
		return
	}
	if err := s.searchSvc.IndexProfile(profile); err != nil {
		s.logger.Warn("failed to index card", zap.String("profile_id", profile.ID.String()), zap.Error(err))
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	result := trimmed
	return &result
}
