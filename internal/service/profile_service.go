package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/internal/repository"
)

// ProfileService covers the per-widget edit forms: identity fields, bio,
// contact details and map location of one card.
type ProfileService interface {
	UpdateProfile(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateProfileInput) (*model.Profile, error)
	UpdateBio(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateBioInput) (*model.Profile, error)
	UpdateContact(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateContactInput) (*model.Profile, error)
	UpdateLocation(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateLocationInput) (*model.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	searchSvc   SearchService
	logger      *zap.Logger
}

func NewProfileService(profileRepo repository.ProfileRepository, searchSvc SearchService, logger *zap.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		searchSvc:   searchSvc,
		logger:      logger,
	}
}

func (s *profileService) UpdateProfile(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateProfileInput) (*model.Profile, error) {
	profile, err := requireCardOwner(ctx, s.profileRepo, userID, cardID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		profile.DisplayName = normalizeOptional(input.DisplayName)
	}
	if input.JobTitle != nil {
		profile.JobTitle = normalizeOptional(input.JobTitle)
	}
	if input.Company != nil {
		profile.Company = normalizeOptional(input.Company)
	}
	if input.Location != nil {
		profile.Location = normalizeOptional(input.Location)
	}
	if input.ProfileImageURL != nil {
		profile.ProfileImageURL = normalizeOptional(input.ProfileImageURL)
	}
	if input.Bio != nil {
		profile.Bio = normalizeOptional(input.Bio)
	}
	if input.CardName != nil && *input.CardName != "" {
		profile.CardName = *input.CardName
	}

	return s.save(ctx, profile)
}

func (s *profileService) UpdateBio(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateBioInput) (*model.Profile, error) {
	profile, err := requireCardOwner(ctx, s.profileRepo, userID, cardID)
	if err != nil {
		return nil, err
	}

	profile.Bio = normalizeOptional(input.Bio)

	return s.save(ctx, profile)
}

func (s *profileService) UpdateContact(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateContactInput) (*model.Profile, error) {
	profile, err := requireCardOwner(ctx, s.profileRepo, userID, cardID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		profile.Email = normalizeOptional(input.Email)
	}
	if input.Phone != nil {
		profile.Phone = normalizeOptional(input.Phone)
	}
	if input.Website != nil {
		profile.Website = normalizeOptional(input.Website)
	}
	if input.Address != nil {
		profile.Address = normalizeOptional(input.Address)
	}

	return s.save(ctx, profile)
}

func (s *profileService) UpdateLocation(ctx context.Context, userID, cardID uuid.UUID, input dto.UpdateLocationInput) (*model.Profile, error) {
	profile, err := requireCardOwner(ctx, s.profileRepo, userID, cardID)
	if err != nil {
		return nil, err
	}

	if input.Address != nil {
		profile.Address = normalizeOptional(input.Address)
	}
	if input.Latitude != nil {
		profile.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		profile.Longitude = input.Longitude
	}

	return s.save(ctx, profile)
}

func (s *profileService) save(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.IndexProfile(profile); err != nil {
			s.logger.Warn("failed to re-index card", zap.String("profile_id", profile.ID.String()), zap.Error(err))
		}
	}

	return profile, nil
}
