package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/internal/repository"
	"tapfolio.app/backend/pkg/apperror"
)

// requireCardOwner loads the target card and verifies the acting principal
// owns it. Every mutation path goes through here before any write is issued.
// An unknown card is NotFound; a card owned by someone else is a generic
// Forbidden that does not describe the resource.
func requireCardOwner(ctx context.Context, profiles repository.ProfileRepository, userID, profileID uuid.UUID) (*model.Profile, error) {
	profile, err := profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card %s: %w", profileID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}

	if profile.UserID != userID {
		return nil, fmt.Errorf("you can only modify your own cards: %w", apperror.ErrForbidden)
	}

	return profile, nil
}
