package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tapfolio.app/backend/internal/model"
)

type ProfileRepository interface {
	// Create inserts the profile together with its widget-setting rows in one transaction.
	Create(ctx context.Context, profile *model.Profile, settings []model.WidgetSetting) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	FindByUsername(ctx context.Context, username string) (*model.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Profile, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetPrimary clears every other primary flag of the owner and marks the
	// given card, all inside a single transaction.
	SetPrimary(ctx context.Context, userID, profileID uuid.UUID) error
	FindPublic(ctx context.Context, limit, offset int) ([]*model.Profile, error)
	AddViews(ctx context.Context, id uuid.UUID, delta int64) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile, settings []model.WidgetSetting) error {
	profile.Username = strings.ToLower(profile.Username)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		for i := range settings {
			settings[i].ProfileID = profile.ID
		}
		if len(settings) > 0 {
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).
		Preload("CustomLinks", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("SocialLinks").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("WidgetSettings").
		Where("username = ?", strings.ToLower(username)).
		First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Profile, error) {
	var profiles []*model.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("username = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Profile{}, "id = ?", id).Error
}

func (r *profileRepository) SetPrimary(ctx context.Context, userID, profileID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Profile{}).
			Where("user_id = ? AND id <> ?", userID, profileID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Profile{}).
			Where("id = ? AND user_id = ?", profileID, userID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *profileRepository) FindPublic(ctx context.Context, limit, offset int) ([]*model.Profile, error) {
	var profiles []*model.Profile
	if err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepository) AddViews(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}
