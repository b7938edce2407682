package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tapfolio.app/backend/internal/model"
)

type WidgetSettingRepository interface {
	FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.WidgetSetting, error)
	// Upsert writes the setting for its (profile, widget type) pair,
	// inserting or overwriting the enabled flag and order.
	Upsert(ctx context.Context, setting *model.WidgetSetting) error
}

type widgetSettingRepository struct {
	db *gorm.DB
}

func NewWidgetSettingRepository(db *gorm.DB) WidgetSettingRepository {
	return &widgetSettingRepository{db: db}
}

func (r *widgetSettingRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.WidgetSetting, error) {
	var settings []model.WidgetSetting
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("sort_order ASC").
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *widgetSettingRepository) Upsert(ctx context.Context, setting *model.WidgetSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "widget_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "sort_order"}),
		}).
		Create(setting).Error
}
