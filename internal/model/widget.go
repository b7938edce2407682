package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WidgetType string

const (
	WidgetProfile  WidgetType = "profile"
	WidgetBio      WidgetType = "bio"
	WidgetLinks    WidgetType = "links"
	WidgetSocial   WidgetType = "social"
	WidgetServices WidgetType = "services"
	WidgetContact  WidgetType = "contact"
	WidgetMap      WidgetType = "map"
)

// WidgetTypes lists every widget in its default display order.
var WidgetTypes = []WidgetType{
	WidgetProfile,
	WidgetBio,
	WidgetLinks,
	WidgetSocial,
	WidgetServices,
	WidgetContact,
	WidgetMap,
}

// DefaultWidgetOrder returns the fallback display rank for widgets
// without a stored setting (profile=1 .. map=7).
func DefaultWidgetOrder(t WidgetType) int {
	for i, wt := range WidgetTypes {
		if wt == t {
			return i + 1
		}
	}
	return len(WidgetTypes) + 1
}

func ValidWidgetType(t WidgetType) bool {
	for _, wt := range WidgetTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// WidgetSetting controls visibility and display order of one widget on one card.
// At most one row exists per (profile, widget type) pair.
type WidgetSetting struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_widget_settings_profile_type" json:"profile_id"`
	WidgetType WidgetType `gorm:"size:20;not null;uniqueIndex:idx_widget_settings_profile_type" json:"widget_type"`
	Enabled    bool       `gorm:"default:true" json:"enabled"`
	Order      int        `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (w *WidgetSetting) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// DefaultWidgetSettings builds the seven per-widget rows created alongside a new card.
func DefaultWidgetSettings(profileID uuid.UUID) []WidgetSetting {
	settings := make([]WidgetSetting, 0, len(WidgetTypes))
	for i, wt := range WidgetTypes {
		settings = append(settings, WidgetSetting{
			ProfileID:  profileID,
			WidgetType: wt,
			Enabled:    true,
			Order:      i + 1,
		})
	}
	return settings
}
