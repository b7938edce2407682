package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is one digital business card, addressable by its unique username.
// A user can own several cards; at most one of them is primary.
type Profile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Username            string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	CardName            string    `gorm:"size:100;not null;default:'My Card'" json:"card_name"`
	IsPrimary           bool      `gorm:"index;default:false" json:"is_primary"`
	IsPublic            bool      `gorm:"index;default:true" json:"is_public"`
	OnboardingCompleted bool      `gorm:"default:false" json:"onboarding_completed"`

	DisplayName     *string  `gorm:"size:100" json:"display_name,omitempty"`
	JobTitle        *string  `gorm:"size:100" json:"job_title,omitempty"`
	Company         *string  `gorm:"size:100" json:"company,omitempty"`
	Location        *string  `gorm:"size:100" json:"location,omitempty"`
	Bio             *string  `gorm:"type:text" json:"bio,omitempty"`
	ProfileImageURL *string  `gorm:"type:text" json:"profile_image_url,omitempty"`
	Email           *string  `gorm:"size:100" json:"email,omitempty"`
	Phone           *string  `gorm:"size:20" json:"phone,omitempty"`
	Website         *string  `gorm:"type:text" json:"website,omitempty"`
	Address         *string  `gorm:"size:200" json:"address,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`

	ViewCount int64     `gorm:"default:0" json:"view_count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	CustomLinks    []CustomLink    `gorm:"constraint:OnDelete:CASCADE" json:"custom_links,omitempty"`
	SocialLinks    []SocialLink    `gorm:"constraint:OnDelete:CASCADE" json:"social_links,omitempty"`
	Services       []Service       `gorm:"constraint:OnDelete:CASCADE" json:"services,omitempty"`
	WidgetSettings []WidgetSetting `gorm:"constraint:OnDelete:CASCADE" json:"widget_settings,omitempty"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CustomLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"profile_id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	ImageURL  *string   `gorm:"type:text" json:"image_url,omitempty"`
	Order     int       `gorm:"column:sort_order;index;default:0" json:"order"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *CustomLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type SocialLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"profile_id"`
	Platform  string    `gorm:"size:30;not null" json:"platform"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *SocialLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID `gorm:"type:uuid;index;not null" json:"profile_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description *string   `gorm:"size:200" json:"description,omitempty"`
	Bullets     []string  `gorm:"serializer:json" json:"bullets,omitempty"`
	Icon        *string   `gorm:"size:50" json:"icon,omitempty"`
	Order       int       `gorm:"column:sort_order;index;default:0" json:"order"`
	Enabled     bool      `gorm:"default:true" json:"enabled"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
