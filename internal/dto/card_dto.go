package dto

import (
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/internal/widget"
)

// OnboardingInput claims the user's first username and creates the primary card.
type OnboardingInput struct {
	Username string `json:"username" binding:"required,min=3,max=50,username"`
}

type CreateCardInput struct {
	CardName  string `json:"card_name" binding:"required,max=100"`
	Username  string `json:"username" binding:"required,min=3,max=50,username"`
	IsPublic  *bool  `json:"is_public"`
	IsPrimary bool   `json:"is_primary"`

	DisplayName     *string  `json:"display_name" binding:"omitempty,max=100"`
	JobTitle        *string  `json:"job_title" binding:"omitempty,max=100"`
	Company         *string  `json:"company" binding:"omitempty,max=100"`
	Location        *string  `json:"location" binding:"omitempty,max=100"`
	Bio             *string  `json:"bio" binding:"omitempty,max=500"`
	ProfileImageURL *string  `json:"profile_image_url" binding:"omitempty,url"`
	Email           *string  `json:"email" binding:"omitempty,email"`
	Phone           *string  `json:"phone" binding:"omitempty,max=20"`
	Website         *string  `json:"website" binding:"omitempty,url"`
	Address         *string  `json:"address" binding:"omitempty,max=200"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`

	// EnabledWidgets overrides the default-on state per widget at creation time.
	EnabledWidgets map[model.WidgetType]bool `json:"enabled_widgets"`
}

type UpdateVisibilityInput struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

type UpdateProfileInput struct {
	DisplayName     *string `json:"display_name" binding:"omitempty,max=100"`
	JobTitle        *string `json:"job_title" binding:"omitempty,max=100"`
	Company         *string `json:"company" binding:"omitempty,max=100"`
	Location        *string `json:"location" binding:"omitempty,max=100"`
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,url"`
	Bio             *string `json:"bio" binding:"omitempty,max=500"`
	CardName        *string `json:"card_name" binding:"omitempty,max=100"`
}

type UpdateBioInput struct {
	Bio *string `json:"bio" binding:"omitempty,max=500"`
}

type UpdateContactInput struct {
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Website *string `json:"website" binding:"omitempty,url"`
	Address *string `json:"address" binding:"omitempty,max=200"`
}

type UpdateLocationInput struct {
	Address   *string  `json:"address" binding:"omitempty,max=200"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// CardPageResponse is the resolved public view of one card.
type CardPageResponse struct {
	Profile *model.Profile    `json:"profile"`
	Widgets []widget.Resolved `json:"widgets"`
	IsOwner bool              `json:"is_owner"`
	Mode    widget.Mode       `json:"mode"`
}

type DirectoryEntry struct {
	Username        string  `json:"username"`
	CardName        string  `json:"card_name"`
	DisplayName     *string `json:"display_name,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	Company         *string `json:"company,omitempty"`
	Location        *string `json:"location,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}
