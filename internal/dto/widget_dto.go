package dto

type UpsertWidgetSettingInput struct {
	Enabled *bool `json:"enabled" binding:"required"`
	Order   *int  `json:"order" binding:"omitempty,min=0"`
}

type CreateCustomLinkInput struct {
	Title    string  `json:"title" binding:"required,max=100"`
	URL      string  `json:"url" binding:"required,url"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
	Order    int     `json:"order" binding:"omitempty,min=0"`
	Enabled  *bool   `json:"enabled"`
}

type UpdateCustomLinkInput struct {
	Title    *string `json:"title" binding:"omitempty,max=100"`
	URL      *string `json:"url" binding:"omitempty,url"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
	Order    *int    `json:"order" binding:"omitempty,min=0"`
	Enabled  *bool   `json:"enabled"`
}

type CreateSocialLinkInput struct {
	Platform string `json:"platform" binding:"required,oneof=facebook instagram twitter linkedin youtube spotify tiktok github"`
	URL      string `json:"url" binding:"required,url"`
	Enabled  *bool  `json:"enabled"`
}

type UpdateSocialLinkInput struct {
	Platform *string `json:"platform" binding:"omitempty,oneof=facebook instagram twitter linkedin youtube spotify tiktok github"`
	URL      *string `json:"url" binding:"omitempty,url"`
	Enabled  *bool   `json:"enabled"`
}

type CreateServiceInput struct {
	Title       string   `json:"title" binding:"required,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=200"`
	Bullets     []string `json:"bullets" binding:"omitempty,dive,max=200"`
	Icon        *string  `json:"icon" binding:"omitempty,max=50"`
	Order       int      `json:"order" binding:"omitempty,min=0"`
	Enabled     *bool    `json:"enabled"`
}

type UpdateServiceInput struct {
	Title       *string  `json:"title" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=200"`
	Bullets     []string `json:"bullets" binding:"omitempty,dive,max=200"`
	Icon        *string  `json:"icon" binding:"omitempty,max=50"`
	Order       *int     `json:"order" binding:"omitempty,min=0"`
	Enabled     *bool    `json:"enabled"`
}
