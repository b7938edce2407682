package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tapfolio.app/backend/internal/model"
)

type CustomLinkRepository interface {
	Create(ctx context.Context, link *model.CustomLink) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CustomLink, error)
	FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.CustomLink, error)
	Update(ctx context.Context, link *model.CustomLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customLinkRepository struct {
	db *gorm.DB
}

func NewCustomLinkRepository(db *gorm.DB) CustomLinkRepository {
	return &customLinkRepository{db: db}
}

func (r *customLinkRepository) Create(ctx context.Context, link *model.CustomLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *customLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CustomLink, error) {
	var link model.CustomLink
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *customLinkRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.CustomLink, error) {
	var links []model.CustomLink
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("sort_order ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *customLinkRepository) Update(ctx context.Context, link *model.CustomLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *customLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CustomLink{}, "id = ?", id).Error
}

type SocialLinkRepository interface {
	Create(ctx context.Context, link *model.SocialLink) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SocialLink, error)
	FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.SocialLink, error)
	Update(ctx context.Context, link *model.SocialLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type socialLinkRepository struct {
	db *gorm.DB
}

func NewSocialLinkRepository(db *gorm.DB) SocialLinkRepository {
	return &socialLinkRepository{db: db}
}

func (r *socialLinkRepository) Create(ctx context.Context, link *model.SocialLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *socialLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SocialLink, error) {
	var link model.SocialLink
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *socialLinkRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.SocialLink, error) {
	var links []model.SocialLink
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *socialLinkRepository) Update(ctx context.Context, link *model.SocialLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *socialLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SocialLink{}, "id = ?", id).Error
}
