package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tapfolio.app/backend/internal/model"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.Service, error)
	Update(ctx context.Context, service *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("sort_order ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Service{}, "id = ?", id).Error
}
