package repository

import (
	"context"
	"errors"

	"accesshub/internal/cache"
	"accesshub/internal/models"

	"gorm.io/gorm"
)

// SoftwareRepository defines persistence operations for the software catalog.
type SoftwareRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Software, error)
	GetByName(ctx context.Context, name string) (*models.Software, error)
	Create(ctx context.Context, software *models.Software) error
	List(ctx context.Context) ([]models.Software, error)
}

type softwareRepository struct {
	db *gorm.DB
}

// NewSoftwareRepository returns a new SoftwareRepository implementation.
func NewSoftwareRepository(db *gorm.DB) SoftwareRepository {
	return &softwareRepository{db: db}
}

func (r *softwareRepository) GetByID(ctx context.Context, id uint) (*models.Software, error) {
	var software models.Software
	key := cache.SoftwareKey(id)

	err := cache.Aside(ctx, key, &software, cache.SoftwareTTL, func() error {
		if err := r.db.WithContext(ctx).First(&software, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Software", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &software, nil
}

// GetByName matches the name exactly, case-sensitively. Returns (nil, nil)
// when no entry matches.
func (r *softwareRepository) GetByName(ctx context.Context, name string) (*models.Software, error) {
	var software models.Software
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&software).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &software, nil
}

func (r *softwareRepository) Create(ctx context.Context, software *models.Software) error {
	if err := r.db.WithContext(ctx).Create(software).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Software already exists", nil)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateSoftware(ctx, software.ID)
	return nil
}

func (r *softwareRepository) List(ctx context.Context) ([]models.Software, error) {
	var list []models.Software

	err := cache.Aside(ctx, cache.SoftwareListKey, &list, cache.SoftwareListTTL, func() error {
		if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return list, nil
}
