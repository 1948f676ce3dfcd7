package repository

import (
	"context"
	"errors"

	"accesshub/internal/models"

	"gorm.io/gorm"
)

// RequestRepository defines persistence operations for access requests.
type RequestRepository interface {
	GetByID(ctx context.Context, id uint) (*models.AccessRequest, error)
	ListByUser(ctx context.Context, userID uint) ([]models.AccessRequest, error)
	ListAll(ctx context.Context) ([]models.AccessRequest, error)
	FindApproved(ctx context.Context, userID, softwareID uint) ([]models.AccessRequest, error)
	FindPending(ctx context.Context, userID, softwareID uint) (*models.AccessRequest, error)
	CreatePending(ctx context.Context, request *models.AccessRequest) error
	Update(ctx context.Context, request *models.AccessRequest) error
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository returns a new RequestRepository implementation.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Software").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *requestRepository) ListByUser(ctx context.Context, userID uint) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	err := r.db.WithContext(ctx).
		Preload("Software").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *requestRepository) ListAll(ctx context.Context) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Software").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// FindApproved returns every approved request the user holds for the
// software, newest first. Admissibility checks compare against all of them.
func (r *requestRepository) FindApproved(ctx context.Context, userID, softwareID uint) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND software_id = ? AND status = ?", userID, softwareID, models.StatusApproved).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// FindPending returns the user's open request for the software, or
// (nil, nil) when none exists.
func (r *requestRepository) FindPending(ctx context.Context, userID, softwareID uint) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND software_id = ? AND status = ?", userID, softwareID, models.StatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// CreatePending inserts a new pending request. The pending-uniqueness check
// is re-run inside the transaction so two concurrent submissions for the
// same pair cannot both land; on postgres the partial unique index backs
// this up at the schema level.
func (r *requestRepository) CreatePending(ctx context.Context, request *models.AccessRequest) error {
	request.Status = models.StatusPending

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.AccessRequest
		err := tx.
			Where("user_id = ? AND software_id = ? AND status = ?",
				request.UserID, request.SoftwareID, models.StatusPending).
			First(&existing).Error
		switch {
		case err == nil:
			return models.NewConflictError(
				"You already have an active request for this software",
				existing.PendingConflictMeta(),
			)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return models.NewInternalError(err)
		}

		if err := tx.Create(request).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError(
					"You already have an active request for this software", nil)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	return err
}

func (r *requestRepository) Update(ctx context.Context, request *models.AccessRequest) error {
	if err := r.db.WithContext(ctx).Save(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
