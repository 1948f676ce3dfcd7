package service

import (
	"context"
	"strings"

	"accesshub/internal/middleware"
	"accesshub/internal/models"
	"accesshub/internal/repository"
)

// SoftwareService guards the software registry.
type SoftwareService struct {
	softwareRepo repository.SoftwareRepository
}

// CreateSoftwareInput carries a new catalog entry. AccessLevels is optional;
// nil means the default tier set.
type CreateSoftwareInput struct {
	Name         string
	Description  string
	AccessLevels []string
}

func NewSoftwareService(softwareRepo repository.SoftwareRepository) *SoftwareService {
	return &SoftwareService{softwareRepo: softwareRepo}
}

// CreateSoftware registers a catalog entry. Names are matched exactly and
// case-sensitively, so "Jira" and "jira" are distinct entries.
func (s *SoftwareService) CreateSoftware(ctx context.Context, in CreateSoftwareInput) (*models.Software, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	levels := models.DefaultTiers()
	if in.AccessLevels != nil {
		levels = make(models.TierList, 0, len(in.AccessLevels))
		for _, raw := range in.AccessLevels {
			tier, ok := models.ParseAccessTier(raw)
			if !ok {
				return nil, models.NewValidationError("Access levels must be from Read, Write, Admin")
			}
			levels = append(levels, tier)
		}
	}

	existing, err := s.softwareRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Software already exists", map[string]any{
			"existingId": existing.ID,
		})
	}

	software := &models.Software{
		Name:         name,
		Description:  in.Description,
		AccessLevels: levels,
	}
	if err := s.softwareRepo.Create(ctx, software); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "software registered",
		"software_id", software.ID,
		"name", software.Name,
	)
	return software, nil
}

// ListSoftware returns the whole catalog.
func (s *SoftwareService) ListSoftware(ctx context.Context) ([]models.Software, error) {
	return s.softwareRepo.List(ctx)
}

// GetSoftware returns a single entry by id.
func (s *SoftwareService) GetSoftware(ctx context.Context, id uint) (*models.Software, error) {
	return s.softwareRepo.GetByID(ctx, id)
}
