package service

import (
	"context"

	"accesshub/internal/middleware"
	"accesshub/internal/models"
	"accesshub/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateRole reassigns a user's role. Role changes take effect on the next
// request because role gates re-read the user from the database.
func (s *UserService) UpdateRole(ctx context.Context, targetID uint, role string) (*models.User, error) {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, models.NewValidationError("Role must be one of Employee, Manager, Admin")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = parsed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user role updated",
		"user_id", user.ID,
		"role", user.Role,
	)
	return user, nil
}
