package server

import (
	"accesshub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": out})
}

// UpdateUserRole handles PATCH /api/users/:id/role (admin only)
func (s *Server) UpdateUserRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateRole(c.Context(), id, req.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// GetFeatureFlags handles GET /api/admin/feature-flags, reporting how each
// configured flag evaluates for the calling admin.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	return c.JSON(fiber.Map{"flags": s.featureFlags.Snapshot(userID)})
}
