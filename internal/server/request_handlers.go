package server

import (
	"accesshub/internal/models"
	"accesshub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest handles POST /api/requests
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		SoftwareID uint   `json:"software_id"`
		AccessType string `json:"access_type"`
		Reason     string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.accessService.SubmitRequest(c.Context(), service.SubmitRequestInput{
		UserID:     userID,
		SoftwareID: req.SoftwareID,
		AccessType: req.AccessType,
		Reason:     req.Reason,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetMyRequests handles GET /api/requests/me
func (s *Server) GetMyRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	requests, err := s.accessService.ListMyRequests(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// GetAllRequests handles GET /api/requests (manager only)
func (s *Server) GetAllRequests(c *fiber.Ctx) error {
	requests, err := s.accessService.ListAllRequests(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// UpdateRequestStatus handles PATCH /api/requests/:id (manager only)
func (s *Server) UpdateRequestStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.accessService.DecideRequest(c.Context(), service.DecideRequestInput{
		RequestID: id,
		Status:    req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(request)
}
