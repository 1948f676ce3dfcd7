package server

import (
	"encoding/json"
	"errors"
	"time"

	"accesshub/internal/middleware"
	"accesshub/internal/models"
	"accesshub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSoftwareList handles GET /api/software
func (s *Server) GetSoftwareList(c *fiber.Ctx) error {
	list, err := s.softwareService.ListSoftware(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"software": list})
}

// GetSoftware handles GET /api/software/:id
func (s *Server) GetSoftware(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	software, err := s.softwareService.GetSoftware(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(software)
}

// CreateSoftware handles POST /api/software (admin only)
func (s *Server) CreateSoftware(c *fiber.Ctx) error {
	var req struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		AccessLevels []string `json:"access_levels"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	software, err := s.softwareService.CreateSoftware(c.Context(), service.CreateSoftwareInput{
		Name:         req.Name,
		Description:  req.Description,
		AccessLevels: req.AccessLevels,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(software)
}

// softwareSuggestion is what employees file when the catalog is missing a
// tool they need. Suggestions are parked in Redis for admins to review;
// they are not catalog entries.
type softwareSuggestion struct {
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SuggestedAt time.Time `json:"suggested_at"`
}

const suggestionsKey = "software:suggestions"

var errSuggestionsUnavailable = errors.New("suggestion store unavailable")

// SuggestSoftware handles POST /api/software/suggestions, gated by the
// software_suggestions feature flag.
func (s *Server) SuggestSoftware(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if !s.featureFlags.Enabled("software_suggestions", userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Software suggestions are not enabled"))
	}
	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(errSuggestionsUnavailable))
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	suggestion := softwareSuggestion{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		SuggestedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(suggestion)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if err := s.redis.RPush(c.Context(), suggestionsKey, payload).Err(); err != nil {
		middleware.RedisErrors.WithLabelValues("suggestions").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "received"})
}

// GetSoftwareSuggestions handles GET /api/admin/suggestions
func (s *Server) GetSoftwareSuggestions(c *fiber.Ctx) error {
	if s.redis == nil {
		return c.JSON(fiber.Map{"suggestions": []softwareSuggestion{}})
	}

	raw, err := s.redis.LRange(c.Context(), suggestionsKey, 0, -1).Result()
	if err != nil {
		middleware.RedisErrors.WithLabelValues("suggestions").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	suggestions := make([]softwareSuggestion, 0, len(raw))
	for _, item := range raw {
		var suggestion softwareSuggestion
		if err := json.Unmarshal([]byte(item), &suggestion); err != nil {
			continue
		}
		suggestions = append(suggestions, suggestion)
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}
