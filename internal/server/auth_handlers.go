package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"accesshub/internal/middleware"
	"accesshub/internal/models"
	"accesshub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 24 * time.Hour
)

// userResponse is the sanitized user shape returned by auth and user
// endpoints.
type userResponse struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Username already taken", nil))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Everyone starts as Employee; role upgrades go through the admin
	// role endpoint.
	user := &models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     models.RoleEmployee,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return respondServiceError(c, createErr)
	}

	accessToken, refreshToken, err := s.generateTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          toUserResponse(user),
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	accessToken, refreshToken, err := s.generateTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          toUserResponse(user),
	})
}

// Refresh handles POST /api/auth/refresh. The refresh token travels in the
// Authorization header; a successful call rotates both tokens.
func (s *Server) Refresh(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Refresh token is required"))
	}

	claims, err := middleware.ParseToken(tokenString, s.config.JWTRefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				&models.AppError{
					Code:    models.CodeUnauthorized,
					Message: "Refresh token has expired",
					Meta:    map[string]any{"code": "TOKEN_EXPIRED"},
				})
		}
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid refresh token"))
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid user ID in token"))
	}

	// Re-read the user so a role change or deletion invalidates the
	// rotated tokens.
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("User no longer exists"))
	}

	accessToken, refreshToken, err := s.generateTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout handles POST /api/auth/logout by blacklisting the access token's
// JTI until the token would expire anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Access token is required"))
	}

	claims, err := middleware.ParseToken(tokenString, s.config.JWTAccessSecret)
	if err != nil {
		// An expired or invalid token has nothing left to revoke.
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	if s.redis != nil && claims.JTI != "" {
		if err := s.redis.Set(c.Context(), "blacklist:"+claims.JTI, "1", accessTokenTTL).Err(); err != nil {
			middleware.RedisErrors.WithLabelValues("blacklist").Inc()
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// generateTokenPair mints an access and a refresh token for the user. The
// two tokens carry the same claim shape but are signed with separate
// secrets and lifetimes.
func (s *Server) generateTokenPair(user *models.User) (string, string, error) {
	accessToken, err := s.signToken(user, s.config.JWTAccessSecret, accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.signToken(user, s.config.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *Server) signToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     string(user.Role),
		"iss":      middleware.TokenIssuer,
		"aud":      middleware.TokenAudience,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
