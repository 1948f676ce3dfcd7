// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"errors"
	"strconv"
	"strings"

	"accesshub/internal/config"
	"accesshub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// Token issuer/audience claims. Tokens minted by other services are rejected.
const (
	TokenIssuer   = "accesshub-api"
	TokenAudience = "accesshub-client"
)

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// On success it stores userID, username, and role in Fiber locals. The role is
// the one cached in the token; handlers that gate on role re-read the user so
// role changes take effect without waiting for token refresh.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Access token is required"))
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid authorization header format"))
	}

	claims, err := ParseToken(parts[1], cfg.JWTAccessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				&models.AppError{
					Code:    models.CodeUnauthorized,
					Message: "Access token has expired",
					Meta:    map[string]any{"code": "TOKEN_EXPIRED"},
				})
		}
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid access token"))
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid user ID in token"))
	}

	c.Locals("userID", userID)
	c.Locals("username", claims.Username)
	c.Locals("role", claims.Role)
	c.Locals("jti", claims.JTI)

	// Sync to UserContext so the context-aware logger picks these up in
	// deeper layers.
	c.SetUserContext(WithUserID(c.UserContext(), userID))

	return c.Next()
}

// Claims is the validated claim set of an AccessHub token.
type Claims struct {
	Subject  string
	Username string
	Role     models.Role
	JTI      string
}

// UserID parses the subject claim into a user id.
func (cl Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(cl.Subject, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ParseToken validates an HMAC-signed token against the given secret and
// returns its claims. Used for both access and refresh tokens, which differ
// only in secret and lifetime.
func ParseToken(tokenString, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return Claims{}, jwt.ErrTokenInvalidSubject
	}

	out := Claims{Subject: sub}
	if username, ok := mapClaims["username"].(string); ok {
		out.Username = username
	}
	if roleStr, ok := mapClaims["role"].(string); ok {
		if role, valid := models.ParseRole(roleStr); valid {
			out.Role = role
		}
	}
	if jti, ok := mapClaims["jti"].(string); ok {
		out.JTI = jti
	}
	return out, nil
}
