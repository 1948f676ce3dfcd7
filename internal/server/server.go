// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"accesshub/internal/cache"
	"accesshub/internal/config"
	"accesshub/internal/database"
	"accesshub/internal/featureflags"
	"accesshub/internal/middleware"
	"accesshub/internal/models"
	"accesshub/internal/repository"
	"accesshub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	softwareRepo   repository.SoftwareRepository
	requestRepo    repository.RequestRepository
	featureFlags   *featureflags.Manager

	accessService   *service.AccessService
	softwareService *service.SoftwareService
	userService     *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	softwareRepo := repository.NewSoftwareRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	middleware.InitMiddleware(cfg)

	prom := middleware.InitMetrics("accesshub-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		softwareRepo:   softwareRepo,
		requestRepo:    requestRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	server.accessService = service.NewAccessService(requestRepo, softwareRepo)
	server.softwareService = service.NewSoftwareService(softwareRepo)
	server.userService = service.NewUserService(userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "AccessHub Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)

	// Catalog browsing is open; registering entries is not.
	api.Get("/software", s.GetSoftwareList)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired, s.RevocationGuard())

	software := protected.Group("/software")
	software.Post("/", s.AdminRequired(), s.CreateSoftware)
	software.Post("/suggestions", s.SuggestSoftware)
	software.Get("/:id", s.GetSoftware)

	users := protected.Group("/users")
	users.Patch("/:id/role", s.AdminRequired(), s.UpdateUserRole)
	users.Get("/:id", s.GetUser)

	requests := protected.Group("/requests")
	requests.Post("/", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_request"), s.CreateRequest)
	requests.Get("/me", s.GetMyRequests)
	requests.Get("/", s.ManagerRequired(), s.GetAllRequests)
	requests.Patch("/:id", s.ManagerRequired(), s.UpdateRequestStatus)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
	admin.Get("/users", s.GetAllUsers)
	admin.Get("/suggestions", s.GetSoftwareSuggestions)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API stays functional without Redis (cache and rate limits
		// degrade), so an absent client only flags the check.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// RevocationGuard rejects tokens whose JTI has been blacklisted by logout.
// Must be placed after the auth middleware so the jti local is populated.
func (s *Server) RevocationGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.redis == nil {
			return c.Next()
		}
		jti, _ := c.Locals("jti").(string)
		if jti == "" {
			return c.Next()
		}
		blacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
		if err == nil && blacklisted > 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token has been revoked"))
		}
		return c.Next()
	}
}

// ManagerRequired returns middleware that rejects non-manager users with 403.
// The role is re-read from the database so a demotion takes effect
// immediately, not when the token expires.
func (s *Server) ManagerRequired() fiber.Handler {
	return s.roleRequired("Manager access required", models.RoleManager)
}

// AdminRequired returns middleware that rejects non-admin users with 403.
func (s *Server) AdminRequired() fiber.Handler {
	return s.roleRequired("Admin access required", models.RoleAdmin)
}

func (s *Server) roleRequired(message string, allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		role, err := s.roleByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError(message))
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "AccessHub API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
