// Package server contains the HTTP handlers and Fiber wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	_ "warbler/docs" // swagger docs
	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/observability"
	"warbler/internal/repository"
	"warbler/internal/service"
	"warbler/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// sessionStore is the session backend the server needs: open a session at
// login, resolve cookies on every request, revoke at logout and account
// deletion.
type sessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Resolve(ctx context.Context, token string) (uint, error)
	Destroy(ctx context.Context, token string) error
	DestroyAllForUser(ctx context.Context, userID uint) error
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       sessionStore

	userRepo   repository.UserRepository
	warbleRepo repository.WarbleRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository

	authService   *service.AuthService
	userService   *service.UserService
	warbleService *service.WarbleService
	followService *service.FollowService
	likeService   *service.LikeService
}

// NewServer creates a server instance, establishing the database and Redis
// connections from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: observability.InitHTTPMetrics("warbler-api"),
		userRepo:       repository.NewUserRepository(db),
		warbleRepo:     repository.NewWarbleRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
	}

	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute
	store := session.NewStore(redisClient, ttl, middleware.Logger)
	s.sessions = store

	s.authService = service.NewAuthService(s.userRepo, store)
	s.userService = service.NewUserService(s.userRepo)
	s.warbleService = service.NewWarbleService(s.warbleRepo, s.userRepo)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.warbleRepo)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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

	// Resolve the session cookie on every request; anonymous on failure.
	app.Use(middleware.LoadSession(s.sessions))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Warbler Metrics Dashboard",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Landing / home feed
	app.Get("/", s.Home)

	// Auth
	app.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	app.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/logout", middleware.AuthRequired(), s.Logout)

	// Users
	users := app.Group("/users")
	users.Get("/", s.ListUsers)

	protected := users.Group("", middleware.AuthRequired())
	// Specific routes before the generic /:id route.
	protected.Get("/profile", s.GetMyProfile)
	protected.Post("/profile", s.UpdateMyProfile)
	protected.Post("/profile/password", s.ChangePassword)
	protected.Post("/delete", s.DeleteAccount)
	protected.Post("/follow/:id", s.FollowUser)
	protected.Post("/stop-following/:id", s.StopFollowing)
	protected.Post("/add_like/:message_id", s.ToggleLike)
	protected.Get("/:id/following", s.GetFollowing)
	protected.Get("/:id/followers", s.GetFollowers)
	protected.Get("/:id/likes", s.GetLikedWarbles)
	protected.Get("/:id/liked_warbles", s.GetLikedWarbles)
	protected.Get("/:id", s.GetUserProfile)

	// Messages
	messages := app.Group("/messages", middleware.AuthRequired())
	messages.Post("/new", middleware.RateLimit(
		s.redis, 15, time.Minute, "post_warble"), s.CreateWarble)
	messages.Post("/:id/delete", s.DeleteWarble)
	messages.Get("/:id", s.GetWarble)
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

	// Redis backs sessions, so readiness requires it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Warbler API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				"error", err.Error())
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err.Error())
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr.Error())
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr.Error())
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
