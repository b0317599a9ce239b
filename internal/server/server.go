// Package server contains the HTTP handlers and routing for the web application.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"quill/internal/bootstrap"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/passwords"
	"quill/internal/repository"
	"quill/internal/service"
	"quill/internal/session"
	"quill/internal/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

// httpMetrics returns the process-wide HTTP metrics middleware. Its
// collectors live in the default registry, which allows one registration only.
func httpMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New("quill")
	})
	return promMiddleware
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	views          *views.Engine
	sessions       *session.Manager
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	authService    *service.AuthService
	accountService *service.AccountService
	postService    *service.PostService
	catalogService *service.CatalogService
}

// Option customizes NewServerWithDeps.
type Option func(*options)

type options struct {
	hasher   passwords.Hasher
	messages repository.MessageStore
	courses  repository.CourseStore
}

// WithHasher overrides the password hasher (tests use a cheap bcrypt cost).
func WithHasher(h passwords.Hasher) Option {
	return func(o *options) { o.hasher = h }
}

// WithCatalog replaces the seeded in-memory message and course stores.
func WithCatalog(messages repository.MessageStore, courses repository.CourseStore) Option {
	return func(o *options) {
		o.messages = messages
		o.courses = courses
	}
}

// NewServer connects the runtime dependencies described by cfg and builds a Server on them.
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{SeedBuiltIns: cfg.SeedBuiltIns})
	if err != nil {
		return nil, err
	}

	srv, err := NewServerWithDeps(cfg, db, redisClient, opts...)
	if err != nil {
		_ = database.Close(db)
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case sessions are kept in process memory.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...Option) (*Server, error) {
	o := options{hasher: passwords.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.messages == nil {
		o.messages = repository.NewMemoryMessageStore(repository.DefaultMessages)
	}
	if o.courses == nil {
		o.courses = repository.NewMemoryCourseStore(repository.DefaultCourses)
	}

	engine := views.New()
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}

	sessionCfg := session.Config{
		Expiration:   time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		CookieSecure: cfg.CookieSecure,
	}
	if redisClient != nil {
		sessionCfg.Storage = session.NewRedisStorage(redisClient)
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: httpMetrics(),
		views:          engine,
		sessions:       session.NewManager(sessionCfg),
		userRepo:       repository.NewUserRepository(db, o.hasher),
		postRepo:       repository.NewPostRepository(db),
	}
	s.authService = service.NewAuthService(s.userRepo)
	s.accountService = service.NewAccountService(s.userRepo)
	s.postService = service.NewPostService(s.postRepo)
	s.catalogService = service.NewCatalogService(o.messages, o.courses)

	s.app = fiber.New(fiber.Config{
		AppName:      "Quill",
		Views:        engine,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(s.app)
	s.SetupRoutes(s.app)

	return s, nil
}

// App returns the configured fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware configures the middleware that runs for every request.
// Session middleware is attached in SetupRoutes after the probe routes.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing runs before the context middleware so the trace ID reaches the logger.
	app.Use(middleware.TracingMiddleware())

	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Probes
	app.Get("/up", s.Up)
	app.Get("/healthz", s.Up)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Everything below carries an encrypted session cookie.
	app.Use(encryptcookie.New(encryptcookie.Config{Key: s.config.SessionSecret}))
	app.Use(s.SessionMiddleware())

	app.Get("/", s.Index)
	app.Get("/index/", s.Index)

	app.Get("/login/", s.LoginPage)
	app.Post("/login/", s.Login)
	app.Get("/signup/", s.SignupPage)
	app.Post("/signup/", s.Signup)
	app.Get("/logout/", s.Logout)

	app.Get("/account/", s.Account)
	app.Get("/user_edit/", s.UserEditPage)
	app.Post("/user_edit/", s.UserEdit)
	app.Post("/user_delete/", s.UserDelete)

	app.Get("/about/", s.About)
	app.Get("/comments/", s.Comments)
	app.Get("/messages/", s.Messages)
	app.Get("/messages/:idx", s.Message)
	app.Get("/create/", s.CreateMessagePage)
	app.Post("/create/", s.CreateMessage)
	app.Get("/courses/", s.Courses)
	app.Get("/create_course/", s.CreateCoursePage)
	app.Post("/create_course/", s.CreateCourse)

	app.Get("/posts/", s.Posts)
	app.Get("/create_post/", s.CreatePostPage)
	app.Post("/create_post/", s.CreatePost)
	app.Get("/posts/:id/edit/", s.EditPostPage)
	app.Post("/posts/:id/edit/", s.EditPost)
	app.Post("/posts/:id/delete/", s.DeletePost)
}

// Up reports that the process is serving requests.
func (s *Server) Up(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "happy"})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: without it sessions live in memory.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
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

// errorHandler renders the 404 page for missing routes and records, and the
// 500 page for anything unexpected.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case models.HasCode(err, models.CodeNotFound):
		code = fiber.StatusNotFound
	}

	if code >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	view := ""
	switch {
	case code == fiber.StatusNotFound:
		view = "404"
	case code >= fiber.StatusInternalServerError:
		view = "500"
	default:
		return c.Status(code).SendString(err.Error())
	}

	// The session was already saved by SessionMiddleware; only the username is read here.
	data := fiber.Map{}
	if username, ok := c.Locals(localUsername).(string); ok {
		data["Username"] = username
	}

	c.Status(code)
	if renderErr := c.Render(view, data); renderErr != nil {
		return c.Status(code).SendString(fiber.ErrInternalServerError.Message)
	}
	return nil
}

// Start begins serving on the configured port. It blocks until the listener stops.
func (s *Server) Start() error {
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}

	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
