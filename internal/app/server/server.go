package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/reddaiahsirigireddy/shortt/config"
	"github.com/reddaiahsirigireddy/shortt/internal/app/service"
	inthttp "github.com/reddaiahsirigireddy/shortt/internal/http/handler"
	"github.com/reddaiahsirigireddy/shortt/internal/http/middleware"
	"go.uber.org/zap"
)

// Dependencies bundles everything the HTTP server needs.
type Dependencies struct {
	Logger         *zap.Logger
	Config         *config.Config
	Redis          *redis.Client
	Postgres       *pgxpool.Pool
	LinkService    service.LinkService
	SlugValidator  *service.SlugValidator
	ClickPublisher *service.ClickPublisher
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New()

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

const (
	createPath    = "/api/link/create"
	readinessPath = "/api/health"
)

func (s *Server) registerMiddleware() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use(middleware.Logger(s.deps.Logger))
	s.app.Use(middleware.CORS())

	// The routing gate: the management API needs the site token, the create
	// path stays open for both tiers and the readiness probe for orchestrators.
	s.app.Use(middleware.SiteTokenGate(s.deps.Config.Link.SiteToken, createPath, readinessPath))

	// Only creation is rate limited; redirects are read-only.
	if s.deps.Redis != nil {
		s.app.Use(createPath, middleware.RateLimit(s.deps.Redis, middleware.DefaultRateLimitConfig(), s.deps.Logger))
	}
}

func (s *Server) registerRoutes() {
	s.app.Get(readinessPath, s.readiness)

	apiHandler := inthttp.NewAPIHandler(inthttp.APIDeps{
		Logger:      s.deps.Logger,
		LinkService: s.deps.LinkService,
		Validator:   s.deps.SlugValidator,
	})
	apiHandler.Register(s.app)

	// Registered last so /:slug does not shadow the API routes.
	redirectHandler := inthttp.NewRedirectHandler(inthttp.RedirectDeps{
		Logger:         s.deps.Logger,
		LinkService:    s.deps.LinkService,
		ClickPublisher: s.deps.ClickPublisher,
	})
	redirectHandler.Register(s.app)
}

// readiness reports whether the backing stores are reachable.
func (s *Server) readiness(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	checks := fiber.Map{}
	healthy := true

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}
	if s.deps.Postgres != nil {
		if err := s.deps.Postgres.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	status := fiber.StatusOK
	label := "ok"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		label = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": label,
		"checks": checks,
	})
}
