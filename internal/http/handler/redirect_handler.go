package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reddaiahsirigireddy/shortt/internal/app/repository"
	"github.com/reddaiahsirigireddy/shortt/internal/app/service"
	"go.uber.org/zap"
)

// RedirectDeps groups dependencies required by the resolution handler.
type RedirectDeps struct {
	Logger         *zap.Logger
	LinkService    service.LinkService
	ClickPublisher *service.ClickPublisher
}

// RedirectHandler resolves slugs to their target URLs.
type RedirectHandler struct {
	logger         *zap.Logger
	linkService    service.LinkService
	clickPublisher *service.ClickPublisher
}

// NewRedirectHandler creates a redirect handler with the provided dependencies.
func NewRedirectHandler(deps RedirectDeps) *RedirectHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedirectHandler{
		logger:         logger,
		linkService:    deps.LinkService,
		clickPublisher: deps.ClickPublisher,
	}
}

// Register wires redirect routes onto the provided router.
func (h *RedirectHandler) Register(router fiber.Router) {
	router.Get("/", h.Health)
	router.Get("/health", h.Health)
	router.Get("/:slug", h.Resolve)
}

// Health is a simple liveness endpoint.
func (h *RedirectHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "shortt",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Resolve handles GET /:slug with a 302 to the stored target.
func (h *RedirectHandler) Resolve(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing link slug",
		})
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	link, err := h.linkService.GetLink(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "short link not found",
			})
		}
		h.logger.Error("failed to load link", zap.Error(err), zap.String("slug", slug))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	// The store TTL removes expired records; this covers the window between
	// logical expiry and eviction.
	if link.Expiration != nil && time.Now().Unix() > *link.Expiration {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "short link not found",
		})
	}

	if h.clickPublisher != nil {
		go h.publishClickEvent(link.Slug, c.IP(), c.Get("User-Agent"), c.Get("Referer"))
	}

	h.logger.Debug("redirecting short link", zap.String("slug", link.Slug), zap.String("target", link.URL))
	return c.Redirect(link.URL, fiber.StatusFound)
}

func (h *RedirectHandler) publishClickEvent(slug, ip, userAgent, referer string) {
	if err := h.clickPublisher.Publish(slug, ip, userAgent, referer); err != nil {
		h.logger.Error("failed to publish click event", zap.Error(err), zap.String("slug", slug))
	}
}
