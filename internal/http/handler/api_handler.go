package handler

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
	"github.com/reddaiahsirigireddy/shortt/internal/app/repository"
	"github.com/reddaiahsirigireddy/shortt/internal/app/service"
	httpUtil "github.com/reddaiahsirigireddy/shortt/internal/http/util"
	"go.uber.org/zap"
)

// APIDeps groups dependencies required by API handlers.
type APIDeps struct {
	Logger      *zap.Logger
	LinkService service.LinkService
	Validator   *service.SlugValidator
}

// APIHandler implements the link management endpoints. It owns schema
// validation; candidates that reach the service are already well formed.
type APIHandler struct {
	logger      *zap.Logger
	linkService service.LinkService
	validator   *service.SlugValidator
}

// NewAPIHandler creates an API handler with the provided dependencies.
func NewAPIHandler(deps APIDeps) *APIHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		logger:      logger,
		linkService: deps.LinkService,
		validator:   deps.Validator,
	}
}

// Register wires API routes onto the provided router.
func (h *APIHandler) Register(router fiber.Router) {
	api := router.Group("/api")
	{
		link := api.Group("/link")
		{
			link.Post("/create", h.CreateLink)
			link.Get("/:slug", h.GetLink)
		}
	}
}

// CreateLinkRequest represents the request body for creating a link.
type CreateLinkRequest struct {
	Slug       string `json:"slug,omitempty"`
	URL        string `json:"url" validate:"required,url"`
	Comment    string `json:"comment,omitempty"`
	Expiration *int64 `json:"expiration,omitempty"`
}

// LinkResponse is the public projection of a stored link.
type LinkResponse struct {
	Slug       string `json:"slug"`
	URL        string `json:"url"`
	Comment    string `json:"comment,omitempty"`
	Expiration *int64 `json:"expiration,omitempty"`
}

// CreateLinkResponse represents the response for creating a link.
type CreateLinkResponse struct {
	Link      LinkResponse `json:"link"`
	ShortLink string       `json:"shortLink"`
}

func linkResponse(link *model.Link) LinkResponse {
	return LinkResponse{
		Slug:       link.Slug,
		URL:        link.URL,
		Comment:    link.Comment,
		Expiration: link.Expiration,
	}
}

// CreateLink handles POST /api/link/create. The endpoint is reachable by
// both tiers; the service decides the expiration policy from the credential.
func (h *APIHandler) CreateLink(c *fiber.Ctx) error {
	var req CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
		})
	}
	if parsed, err := url.ParseRequestURI(req.URL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url must be a valid http(s) URL",
		})
	}

	if req.Slug == "" {
		slug, err := service.GenerateSlug(0)
		if err != nil {
			h.logger.Error("failed to generate slug", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create link",
			})
		}
		req.Slug = slug
	} else if err := h.validator.Validate(req.Slug); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Expirations at or before the current time are rejected here rather
	// than stored and immediately expired.
	if req.Expiration != nil && *req.Expiration <= time.Now().Unix() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "expiration must be in the future",
		})
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := h.linkService.CreateLink(ctx, service.CreateLinkInput{
		Slug:       req.Slug,
		URL:        req.URL,
		Comment:    req.Comment,
		Expiration: req.Expiration,
		Credential: httpUtil.ExtractBearer(c.Get(fiber.HeaderAuthorization)),
		Scheme:     c.Protocol(),
		Host:       c.Hostname(),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLinkExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "link already exists",
			})
		case errors.Is(err, service.ErrInvalidLink):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid link",
			})
		default:
			h.logger.Error("failed to create link", zap.Error(err), zap.String("slug", req.Slug))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create link",
			})
		}
	}

	h.logger.Info("link created",
		zap.String("slug", result.Link.Slug),
		zap.String("tier", result.Tier.String()),
	)

	return c.Status(fiber.StatusCreated).JSON(CreateLinkResponse{
		Link:      linkResponse(result.Link),
		ShortLink: result.ShortLink,
	})
}

// GetLink handles GET /api/link/:slug (privileged surface, gated upstream).
func (h *APIHandler) GetLink(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "slug is required",
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
				"error": "link not found",
			})
		}
		h.logger.Error("failed to get link", zap.Error(err), zap.String("slug", slug))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get link",
		})
	}

	return c.JSON(linkResponse(link))
}
