package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	httpUtil "github.com/reddaiahsirigireddy/shortt/internal/http/util"
)

// Tokens below this length are rejected before any comparison happens.
const minTokenLength = 8

// SiteTokenGate protects the management API. Every /api/* route requires the
// configured site token, except the listed open paths, which stay reachable
// by both tiers (the create endpoint re-derives the tier itself). Redirect
// routes outside /api/ pass through untouched.
func SiteTokenGate(siteToken string, openPaths ...string) fiber.Handler {
	open := make(map[string]bool, len(openPaths))
	for _, p := range openPaths {
		open[p] = true
	}

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if open[path] {
			return c.Next()
		}
		if !strings.HasPrefix(path, "/api/") {
			return c.Next()
		}

		token := httpUtil.ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if token != "" && len(token) < minTokenLength {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token is too short",
			})
		}
		if token == "" || token != siteToken {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		return c.Next()
	}
}
