package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets a default Cache-Control header on GET responses that
// do not carry one. Grid geometry never changes for a running process, so
// most endpoints are long lived.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || c.Response().StatusCode() != fiber.StatusOK {
			return err
		}
		if c.GetRespHeader(fiber.HeaderCacheControl) != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "no-cache"
		case path == "/metrics":
			ttl = "no-cache"
		case strings.HasPrefix(path, "/v1/tiles/") && strings.HasSuffix(path, "/hit"):
			ttl = "public, max-age=3600"
		case strings.HasPrefix(path, "/v1/tiles/"):
			ttl = "public, max-age=86400"
		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=3600"
		}

		if ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}

		return err
	}
}
