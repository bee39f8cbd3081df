package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	config "github.com/serenata/whistleblower/configs"
)

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// AuthMiddleware guards the admin routes with the configured API key,
// accepted as the X-Api-Key header or an api_key query parameter.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get("X-Api-Key")
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}

		if m.cfg.AdminAPIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.AdminAPIKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid API key",
			})
		}
		return c.Next()
	}
}
