package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Greeting logs a fixed line for every request before handing it on.
func Greeting(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Info("Hello from the middleware :)")
		return c.Next()
	}
}
