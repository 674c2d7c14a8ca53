package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeLocalKey is the key under which RequestTime stores the timestamp.
const RequestTimeLocalKey = "request_time"

// RequestTimeLayout renders UTC with millisecond precision, e.g. 2024-05-01T10:04:05.123Z.
const RequestTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// RequestTime stamps each request with the time it was received.
// now may be nil, in which case time.Now is used.
func RequestTime(now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		c.Locals(RequestTimeLocalKey, now().UTC().Format(RequestTimeLayout))
		return c.Next()
	}
}
