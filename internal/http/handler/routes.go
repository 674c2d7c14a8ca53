package handler

import (
	"github.com/gofiber/fiber/v2"

	"tourapi/internal/service"
)

// APIPrefix is where the tour and user routers are mounted.
const APIPrefix = "/api/v1"

// AppConfig is the Fiber configuration the API is served with. Paths are
// percent-decoded before routing so encoded ids reach the handlers decoded.
func AppConfig() fiber.Config {
	return fiber.Config{
		ErrorHandler: ErrorHandler(),
		UnescapePath: true,
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, health Pinger, tourSvc service.TourService) {
	app.Get("/health", HealthCheck(health))
	app.Get("/healthz", LivenessProbe())

	api := app.Group(APIPrefix)

	tours := api.Group("/tours")
	tours.Get("/", ListTours(tourSvc))
	tours.Post("/", CreateTour(tourSvc))
	tours.Get("/:id", GetTour(tourSvc))
	tours.Patch("/:id", UpdateTour(tourSvc))
	tours.Delete("/:id", DeleteTour(tourSvc))

	users := api.Group("/users")
	users.Get("/", NotDefined())
	users.Post("/", NotDefined())
	users.Get("/:id", NotDefined())
	users.Patch("/:id", NotDefined())
	users.Delete("/:id", NotDefined())
}
