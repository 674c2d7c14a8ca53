package handler

import "github.com/gofiber/fiber/v2"

// NotDefined answers every user route with 500 until users are implemented.
//
// @Summary User routes (not implemented)
// @Tags users
// @Produce json
// @Failure 500 {object} envelope
// @Router /api/v1/users [get]
// @Router /api/v1/users [post]
// @Router /api/v1/users/{id} [get]
// @Router /api/v1/users/{id} [patch]
// @Router /api/v1/users/{id} [delete]
func NotDefined() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return writeError(c, fiber.StatusInternalServerError, msgNotDefined)
	}
}
