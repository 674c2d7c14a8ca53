package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// Messages shared by the tour and user routes.
const (
	msgInvalidID    = "Invalid ID"
	msgInvalidBody  = "Invalid JSON body"
	msgNotDefined   = "This route is not yet defined!"
	msgInternal     = "Something went wrong!"
	msgUnavailable  = "dependency unavailable"
	msgNotAllowed   = "method not allowed"
	updatedTourStub = "<Updated tour here...>"
)

// envelope is the JSON body of every API response.
// Success responses carry data; fail (4xx) and error (5xx) responses carry message.
type envelope struct {
	Status      string `json:"status"`
	RequestedAt string `json:"requestedAt,omitempty"`
	Results     *int   `json:"results,omitempty"`
	Data        any    `json:"data,omitempty"`
	Message     string `json:"message,omitempty"`
}

// writeError writes a {status, message} response. The status text is "fail"
// for client errors and "error" for server errors.
func writeError(c *fiber.Ctx, status int, message string) error {
	s := statusFail
	if status >= fiber.StatusInternalServerError {
		s = statusError
	}
	return c.Status(status).JSON(envelope{Status: s, Message: message})
}

// ErrorHandler returns a Fiber global error handler that keeps framework errors
// (unknown routes, wrong methods, panics turned into errors) in the API envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch {
		case status == fiber.StatusNotFound:
			return writeError(c, status, fmt.Sprintf("Cannot %s %s", c.Method(), c.Path()))
		case status == fiber.StatusMethodNotAllowed:
			return writeError(c, status, msgNotAllowed)
		case status < fiber.StatusInternalServerError:
			return writeError(c, status, err.Error())
		default:
			return writeError(c, status, msgInternal)
		}
	}
}
