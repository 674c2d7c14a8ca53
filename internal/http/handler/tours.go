package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tourapi/internal/http/middleware"
	"tourapi/internal/service"
)

// ListTours returns every loaded tour.
//
// @Summary List tours
// @Tags tours
// @Produce json
// @Success 200 {object} envelope
// @Router /api/v1/tours [get]
func ListTours(svc service.TourService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := svc.List(c.UserContext())
		requestedAt, _ := c.Locals(middleware.RequestTimeLocalKey).(string)

		return c.Status(fiber.StatusOK).JSON(envelope{
			Status:      statusSuccess,
			RequestedAt: requestedAt,
			Results:     &res.Total,
			Data:        fiber.Map{"tours": res.Items},
		})
	}
}

// GetTour returns a single tour by numeric id.
//
// @Summary Get a tour
// @Tags tours
// @Produce json
// @Param id path string true "Tour id"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /api/v1/tours/{id} [get]
func GetTour(svc service.TourService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tour, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, msgInvalidID)
			}
			return writeError(c, fiber.StatusInternalServerError, msgInternal)
		}
		return c.Status(fiber.StatusOK).JSON(envelope{
			Status: statusSuccess,
			Data:   fiber.Map{"tour": tour},
		})
	}
}

// CreateTour appends a tour built from the JSON body.
//
// @Summary Create a tour
// @Tags tours
// @Accept json
// @Produce json
// @Param tour body object false "Tour fields"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /api/v1/tours [post]
func CreateTour(svc service.TourService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}

		tour, err := svc.Create(c.UserContext(), body)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, msgInternal)
		}
		return c.Status(fiber.StatusCreated).JSON(envelope{
			Status: statusSuccess,
			Data:   fiber.Map{"tour": tour},
		})
	}
}

// UpdateTour checks the id and answers with a placeholder; nothing is changed.
//
// @Summary Update a tour
// @Tags tours
// @Produce json
// @Param id path string true "Tour id"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /api/v1/tours/{id} [patch]
func UpdateTour(svc service.TourService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Update(c.UserContext(), c.Params("id")); err != nil {
			return tourError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(envelope{
			Status: statusSuccess,
			Data:   fiber.Map{"tour": updatedTourStub},
		})
	}
}

// DeleteTour checks the id and answers 204; nothing is removed.
//
// @Summary Delete a tour
// @Tags tours
// @Param id path string true "Tour id"
// @Success 204
// @Failure 404 {object} envelope
// @Router /api/v1/tours/{id} [delete]
func DeleteTour(svc service.TourService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return tourError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func tourError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return writeError(c, fiber.StatusNotFound, msgInvalidID)
	}
	return writeError(c, fiber.StatusInternalServerError, msgInternal)
}

var errNotObject = errors.New("body is not a JSON object or array")

// parseBody decodes a JSON object body. Requests without a JSON content type
// or with an empty body yield an empty object. An array body is spread into
// index keys ("0", "1", ...) the way it merges into a plain object.
func parseBody(c *fiber.Ctx) (map[string]any, error) {
	raw := c.Body()
	if !c.Is("json") || len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errNotObject
	}

	switch body := v.(type) {
	case map[string]any:
		return body, nil
	case []any:
		obj := make(map[string]any, len(body))
		for i, el := range body {
			obj[strconv.Itoa(i)] = el
		}
		return obj, nil
	}
	return nil, errNotObject
}
