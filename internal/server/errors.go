package server

import (
	"errors"

	"github.com/beetlebugorg/gars/pkg/gars"
	"github.com/gofiber/fiber/v2"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, invalid_format, out_of_range, not_found, internal_error
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errInvalidGARS maps a parse failure to a 400 carrying the error kind.
func errInvalidGARS(c *fiber.Ctx, err error) error {
	var formatErr *gars.FormatError
	var rangeErr *gars.RangeError
	switch {
	case errors.As(err, &formatErr):
		return newError(c, fiber.StatusBadRequest, "invalid_format", err.Error())
	case errors.As(err, &rangeErr):
		return newError(c, fiber.StatusBadRequest, "out_of_range", err.Error())
	default:
		return errBadRequest(c, err.Error())
	}
}
