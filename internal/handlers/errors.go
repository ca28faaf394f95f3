package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kasir/internal/models"
)

// statusForError maps the core error taxonomy to HTTP status codes:
// validation 400, not found 404, insufficient stock 409, anything else 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError sends a JSON error payload with the status derived from the
// error kind.
func writeError(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
