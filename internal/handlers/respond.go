package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/uams/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// validation 400, not-found 404, conflict 409, everything else 500.
func respondError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":    false,
			"error":      "validation failed",
			"violations": ve.Violations,
		})
	}

	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   nf.Error(),
		})
	}

	var cf *services.ConflictError
	if errors.As(err, &cf) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   cf.Error(),
			"field":   cf.Field,
		})
	}

	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "internal error",
	})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}
