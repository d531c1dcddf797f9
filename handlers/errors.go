package handlers

import (
	"errors"
	"log"

	"foot-match-service/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors to stable {code, message} bodies. The
// fallback hides internals: unknown failures all look the same to clients.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrEmailExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", err)
	case errors.Is(err, models.ErrInvalidCredentials):
		return respond(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", err)
	case errors.Is(err, models.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "USER_NOT_FOUND", err)
	case errors.Is(err, models.ErrMatchNotFound):
		return respond(c, fiber.StatusNotFound, "MATCH_NOT_FOUND", err)
	case errors.Is(err, models.ErrParticipantNotFound):
		return respond(c, fiber.StatusNotFound, "PARTICIPANT_NOT_FOUND", err)
	case errors.Is(err, models.ErrMatchFull):
		return respond(c, fiber.StatusConflict, "MATCH_FULL", err)
	case errors.Is(err, models.ErrAlreadyJoined):
		return respond(c, fiber.StatusConflict, "ALREADY_JOINED", err)
	case errors.Is(err, models.ErrSelfJoin):
		return respond(c, fiber.StatusConflict, "SELF_JOIN_FORBIDDEN", err)
	case errors.Is(err, models.ErrMatchNotOpen):
		return respond(c, fiber.StatusConflict, "MATCH_NOT_OPEN", err)
	case errors.Is(err, models.ErrInvalidStatus):
		return respond(c, fiber.StatusBadRequest, "INVALID_STATUS", err)
	case errors.Is(err, models.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	default:
		log.Printf("[HTTP] internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"code":    code,
		"message": err.Error(),
	})
}

func validationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    "VALIDATION_ERROR",
		"message": "invalid request",
		"fields":  fields,
	})
}
