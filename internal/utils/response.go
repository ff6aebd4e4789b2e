package utils

import (
	stderrors "errors"

	apperrors "sentinel/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// DomainError maps a workflow error to its HTTP form. Validation failures are
// 400, everything else is 500.
func DomainError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !stderrors.As(err, &de) {
		return InternalError(c, err.Error())
	}
	switch de.Kind {
	case apperrors.KindValidation:
		return BadRequest(c, de.Message)
	case apperrors.KindConnectivity:
		return InternalError(c, de.Message)
	default:
		return InternalError(c, de.Error())
	}
}
