package httpx

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success writes the uniform success envelope.
func Success(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// ValidationFailed writes a 400 with field-level details.
func ValidationFailed(c *fiber.Ctx, details []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed",
		"details": details,
	})
}

// ErrorHandler converts handler errors into the uniform error envelope.
// Unexpected errors are logged with request context and, in production,
// replaced with a generic message.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"error":   fiberErr.Message,
			})
		}

		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)

		message := err.Error()
		if production {
			message = "Internal Server Error"
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
