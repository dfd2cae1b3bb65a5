package handlers

import (
	"log/slog"

	"project-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// Application error codes carried in the errorCode field of non-2xx
// responses, alongside the HTTP status.
const (
	CodeCollectionEmpty = 1000
	CodeRecordNotFound  = 1001
	CodeAlreadyDeleted  = 1002
)

func success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.APIError{
		ErrorCode:        fiber.StatusBadRequest,
		ErrorDescription: "Bad Request...",
	})
}

func validationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.APIError{
		ErrorCode:        fiber.StatusBadRequest,
		ErrorDescription: err.Error(),
	})
}

func notFound(c *fiber.Ctx, code int, description string) error {
	return c.Status(fiber.StatusNotFound).JSON(models.APIError{
		ErrorCode:        code,
		ErrorDescription: description,
	})
}

func unauthorized(c *fiber.Ctx, description string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.APIError{
		ErrorCode:        fiber.StatusUnauthorized,
		ErrorDescription: description,
	})
}

func serverError(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(models.APIError{
		ErrorCode:        fiber.StatusInternalServerError,
		ErrorDescription: message,
	})
}
