package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperror"
)

// ErrorHandler renders every error returned by a handler as
// {status:"error", error:<message>} with the status mapped from its kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else if appErr, ok := apperror.As(err); ok {
		status = apperror.HTTPStatus(appErr.Kind)
		message = appErr.Message
	} else if err.Error() != "" {
		message = err.Error()
	}

	if status >= fiber.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Method(), c.OriginalURL(), err)
	} else {
		log.Printf("Request %s %s failed with %d: %v", c.Method(), c.OriginalURL(), status, err)
	}

	return c.Status(status).JSON(errorBody(message))
}

func errorBody(message string) fiber.Map {
	return fiber.Map{
		"status": "error",
		"error":  message,
	}
}

// NotFound answers any request that matched no route.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(errorBody("Route " + c.OriginalURL() + " not found"))
}
