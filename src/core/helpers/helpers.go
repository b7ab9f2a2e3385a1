package helpers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"StudyVillage/src/core/apperrors"
)

// Initialize a validator instance using go-playground's validator package
var Validator = validator.New()

// Validate checks the struct fields against the specified validation tags.
func Validate(val interface{}) error {
	return Validator.Struct(val)
}

// HandleSuccess sends a structured JSON response for successful requests.
func HandleSuccess(context *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return context.Status(statusCode).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"error":   nil,
		"data":    data,
	})
}

// HandleError sends a structured JSON response for errors.
func HandleError(context *fiber.Ctx, statusCode int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	}
	return context.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"error":   errMsg,
		"data":    nil,
	})
}

// HandleAppError maps the sentinel errors from the data-access boundary to
// HTTP status codes and falls back to 500 for anything else.
func HandleAppError(context *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return HandleError(context, fiber.StatusUnauthorized, message, err)
	case errors.Is(err, apperrors.ErrNotFound):
		return HandleError(context, fiber.StatusNotFound, message, err)
	case errors.Is(err, apperrors.ErrInvalidState):
		return HandleError(context, fiber.StatusConflict, message, err)
	default:
		return HandleError(context, fiber.StatusInternalServerError, message, err)
	}
}
