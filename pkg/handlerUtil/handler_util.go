package handlerUtil

import (
	"CostTracker/internal/api/auth"
	"CostTracker/internal/api/expense"
	"CostTracker/pkg/formatter"
	"CostTracker/pkg/log"
	"CostTracker/pkg/response"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	format := formatter.NegotiateOrDefault(c)

	if errors.Is(err, formatter.ErrUnsupportedFormat) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"format":     c.Query("format"),
			"path":       path,
			"operation":  operation,
		}).Warn("Unsupported output format requested")
		return formatter.Render(c, format, fiber.StatusBadRequest,
			formatter.NewErrorEnvelope("UNSUPPORTED_FORMAT", err.Error(), nil))
	}

	if errors.Is(err, expense.ErrExpenseNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Expense not found")
		return formatter.Render(c, format, fiber.StatusNotFound,
			formatter.NewErrorEnvelope("NOT_FOUND", "Expense not found", nil))
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid credentials")
		return formatter.Render(c, format, fiber.StatusUnauthorized,
			formatter.NewErrorEnvelope("UNAUTHORIZED", "Invalid credentials", nil))
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return formatter.Render(c, format, respErr.Code,
			formatter.NewErrorEnvelope("", err.Error(), nil))
	}

	// Anything unclassified is logged in full and reported generically so
	// raw database errors never reach a client.
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return formatter.Render(c, format, fiber.StatusInternalServerError,
		formatter.NewErrorEnvelope("INTERNAL_ERROR", "An unexpected error occurred", nil))
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	format := formatter.NegotiateOrDefault(c)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]formatter.FieldError, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, formatter.FieldError{
				Field:   fieldErr.Field(),
				Message: validationMessage(fieldErr),
			})
		}

		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"path":       path,
			"fields":     len(details),
		}).Warn("Validation failed")

		return formatter.Render(c, format, fiber.StatusUnprocessableEntity,
			formatter.NewErrorEnvelope("VALIDATION_ERROR", "Validation failed", details))
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return formatter.Render(c, format, fiber.StatusBadRequest,
		formatter.NewErrorEnvelope("VALIDATION_ERROR", err.Error(), nil))
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return formatter.Render(c, formatter.NegotiateOrDefault(c), fiber.StatusUnauthorized,
		formatter.NewErrorEnvelope("UNAUTHORIZED", message, nil))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return formatter.Render(c, formatter.NegotiateOrDefault(c), statusCode, data)
}

// validationMessage keeps the wire message per field aligned with the
// validator tags used on the request DTOs.
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "required_without_all":
		return fmt.Sprintf("%s is required when qty and unit_price are not both provided", fieldErr.Field())
	case "datetime":
		return fmt.Sprintf("%s must be YYYY-MM-DD format", fieldErr.Field())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fieldErr.Field(), fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s must be > %s", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be <= %s characters", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}
