package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"parlour/internal/middleware"
	"parlour/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator that also understands the password_bytes
// tag, which caps a password at the byte length bcrypt can hash.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("password_bytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= services.MaxPasswordBytes
	})
	return validate
}

// bindAndValidate parses the request body into req and validates it. When it
// returns false the error response has already been written.
func bindAndValidate(c *fiber.Ctx, validate *validator.Validate, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		slog.Debug("invalid request body", "path", c.Path(), "error", err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// failure maps a workflow error to 404 for missing records and 500 otherwise.
func failure(c *fiber.Ctx, message string, err error) error {
	if services.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
	slog.Error(message, "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// refresh answers an event with body plus the view of the page the visitor
// is on after the event.
func refresh(c *fiber.Ctx, views *Views, status int, body fiber.Map) error {
	state := middleware.Visitor(c)
	view, err := views.Render(state)
	if err != nil {
		return failure(c, "Could not render page", err)
	}
	if body == nil {
		body = fiber.Map{}
	}
	body["page"] = state.Page
	body["view"] = view
	return c.Status(status).JSON(body)
}
