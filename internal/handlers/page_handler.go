package handlers

import (
	"errors"

	"parlour/internal/middleware"
	"parlour/internal/router"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the current page and moves visitors between pages.
type PageHandler struct {
	views    *Views
	validate *validator.Validate
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(views *Views) *PageHandler {
	return &PageHandler{
		views:    views,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the page routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/view", h.HandleView)
	r.Post("/navigate", h.HandleNavigate)
}

// HandleView renders the visitor's current page.
func (h *PageHandler) HandleView(c *fiber.Ctx) error {
	return refresh(c, h.views, fiber.StatusOK, nil)
}

// NavigateRequest names the page to open.
type NavigateRequest struct {
	Page string `json:"page" validate:"required"`
}

// HandleNavigate opens another page.
func (h *PageHandler) HandleNavigate(c *fiber.Ctx) error {
	var req NavigateRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}

	page, err := router.Parse(req.Page)
	if err == nil {
		err = router.Navigate(middleware.Visitor(c), page)
	}
	if err != nil {
		if errors.Is(err, router.ErrUnknownPage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown page",
				"error":   err.Error(),
				"pages":   router.Pages(),
			})
		}
		return failure(c, "Could not navigate", err)
	}
	return refresh(c, h.views, fiber.StatusOK, nil)
}
