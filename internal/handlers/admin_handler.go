package handlers

import (
	"parlour/internal/middleware"
	"parlour/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles HTTP requests for the admin dashboard.
type AdminHandler struct {
	service  *services.AdminService
	views    *Views
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService, views *Views) *AdminHandler {
	return &AdminHandler{
		service:  service,
		views:    views,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the admin routes, all behind the admin gate.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	admin := router.Group("/admin", middleware.AdminRequired())
	admin.Get("/users", h.HandleListUsers)
	admin.Post("/users", h.HandleCreateUser)
	admin.Post("/products", h.HandleAddProduct)
	admin.Delete("/products/:name", h.HandleRemoveProduct)
	admin.Get("/analytics", h.HandleAnalytics)
	admin.Get("/orders", h.HandleListOrders)
	admin.Get("/feedback", h.HandleListFeedback)
}

// HandleCreateUser creates a customer account on the admin's behalf.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req services.CreateUserRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}
	user, err := h.service.CreateUser(req)
	if err != nil {
		return failure(c, "Could not create user", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created!",
		"user":    user,
	})
}

// HandleListUsers lists every customer account.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return failure(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleAddProduct adds a flavour to the catalog.
func (h *AdminHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req services.AddProductRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.service.AddProduct(req)
	if err != nil {
		return failure(c, "Could not add product", err)
	}
	return refresh(c, h.views, fiber.StatusCreated, fiber.Map{
		"message": "Product added!",
		"product": product,
	})
}

// HandleRemoveProduct removes a flavour by exact name.
func (h *AdminHandler) HandleRemoveProduct(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.service.RemoveProduct(name); err != nil {
		return failure(c, "Could not remove product", err)
	}
	return refresh(c, h.views, fiber.StatusOK, fiber.Map{
		"message": "Product removed!",
	})
}

// HandleAnalytics returns the best seller, the most liked flavour and the product table.
func (h *AdminHandler) HandleAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.Analytics()
	if err != nil {
		return failure(c, "Could not compute analytics", err)
	}
	return c.JSON(analytics)
}

// HandleListOrders lists every order.
func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders()
	if err != nil {
		return failure(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleListFeedback lists every feedback record.
func (h *AdminHandler) HandleListFeedback(c *fiber.Ctx) error {
	feedback, err := h.service.ListFeedback()
	if err != nil {
		return failure(c, "Could not retrieve feedback", err)
	}
	return c.JSON(feedback)
}
