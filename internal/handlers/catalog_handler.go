package handlers

import (
	"parlour/internal/middleware"
	"parlour/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the product catalog, the basket,
// feedback and orders.
type CatalogHandler struct {
	service  *services.CatalogService
	views    *Views
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, views *Views) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		views:    views,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)

	shop := router.Group("/shop", middleware.UserRequired())
	shop.Get("/basket", h.HandleGetBasket)
	shop.Post("/cart", h.HandleAddToCart)
	shop.Post("/wishlist", h.HandleAddToWishlist)
	shop.Post("/feedback", h.HandleSubmitFeedback)
	shop.Post("/orders", h.HandlePlaceOrder)
	shop.Get("/orders/:id", h.HandleGetInvoice)
}

// HandleListProducts lists every product.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return failure(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetBasket returns the visitor's cart and wishlist.
func (h *CatalogHandler) HandleGetBasket(c *fiber.Ctx) error {
	state := middleware.Visitor(c)
	return c.JSON(fiber.Map{
		"cart":     nonNil(state.Cart),
		"wishlist": nonNil(state.Wishlist),
	})
}

// BasketRequest names the product to add.
type BasketRequest struct {
	Product string `json:"product" validate:"required"`
}

// HandleAddToCart appends a product to the cart.
func (h *CatalogHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req BasketRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}
	if err := h.service.AddToCart(middleware.Visitor(c), req.Product); err != nil {
		return failure(c, "Could not add product to cart", err)
	}
	return refresh(c, h.views, fiber.StatusOK, fiber.Map{
		"message": "Added " + req.Product + " to cart",
	})
}

// HandleAddToWishlist appends a product to the wishlist.
func (h *CatalogHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req BasketRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}
	if err := h.service.AddToWishlist(middleware.Visitor(c), req.Product); err != nil {
		return failure(c, "Could not add product to wishlist", err)
	}
	return refresh(c, h.views, fiber.StatusOK, fiber.Map{
		"message": "Added " + req.Product + " to wishlist",
	})
}

// HandleSubmitFeedback records a rating for a product.
func (h *CatalogHandler) HandleSubmitFeedback(c *fiber.Ctx) error {
	var req services.FeedbackRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}
	feedback, err := h.service.SubmitFeedback(middleware.Visitor(c), req)
	if err != nil {
		return failure(c, "Could not submit feedback", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Feedback submitted.",
		"feedback": feedback,
	})
}

// HandlePlaceOrder checks the cart out and returns the invoice.
func (h *CatalogHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	invoice, err := h.service.PlaceOrder(middleware.Visitor(c))
	if err != nil {
		return failure(c, "Could not place order", err)
	}
	return refresh(c, h.views, fiber.StatusCreated, fiber.Map{
		"message": "Order placed successfully!",
		"invoice": invoice,
	})
}

// HandleGetInvoice returns the invoice of one of the visitor's orders.
func (h *CatalogHandler) HandleGetInvoice(c *fiber.Ctx) error {
	invoice, err := h.service.GetInvoice(middleware.Visitor(c), c.Params("id"))
	if err != nil {
		return failure(c, "Could not retrieve order", err)
	}
	return c.JSON(invoice)
}
