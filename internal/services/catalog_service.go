package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parlour/internal/models"
	"parlour/internal/repositories"
	"parlour/internal/visitor"
)

// PaymentMethods is shown on every invoice; no payment is actually taken.
const PaymentMethods = "Online/Offline"

// CatalogService runs the customer-facing catalog, basket, feedback and
// checkout workflows.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	feedbackRepo repositories.FeedbackRepository
	orderRepo    repositories.OrderRepository
	publisher    EventPublisher
	shopName     string
	now          func() time.Time
}

// NewCatalogService creates a new CatalogService. publisher may be nil.
func NewCatalogService(
	productRepo repositories.ProductRepository,
	feedbackRepo repositories.FeedbackRepository,
	orderRepo repositories.OrderRepository,
	publisher EventPublisher,
	shopName string,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		feedbackRepo: feedbackRepo,
		orderRepo:    orderRepo,
		publisher:    publisher,
		shopName:     shopName,
		now:          time.Now,
	}
}

// CatalogItem is one product as listed to customers.
type CatalogItem struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	RemainingQty      int     `json:"remaining_qty"`
	Likes             int     `json:"likes"`
	DiscountSuggested bool    `json:"discount_suggested"`
	DiscountMessage   string  `json:"discount_message,omitempty"`
}

// ListProducts returns every product in store order.
func (s *CatalogService) ListProducts() ([]CatalogItem, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}

	items := make([]CatalogItem, 0, len(products))
	for _, p := range products {
		item := CatalogItem{
			Name:              p.Name,
			Price:             p.Price,
			RemainingQty:      p.RemainingQty,
			Likes:             p.Likes,
			DiscountSuggested: p.SuggestDiscount(),
		}
		if item.DiscountSuggested {
			item.DiscountMessage = fmt.Sprintf("Discount available on %s!", p.Name)
		}
		items = append(items, item)
	}
	return items, nil
}

// AddToCart appends product name to the visitor's cart.
func (s *CatalogService) AddToCart(state *visitor.State, name string) error {
	if _, err := s.productRepo.GetByName(name); err != nil {
		return err
	}
	state.AddToCart(name)
	return nil
}

// AddToWishlist appends product name to the visitor's wishlist.
func (s *CatalogService) AddToWishlist(state *visitor.State, name string) error {
	if _, err := s.productRepo.GetByName(name); err != nil {
		return err
	}
	state.AddToWishlist(name)
	return nil
}

// FeedbackRequest carries a rating and comment for one product.
type FeedbackRequest struct {
	Product string `json:"product" validate:"required"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Text    string `json:"text" validate:"max=1000"`
}

// SubmitFeedback stores one feedback record and adds a like to the product.
// The two writes are independent; the like is a single atomic increment.
func (s *CatalogService) SubmitFeedback(state *visitor.State, req FeedbackRequest) (*models.Feedback, error) {
	if _, err := s.productRepo.GetByName(req.Product); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		User:      state.Identity,
		Product:   req.Product,
		Rating:    req.Rating,
		Text:      req.Text,
		CreatedAt: s.now(),
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}
	if err := s.productRepo.IncrementLikes(req.Product, 1); err != nil {
		return nil, fmt.Errorf("failed to record like: %w", err)
	}
	return feedback, nil
}

// Invoice is returned once an order has been placed.
type Invoice struct {
	OrderID        string    `json:"invoice_id"`
	User           string    `json:"user"`
	Cart           []string  `json:"cart"`
	Total          float64   `json:"total"`
	Payment        string    `json:"payment"`
	PaymentMethods string    `json:"payment_methods"`
	PlacedAt       time.Time `json:"placed_at"`
	Message        string    `json:"message"`
}

// PlaceOrder snapshots the visitor's cart into a pending order, totals it at
// the products' current prices and empties the cart and wishlist. Stock is not
// adjusted and resubmitting places a second order.
func (s *CatalogService) PlaceOrder(state *visitor.State) (*Invoice, error) {
	cart := append([]string{}, state.Cart...)

	total, err := s.Total(cart)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		User:          state.Identity,
		Cart:          cart,
		Total:         total,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     s.now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	state.ClearBasket()

	slog.Info("order placed", "order_id", order.ID, "user", order.User, "items", len(cart), "total", total)
	publishEvent(s.publisher, EventOrderPlaced, map[string]interface{}{
		"order_id": order.ID,
		"user":     order.User,
		"cart":     order.Cart,
		"total":    order.Total,
		"payment":  order.PaymentStatus,
	})

	return s.invoice(order), nil
}

// Total sums the current price of every product in cart, once per entry.
func (s *CatalogService) Total(cart []string) (float64, error) {
	var total float64
	for _, name := range cart {
		product, err := s.productRepo.GetByName(name)
		if err != nil {
			return 0, fmt.Errorf("cannot price cart item: %w", err)
		}
		total += product.Price
	}
	return total, nil
}

// GetInvoice returns the invoice of one of the visitor's own orders.
func (s *CatalogService) GetInvoice(state *visitor.State, orderID string) (*Invoice, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.User != state.Identity {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, repositories.ErrNotFound)
	}
	return s.invoice(order), nil
}

func (s *CatalogService) invoice(order *models.Order) *Invoice {
	return &Invoice{
		OrderID:        order.ID,
		User:           order.User,
		Cart:           order.Cart,
		Total:          order.Total,
		Payment:        order.PaymentStatus,
		PaymentMethods: PaymentMethods,
		PlacedAt:       order.CreatedAt,
		Message:        fmt.Sprintf("Thanks for choosing %s and visit again!", s.shopName),
	}
}

// IsNotFound reports whether err means a product, user or order is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
