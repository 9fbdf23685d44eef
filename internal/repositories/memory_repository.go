package repositories

import (
	"fmt"
	"sync"
	"time"

	"parlour/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users []models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users = append(r.users, *user)
	return nil
}

// GetByIdentifier returns the first user registered under identifier.
func (r *MemoryUserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Identifier == identifier {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with identifier %s: %w", identifier, ErrNotFound)
}

// GetAll returns all users.
func (r *MemoryUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.User(nil), r.users...), nil
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products []models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Product(nil), r.products...), nil
}

// GetByName returns the first product called name.
func (r *MemoryProductRepository) GetByName(name string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("product %s: %w", name, ErrNotFound)
	}
	product := r.products[i]
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products = append(r.products, *product)
	return nil
}

// DeleteByName removes the first product called name.
func (r *MemoryProductRepository) DeleteByName(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return fmt.Errorf("product %s: %w", name, ErrNotFound)
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

// IncrementLikes adds delta to the like counter of the first product called name.
func (r *MemoryProductRepository) IncrementLikes(name string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return fmt.Errorf("product %s: %w", name, ErrNotFound)
	}
	r.products[i].Likes += delta
	return nil
}

// indexOf must be called with r.mu held.
func (r *MemoryProductRepository) indexOf(name string) int {
	for i := range r.products {
		if r.products[i].Name == name {
			return i
		}
	}
	return -1
}

// MemoryFeedbackRepository is an in-memory implementation of FeedbackRepository.
type MemoryFeedbackRepository struct {
	feedback []models.Feedback
	mu       sync.RWMutex
}

// NewMemoryFeedbackRepository creates a new instance of MemoryFeedbackRepository.
func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{}
}

// Create adds a feedback record.
func (r *MemoryFeedbackRepository) Create(feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	r.feedback = append(r.feedback, *feedback)
	return nil
}

// GetAll returns all feedback in submission order.
func (r *MemoryFeedbackRepository) GetAll() ([]models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Feedback(nil), r.feedback...), nil
}

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders map[string]models.Order
	ids    []string
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders in placement order.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.ids))
	for _, id := range r.ids {
		orderList = append(orderList, r.orders[id])
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	stored := *order
	stored.Cart = append([]string(nil), order.Cart...)
	r.orders[order.ID] = stored
	r.ids = append(r.ids, order.ID)
	return nil
}
