package services

import (
	"fmt"
	"log/slog"
	"time"

	"parlour/internal/models"
	"parlour/internal/repositories"
)

// AdminService runs the admin dashboard workflows.
type AdminService struct {
	userRepo     repositories.UserRepository
	productRepo  repositories.ProductRepository
	feedbackRepo repositories.FeedbackRepository
	orderRepo    repositories.OrderRepository
	now          func() time.Time
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	feedbackRepo repositories.FeedbackRepository,
	orderRepo repositories.OrderRepository,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		productRepo:  productRepo,
		feedbackRepo: feedbackRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

// CreateUserRequest carries the admin "Register New User" form.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"max=100"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Age       int    `json:"age" validate:"min=1,max=120"`
	Location  string `json:"location" validate:"max=255"`
	Password  string `json:"password" validate:"password_bytes"`
}

// CreateUser stores a user on behalf of the admin, hashed like a self-registration.
func (s *AdminService) CreateUser(req CreateUserRequest) (*models.User, error) {
	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Identifier: req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Location:   req.Location,
		Password:   hashed,
		CreatedBy:  models.CreatedByAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// AddProductRequest carries the "Add Product" form.
type AddProductRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Price    float64 `json:"price" validate:"gte=1"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

// AddProduct creates a product with its whole quantity remaining and zeroed
// sale and like counters.
func (s *AdminService) AddProduct(req AddProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:         req.Name,
		Price:        req.Price,
		TotalQty:     req.Quantity,
		RemainingQty: req.Quantity,
		DailySale:    0,
		Likes:        0,
		AddedOn:      s.now(),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	slog.Info("product added", "name", product.Name, "price", product.Price, "qty", product.TotalQty)
	return product, nil
}

// RemoveProduct deletes one product by exact name. Feedback and orders naming
// it are left as they are.
func (s *AdminService) RemoveProduct(name string) error {
	if err := s.productRepo.DeleteByName(name); err != nil {
		return err
	}
	slog.Info("product removed", "name", name)
	return nil
}

// Highlight names the product that leads one of the analytics counters.
type Highlight struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProductRow is one line of the admin product table.
type ProductRow struct {
	models.Product
	BestSeller      bool   `json:"best_seller"`
	MostLiked       bool   `json:"most_liked"`
	SuggestDiscount bool   `json:"suggest_discount"`
	DiscountMessage string `json:"discount_message,omitempty"`
}

// Analytics is the admin dashboard's product overview.
type Analytics struct {
	HasProducts bool         `json:"has_products"`
	Message     string       `json:"message,omitempty"`
	MostSold    *Highlight   `json:"most_sold,omitempty"`
	MostLiked   *Highlight   `json:"most_liked,omitempty"`
	Products    []ProductRow `json:"products"`
}

// Analytics scans every product for the best seller and the most liked flavour.
func (s *AdminService) Analytics() (*Analytics, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return BuildAnalytics(products), nil
}

// BuildAnalytics computes the dashboard from products. Ties on either counter
// go to the product encountered first.
func BuildAnalytics(products []models.Product) *Analytics {
	if len(products) == 0 {
		return &Analytics{Message: "No products found.", Products: []ProductRow{}}
	}

	sold := products[firstMax(products, func(p models.Product) int { return p.DailySale })]
	liked := products[firstMax(products, func(p models.Product) int { return p.Likes })]

	a := &Analytics{
		HasProducts: true,
		MostSold:    &Highlight{Name: sold.Name, Count: sold.DailySale},
		MostLiked:   &Highlight{Name: liked.Name, Count: liked.Likes},
		Products:    make([]ProductRow, 0, len(products)),
	}
	for _, p := range products {
		row := ProductRow{
			Product:         p,
			BestSeller:      p.Name == sold.Name,
			MostLiked:       p.Name == liked.Name,
			SuggestDiscount: p.SuggestDiscount(),
		}
		if row.SuggestDiscount {
			row.DiscountMessage = fmt.Sprintf("Suggest Discount on %s", p.Name)
		}
		a.Products = append(a.Products, row)
	}
	return a
}

func firstMax(products []models.Product, key func(models.Product) int) int {
	best := 0
	for i := 1; i < len(products); i++ {
		if key(products[i]) > key(products[best]) {
			best = i
		}
	}
	return best
}

// ListUsers returns every user record.
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// ListOrders returns every order placed so far.
func (s *AdminService) ListOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// ListFeedback returns every feedback record.
func (s *AdminService) ListFeedback() ([]models.Feedback, error) {
	return s.feedbackRepo.GetAll()
}
