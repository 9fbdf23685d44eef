package repositories

import (
	"parlour/internal/models"
)

// ProductRepository defines the interface for product data access.
// Products are addressed by name; names are not constrained to be unique and
// the earliest-added product wins a lookup.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByName(name string) (*models.Product, error)
	Create(product *models.Product) error
	DeleteByName(name string) error
	IncrementLikes(name string, delta int) error
}
