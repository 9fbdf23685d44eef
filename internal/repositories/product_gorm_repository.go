package repositories

import (
	"fmt"
	"parlour/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products in store order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("added_on").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByName retrieves the earliest-added product called name.
func (r *GORMProductRepository) GetByName(name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("name = ?", name).Order("added_on").First(&product).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("product %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", name, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// DeleteByName deletes a single product matching name.
func (r *GORMProductRepository) DeleteByName(name string) error {
	product, err := r.GetByName(name)
	if err != nil {
		return err
	}
	res := r.db.Delete(&models.Product{}, "id = ?", product.ID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", name, ErrNotFound)
	}
	return nil
}

// IncrementLikes adds delta to the like counter of the product called name in a
// single UPDATE, so concurrent increments are all kept.
func (r *GORMProductRepository) IncrementLikes(name string, delta int) error {
	product, err := r.GetByName(name)
	if err != nil {
		return err
	}
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to increment likes for %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", name, ErrNotFound)
	}
	return nil
}
