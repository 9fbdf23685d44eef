package repositories

import (
	"errors"
	"fmt"
	"parlour/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByIdentifier retrieves the first user registered under identifier.
func (r *GORMUserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	var users []models.User
	err := r.db.Where("identifier = ?", identifier).Order("created_at").Limit(1).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user by identifier %s: %w", identifier, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with identifier %s: %w", identifier, ErrNotFound)
	}
	return &users[0], nil
}

// GetAll retrieves all users from the database.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
