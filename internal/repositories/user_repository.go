package repositories

import "parlour/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByIdentifier(identifier string) (*models.User, error)
	GetAll() ([]models.User, error)
}
