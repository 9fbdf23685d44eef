package repositories

import "parlour/internal/models"

// FeedbackRepository defines the interface for feedback data access.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetAll() ([]models.Feedback, error)
}
