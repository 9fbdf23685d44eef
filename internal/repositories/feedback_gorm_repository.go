package repositories

import (
	"fmt"
	"parlour/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMFeedbackRepository is a GORM implementation of FeedbackRepository.
type GORMFeedbackRepository struct {
	db *gorm.DB
}

// NewGORMFeedbackRepository creates a new instance of GORMFeedbackRepository.
func NewGORMFeedbackRepository(db *gorm.DB) *GORMFeedbackRepository {
	return &GORMFeedbackRepository{db: db}
}

// Create stores a feedback record.
func (r *GORMFeedbackRepository) Create(feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetAll returns all feedback, oldest first.
func (r *GORMFeedbackRepository) GetAll() ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.Order("created_at").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return feedback, nil
}
