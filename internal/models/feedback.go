package models

import "time"

// Feedback is a rating and comment left by a customer on a product.
type Feedback struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	User      string    `json:"user" gorm:"index"`
	Product   string    `json:"product" gorm:"index"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"date"`
}

// TableName keeps the collection name singular like the other stores.
func (Feedback) TableName() string { return "feedback" }
