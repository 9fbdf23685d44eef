package models

import "time"

// PaymentPending is the only payment status an order ever has.
const PaymentPending = "Pending"

// Order represents a placed order. Cart holds product names by value, so removing a
// product later leaves the order untouched.
type Order struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	User          string    `json:"user" gorm:"index"`
	Cart          []string  `json:"cart" gorm:"serializer:json"`
	Total         float64   `json:"total"`
	PaymentStatus string    `json:"payment" gorm:"type:varchar(32)"`
	CreatedAt     time.Time `json:"timestamp"`
}
