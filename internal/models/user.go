package models

import "time"

// Who created a user record.
const (
	CreatedBySelf  = "self"
	CreatedByAdmin = "admin"
)

// User represents a shop customer. Identifier is a contact value (mobile/email) for
// self-registered users and a username for admin-created ones.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Identifier string    `json:"identifier" gorm:"index;type:varchar(255)"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Age        int       `json:"age"`
	Location   string    `json:"location"`
	Password   string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash
	CreatedBy  string    `json:"created_by" gorm:"type:varchar(16)"`
	CreatedAt  time.Time `json:"created_at"`
}
