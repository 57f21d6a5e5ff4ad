package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a marketplace account
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	PhotoURL      *string   `json:"photo_url" db:"photo_url"`
	AverageRating float64   `json:"average_rating" db:"average_rating"` // Maintained by the review subsystem
	ItemsSold     int       `json:"items_sold" db:"items_sold"`         // Maintained by the transaction subsystem
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
