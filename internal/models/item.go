package models

import (
	"time"

	"github.com/google/uuid"
)

// Item statuses. Only active listings show up in browse results and
// in a seller's items_count.
const (
	ItemStatusActive  = "active"
	ItemStatusSold    = "sold"
	ItemStatusRemoved = "removed"
)

// Item represents a listing posted by a seller
type Item struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SellerID    uuid.UUID `json:"seller_id" db:"seller_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	PhotoURL    *string   `json:"photo_url" db:"photo_url"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
