package dto

import (
	"time"

	"campuskart-backend/internal/models"
)

// CreateItemRequest represents the request payload for creating a listing
type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

// ItemResponse represents a listing in API responses
type ItemResponse struct {
	ID          string  `json:"id"`
	SellerID    string  `json:"seller_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	PhotoURL    *string `json:"photo_url"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ItemsResponse wraps a list of listings
type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

// NewItemResponse converts an item to its API representation
func NewItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		SellerID:    item.SellerID.String(),
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		PhotoURL:    item.PhotoURL,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}
