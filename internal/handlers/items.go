package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuskart-backend/internal/dto"
	"campuskart-backend/internal/middleware"
	"campuskart-backend/internal/models"
	"campuskart-backend/internal/utils"
)

// ItemStore is the persistence contract the items handler depends on
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListActive(ctx context.Context, seller *uuid.UUID) ([]models.Item, error)
}

// ItemsHandler manages listing endpoints
type ItemsHandler struct {
	items ItemStore
}

// NewItemsHandler creates a new ItemsHandler
func NewItemsHandler(items ItemStore) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// Create handles POST /items
// @Summary Create a listing
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateItemRequest true "Listing payload"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /items [post]
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateItemRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "title is required")
		return
	}
	if req.Price < 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "price cannot be negative")
		return
	}

	now := time.Now()
	item := &models.Item{
		ID:          uuid.New(),
		SellerID:    userID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		PhotoURL:    req.PhotoURL,
		Status:      models.ItemStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.items.Create(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.NewItemResponse(item))
}

// List handles GET /items, optionally filtered by ?seller=<uuid>
// @Summary List active listings
// @Tags items
// @Produce json
// @Param seller query string false "Filter by seller ID"
// @Success 200 {object} dto.ItemsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /items [get]
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	var seller *uuid.UUID
	if raw := r.URL.Query().Get("seller"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid seller id", "seller must be a valid UUID")
			return
		}
		seller = &id
	}

	items, err := h.items.ListActive(r.Context(), seller)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := dto.ItemsResponse{Items: make([]dto.ItemResponse, 0, len(items))}
	for i := range items {
		resp.Items = append(resp.Items, dto.NewItemResponse(&items[i]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// Detail handles GET /items/{itemId}
// @Summary Get a listing
// @Tags items
// @Produce json
// @Param itemId path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /items/{itemId} [get]
func (h *ItemsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid item id", "itemId must be a valid UUID")
		return
	}

	item, err := h.items.FindByID(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewItemResponse(item))
}
