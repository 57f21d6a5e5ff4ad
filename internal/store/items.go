package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"campuskart-backend/internal/apperr"
	"campuskart-backend/internal/models"
)

const itemColumns = "id, seller_id, title, description, price, photo_url, status, created_at, updated_at"

// ItemStore persists marketplace listings in Postgres
type ItemStore struct {
	db DB
}

// NewItemStore creates a new ItemStore backed by the given database
func NewItemStore(db DB) *ItemStore {
	return &ItemStore{db: db}
}

// Create inserts a new listing
func (s *ItemStore) Create(ctx context.Context, item *models.Item) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO items (id, seller_id, title, description, price, photo_url, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.SellerID, item.Title, item.Description, item.Price,
		item.PhotoURL, item.Status, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// FindByID looks up a listing by id. Returns apperr.ErrItemNotFound when no
// listing matches.
func (s *ItemStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE id = $1"

	var item models.Item
	err := s.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.SellerID, &item.Title,
		&item.Description, &item.Price, &item.PhotoURL, &item.Status,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrItemNotFound
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &item, nil
}

// ListActive returns active listings, newest first. When seller is non-nil
// only that seller's listings are returned.
func (s *ItemStore) ListActive(ctx context.Context, seller *uuid.UUID) ([]models.Item, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if seller != nil {
		rows, err = s.db.Query(ctx,
			"SELECT "+itemColumns+" FROM items WHERE status = 'active' AND seller_id = $1 ORDER BY created_at DESC",
			*seller)
	} else {
		rows, err = s.db.Query(ctx,
			"SELECT "+itemColumns+" FROM items WHERE status = 'active' ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.SellerID, &item.Title, &item.Description,
			&item.Price, &item.PhotoURL, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// CountActiveBySeller returns the number of active listings for a seller
func (s *ItemStore) CountActiveBySeller(ctx context.Context, sellerID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT count(*) FROM items WHERE seller_id = $1 AND status = 'active'",
		sellerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}
