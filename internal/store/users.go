package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"campuskart-backend/internal/apperr"
	"campuskart-backend/internal/models"
)

const userColumns = "id, name, email, password_hash, photo_url, average_rating, items_sold, created_at, updated_at"

// UserStore persists user records in Postgres
type UserStore struct {
	db DB
}

// NewUserStore creates a new UserStore backed by the given database
func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail looks up a user by email, case-insensitively. Returns
// apperr.ErrUserNotFound when no user matches.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE lower(email) = lower($1)"
	return s.scanUser(s.db.QueryRow(ctx, query, email))
}

// FindByID looks up a user by id. Returns apperr.ErrUserNotFound when no
// user matches.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"
	return s.scanUser(s.db.QueryRow(ctx, query, id))
}

// Create inserts a new user record. The unique index on email rejects
// duplicates atomically, so concurrent registrations with the same email
// cannot produce two rows; that case surfaces as apperr.ErrEmailTaken.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, photo_url, average_rating, items_sold, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.PhotoURL, u.AverageRating, u.ItemsSold, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperr.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (s *UserStore) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhotoURL,
		&u.AverageRating, &u.ItemsSold, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
