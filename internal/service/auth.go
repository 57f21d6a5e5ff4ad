package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuskart-backend/internal/apperr"
	"campuskart-backend/internal/models"
	"campuskart-backend/internal/password"
	"campuskart-backend/internal/token"
)

// UserStore is the persistence contract the auth service depends on
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// ItemStore provides the listing counts shown on seller profiles
type ItemStore interface {
	CountActiveBySeller(ctx context.Context, sellerID uuid.UUID) (int, error)
}

// MinPasswordLength is enforced before hashing
const MinPasswordLength = 6

// AuthService orchestrates registration, login, and profile retrieval over
// the credential store, password hasher, and token issuer.
type AuthService struct {
	users  UserStore
	items  ItemStore
	hasher *password.Hasher
	tokens *token.Issuer
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, items ItemStore, hasher *password.Hasher, tokens *token.Issuer) *AuthService {
	return &AuthService{users: users, items: items, hasher: hasher, tokens: tokens}
}

// Register creates a new user account and issues a session token for it
func (s *AuthService) Register(ctx context.Context, name, email, plaintext string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || plaintext == "" {
		return nil, "", apperr.NewValidation("name, email, and password are required")
	}
	if len(plaintext) < MinPasswordLength {
		return nil, "", apperr.NewValidation(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	// Friendly pre-check; the store's unique index is what actually
	// guarantees uniqueness under concurrent registrations.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", apperr.ErrEmailTaken
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tok, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password both fail with apperr.ErrInvalidCredentials so the
// response never reveals which one was wrong.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*models.User, string, error) {
	email = normalizeEmail(email)

	if email == "" || plaintext == "" {
		return nil, "", apperr.NewValidation("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, "", apperr.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tok, nil
}

// CurrentUser returns the user a verified token resolved to
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// SellerProfile returns a user together with their active listing count
func (s *AuthService) SellerProfile(ctx context.Context, userID uuid.UUID) (*models.User, int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.items.CountActiveBySeller(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return user, count, nil
}

// FindOrCreateGoogleUser looks up a user by the email Google reported,
// creating the account on first sign-in, and issues a session token. New
// accounts get a random placeholder password so the hash invariant holds;
// they can only authenticate through Google.
func (s *AuthService) FindOrCreateGoogleUser(ctx context.Context, name, email string, photoURL *string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", apperr.NewValidation("email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperr.ErrUserNotFound) {
			return nil, "", err
		}

		placeholder, err := randomPassword()
		if err != nil {
			return nil, "", fmt.Errorf("generate placeholder password: %w", err)
		}
		hash, err := s.hasher.Hash(placeholder)
		if err != nil {
			return nil, "", fmt.Errorf("hash password: %w", err)
		}

		if name == "" {
			name = email
		}
		now := time.Now()
		user = &models.User{
			ID:           uuid.New(),
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			PhotoURL:     photoURL,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", err
		}
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tok, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
