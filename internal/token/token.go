package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"campuskart-backend/internal/apperr"
)

// Claims represents the claims embedded in a session token
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies signed session tokens. The signing secret is
// injected once at startup; rotating it invalidates every outstanding token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer signing with the given secret. Tokens expire
// ttl after issuance.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue generates a signed token for the given user
func (i *Issuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify parses and validates a token and returns the embedded user ID.
// It fails with apperr.ErrTokenMalformed when the token cannot be parsed,
// apperr.ErrTokenExpired when the signature is fine but the token is past
// its expiry, and apperr.ErrTokenInvalid for everything else.
func (i *Issuer) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrTokenInvalid
		}
		return i.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return uuid.Nil, apperr.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, apperr.ErrTokenExpired
		default:
			return uuid.Nil, apperr.ErrTokenInvalid
		}
	}

	if !tok.Valid || claims.UserID == uuid.Nil {
		return uuid.Nil, apperr.ErrTokenInvalid
	}

	return claims.UserID, nil
}
