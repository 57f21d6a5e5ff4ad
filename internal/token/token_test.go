package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuskart-backend/internal/apperr"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("test-secret", 7*24*time.Hour)
	userID := uuid.New()

	tok, err := issuer.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("test-secret", -time.Second)

	tok, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrTokenExpired)
}

func TestVerify_JustBeforeExpiry(t *testing.T) {
	t.Parallel()

	// A token with one second left must still verify.
	issuer := NewIssuer("test-secret", time.Second)

	tok, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.NoError(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("right-secret", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewIssuer("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, apperr.ErrTokenMalformed, "token %q", tok)
	}
}
