package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGuard_IssueAndVerify(t *testing.T) {
	guard := NewTokenGuard([]byte("test-secret"), time.Hour)

	token, err := guard.Issue(42, "ada@example.com")
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + token, "bearer " + token, token} {
		claims, err := guard.Verify(header)
		require.NoError(t, err, header)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
	}
}

func TestTokenGuard_Verify_Rejects(t *testing.T) {
	guard := NewTokenGuard([]byte("test-secret"), time.Hour)
	other := NewTokenGuard([]byte("other-secret"), time.Hour)

	foreign, err := other.Issue(1, "x@example.com")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"empty", "", ErrMissingToken},
		{"blank", "   ", ErrMissingToken},
		{"wrong scheme", "Basic abc", ErrMissingToken},
		{"garbage", "Bearer not-a-jwt", ErrInvalidToken},
		{"wrong secret", "Bearer " + foreign, ErrInvalidToken},
		{"alg none", "Bearer " + unsigned, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := guard.Verify(tt.header)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenGuard_Verify_Expired(t *testing.T) {
	guard := NewTokenGuard([]byte("test-secret"), time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	guard.now = func() time.Time { return issuedAt }

	token, err := guard.Issue(7, "")
	require.NoError(t, err)

	guard.now = time.Now
	_, err = guard.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGuard_Verify_NonNumericSubject(t *testing.T) {
	secret := []byte("test-secret")
	guard := NewTokenGuard(secret, time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = guard.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenGuard_DefaultExpiry(t *testing.T) {
	guard := NewTokenGuard([]byte("s"), 0)
	assert.Equal(t, 720*time.Hour, guard.expiry)
}
