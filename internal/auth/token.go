package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing token")
)

const tokenIssuer = "studyhub"

// Claims identifies the authenticated caller.
type Claims struct {
	UserID uint
	Email  string
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenGuard issues and verifies HS256 bearer tokens.
type TokenGuard struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenGuard(secret []byte, expiry time.Duration) *TokenGuard {
	if expiry <= 0 {
		expiry = 720 * time.Hour
	}
	return &TokenGuard{secret: secret, expiry: expiry, now: time.Now}
}

// Issue signs a token whose subject is the user id.
func (g *TokenGuard) Issue(userID uint, email string) (string, error) {
	now := g.now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates an Authorization header value. Both "Bearer <token>" and a
// bare token are accepted. It has no side effects.
func (g *TokenGuard) Verify(header string) (Claims, error) {
	raw := extractToken(header)
	if raw == "" {
		return Claims{}, ErrMissingToken
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: uint(id), Email: claims.Email}, nil
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	if len(parts) == 2 {
		return ""
	}
	return header
}
