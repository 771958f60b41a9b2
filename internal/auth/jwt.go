// Package auth issues and verifies the bearer tokens that identify users.
// Verification is a pure function of the token and the configured secret.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-share-backend/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// Config carries the signing secret and token lifetime
type Config struct {
	Secret string
	TTL    time.Duration
}

// Identity is the verified caller
type Identity struct {
	UserID int64
	Email  string
}

// Claims are the JWT claims embedded at login
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier signs and validates HS256 tokens
type Verifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewVerifier creates a verifier from the injected configuration
func NewVerifier(cfg Config) *Verifier {
	return &Verifier{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

// Issue creates a signed token for a user
func (v *Verifier) Issue(userID int64, email string) (string, error) {
	now := v.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates a raw token and returns the identity it carries
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", common.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", common.ErrUnauthenticated)
	}

	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: id not found in token", common.ErrUnauthenticated)
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// VerifyHeader validates an Authorization header of the form "Bearer <token>"
func (v *Verifier) VerifyHeader(header string) (*Identity, error) {
	if header == "" {
		return nil, fmt.Errorf("%w: authorization header required", common.ErrUnauthenticated)
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, fmt.Errorf("%w: invalid authorization header format", common.ErrUnauthenticated)
	}

	return v.Verify(parts[1])
}
