// Package auth implements the two primitives the user service is built on:
// password hashing and signed-token issuance/verification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/dmitrijs2005/authkernel/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed claim set: the registered claims plus the email.
// Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenManager issues and verifies HS256 tokens with a server-held secret.
// It is safe for concurrent use.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	issuer   string
	now      func() time.Time
}

// TokenOption customises a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secret []byte, validity time.Duration, issuer string, opts ...TokenOption) *TokenManager {
	m := &TokenManager{
		secret:   secret,
		validity: validity,
		issuer:   issuer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Validity returns the lifetime of issued tokens.
func (m *TokenManager) Validity() time.Duration {
	return m.validity
}

// Issue mints a token for userID/email valid from now until now+validity.
// Every token gets a random ID, so two tokens issued within the same second
// still differ.
func (m *TokenManager) Issue(userID, email string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks structure, then signature, then expiry, and returns the
// embedded claims. Errors are common.ErrMalformedToken,
// common.ErrInvalidSignature or common.ErrTokenExpired.
func (m *TokenManager) Verify(tokenString string) (*models.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}

	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, common.ErrMalformedToken
	}

	return &models.Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// classify maps jwt parser errors onto the token error taxonomy. The parser
// checks the signature before any claim, so an expired token with a bad
// signature reports the signature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return common.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	default:
		return common.ErrMalformedToken
	}
}
