// Package services contains server-side business logic. This file implements
// UserService, the authentication kernel: registration, login, token
// verification and profile lookup over an injected credential store.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/dmitrijs2005/authkernel/internal/logging"
	"github.com/dmitrijs2005/authkernel/internal/server/auth"
	"github.com/dmitrijs2005/authkernel/internal/server/models"
	"github.com/dmitrijs2005/authkernel/internal/server/repositories/users"
	"github.com/google/uuid"
)

// PasswordHasher hashes and checks passwords. auth.BcryptHasher implements it.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	Verify(password string, hash []byte) (bool, error)
}

// TokenIssuer mints and checks session tokens. auth.TokenManager implements it.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (*models.Claims, error)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  models.AuthenticatedUser
}

// dummyPassword is hashed once at construction; logins for unknown emails
// compare against that hash so they cost as much as real ones.
const dummyPassword = "authkernel-dummy-password"

// UserService provides authentication operations:
//   - Register: create a user and mint a token
//   - Login: check credentials and mint a token
//   - Verify: validate a token and return its claims
//   - Profile: resolve a token to the stored user
type UserService struct {
	users     users.Repository
	hasher    PasswordHasher
	tokens    TokenIssuer
	logger    logging.Logger
	metrics   Recorder
	now       func() time.Time
	newID     func() string
	dummyHash []byte
}

// UserServiceOption customises a UserService.
type UserServiceOption func(*UserService)

// WithRecorder sets the metrics sink. The default records nothing.
func WithRecorder(r Recorder) UserServiceOption {
	return func(s *UserService) { s.metrics = r }
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) UserServiceOption {
	return func(s *UserService) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString for user IDs.
func WithIDGenerator(gen func() string) UserServiceOption {
	return func(s *UserService) { s.newID = gen }
}

// NewUserService wires the service to its store, hasher and token issuer.
func NewUserService(repo users.Repository, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger, opts ...UserServiceOption) (*UserService, error) {
	s := &UserService{
		users:   repo,
		hasher:  hasher,
		tokens:  tokens,
		logger:  logger.With("module", "services.user"),
		metrics: NopRecorder{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

// Register validates the input, stores a new user and returns a token for it.
func (s *UserService) Register(ctx context.Context, name, email, password string) (res *AuthResult, err error) {
	defer func() { s.metrics.ObserveRegister(Outcome(err)) }()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateAccount
	case !errors.Is(err, common.ErrNotFound):
		s.logger.Error(ctx, "store lookup failed", "op", "register", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	hash, err := s.hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, err
	}

	user := &models.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	user, err = s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrDuplicateAccount
		}
		s.logger.Error(ctx, "store insert failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	res, err = s.issue(user)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "op", "register", "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return res, nil
}

// Login checks email and password and returns a fresh token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (res *AuthResult, err error) {
	defer func() { s.metrics.ObserveLogin(Outcome(err)) }()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "store lookup failed", "op", "login", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored hash unusable", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	res, err = s.issue(user)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "op", "login", "error", err)
		return nil, err
	}

	s.logger.Debug(ctx, "user logged in", "user_id", user.ID)
	return res, nil
}

// Verify checks the token's structure, signature and expiry and returns its
// claims. The store is not consulted.
func (s *UserService) Verify(ctx context.Context, token string) (claims *models.Claims, err error) {
	defer func() { s.metrics.ObserveVerify(Outcome(err)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.tokens.Verify(token)
}

// Profile verifies the token and loads the user it was issued to.
func (s *UserService) Profile(ctx context.Context, token string) (res *models.AuthenticatedUser, err error) {
	defer func() { s.metrics.ObserveProfile(Outcome(err)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "store lookup failed", "op", "profile", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	u := user.Public()
	return &u, nil
}

func (s *UserService) hash(password string) ([]byte, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// validateRegistration expects name and email already trimmed.
func validateRegistration(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email and password are required", common.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: malformed email address", common.ErrInvalidInput)
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: password longer than %d bytes", common.ErrInvalidInput, auth.MaxPasswordBytes)
	}
	return nil
}
