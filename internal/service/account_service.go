package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"golang.org/x/text/cases"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// AccountService handles registration, authentication and account removal.
type AccountService struct {
	storage *storage.Storage
	hasher  *auth.Hasher
	tokens  *auth.TokenIssuer
	now     func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, hasher *auth.Hasher, tokens *auth.TokenIssuer) *AccountService {
	return &AccountService{
		storage: store,
		hasher:  hasher,
		tokens:  tokens,
		now:     time.Now,
	}
}

// NormalizeEmail trims and case-folds an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// Register creates a new active user with a bcrypt-hashed credential.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Email = NormalizeEmail(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)

	if err := validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return nil, fmt.Errorf("%w: %s failed %q", ErrInvalidRegistration, validationErrors[0].Field(), validationErrors[0].Tag())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistration, err)
	}

	if err := checkPasswordPolicy(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("uuid.NewV4: %w", err)
	}

	row, err := s.storage.Users.Insert(ctx, &sqlconfig.UserCreate{
		ID:           id,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, unavailable("insert user", err)
	}

	return userFromStorage(row), nil
}

// Authenticate verifies the credential and issues a session token. Every
// failure, including an unknown email, returns ErrInvalidCredentials after
// one bcrypt comparison.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*auth.Session, error) {
	row, err := s.storage.Users.FindActiveByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, sqlconfig.ErrNotFound) {
		s.hasher.VerifyDummy(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, unavailable("find user", err)
	}

	matched := s.hasher.Verify(row.PasswordHash, password)
	if !matched || !row.Active || row.DeletedAt != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.tokens.Issue(row.ID, row.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return session, nil
}

// Resolve turns a bearer token back into a session, provided the user still
// exists and is active.
func (s *AccountService) Resolve(ctx context.Context, token string) (*auth.Session, error) {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	row, err := s.storage.Users.FindByID(ctx, session.UserID)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, unavailable("find user", err)
	}
	if !row.Active || row.DeletedAt != nil {
		return nil, ErrInvalidCredentials
	}

	return session, nil
}

// SoftDelete marks the user deleted. The record and its transactions stay in
// storage; later logins fail with ErrInvalidCredentials.
func (s *AccountService) SoftDelete(ctx context.Context, userID uuid.UUID) error {
	err := s.storage.Users.SoftDelete(ctx, userID, s.now())
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable("delete user", err)
	}
	return nil
}
