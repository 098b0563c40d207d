package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a user record.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// UserCreate is the input for creating a new user. Email must already be
// normalized; uniqueness is enforced on it across active and deleted users.
type UserCreate struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// IUserTable defines the interface for user storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name IUserTable --inpackage --output . --filename mock_IUserTable.go --with-expecter
type IUserTable interface {
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindActiveByEmail(ctx context.Context, email string) (*User, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

type userRow struct {
	ID           uuid.UUID    `db:"id"`
	Email        string       `db:"email"`
	FullName     string       `db:"full_name"`
	PasswordHash string       `db:"password_hash"`
	Active       bool         `db:"active"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}

func (r userRow) toUser() *User {
	return &User{
		ID:           r.ID,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.PasswordHash,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		DeletedAt:    nullTimeToPtr(r.DeletedAt),
	}
}

func nullTimeToPtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
