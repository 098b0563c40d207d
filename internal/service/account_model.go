package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// User is the public view of an account; the credential hash never leaves
// the service.
type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string `validate:"required,email,max=254"`
	FullName string `validate:"required,max=100"`
	Password string `validate:"-"`
}

func userFromStorage(row *sqlconfig.User) *User {
	return &User{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		DeletedAt: row.DeletedAt,
	}
}
