package memstore

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type userRecord struct {
	user sqlconfig.User
}

// UsersTable is the in-memory users table.
type UsersTable struct {
	store   *Store
	byID    map[string]*userRecord
	byEmail map[string]string
}

var _ sqlconfig.IUserTable = (*UsersTable)(nil)

func (t *UsersTable) Insert(ctx context.Context, create *sqlconfig.UserCreate) (*sqlconfig.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, exists := t.byEmail[create.Email]; exists {
		return nil, sqlconfig.ErrDuplicate
	}
	if _, exists := t.byID[create.ID.String()]; exists {
		return nil, sqlconfig.ErrDuplicate
	}

	rec := &userRecord{user: sqlconfig.User{
		ID:           create.ID,
		Email:        create.Email,
		FullName:     create.FullName,
		PasswordHash: create.PasswordHash,
		Active:       true,
		CreatedAt:    create.CreatedAt,
		UpdatedAt:    create.CreatedAt,
	}}
	t.byID[create.ID.String()] = rec
	t.byEmail[create.Email] = create.ID.String()

	return copyUser(&rec.user), nil
}

func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	rec, ok := t.byID[id.String()]
	if !ok {
		return nil, sqlconfig.ErrNotFound
	}
	return copyUser(&rec.user), nil
}

func (t *UsersTable) FindActiveByEmail(ctx context.Context, email string) (*sqlconfig.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	id, ok := t.byEmail[email]
	if !ok {
		return nil, sqlconfig.ErrNotFound
	}
	rec := t.byID[id]
	if rec.user.DeletedAt != nil {
		return nil, sqlconfig.ErrNotFound
	}
	return copyUser(&rec.user), nil
}

func (t *UsersTable) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	rec, ok := t.byID[id.String()]
	if !ok || rec.user.DeletedAt != nil {
		return sqlconfig.ErrNotFound
	}
	deletedAt := at
	rec.user.Active = false
	rec.user.DeletedAt = &deletedAt
	rec.user.UpdatedAt = at
	return nil
}

func copyUser(u *sqlconfig.User) *sqlconfig.User {
	c := *u
	if u.DeletedAt != nil {
		deletedAt := *u.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}
