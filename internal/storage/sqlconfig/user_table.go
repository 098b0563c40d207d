package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const usersTableName = "users"

var userColumns = []any{
	"id", "email", "full_name", "password_hash", "active",
	"created_at", "updated_at", "deleted_at",
}

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

// Ensure UsersTable implements IUserTable at compile time.
var _ IUserTable = (*UsersTable)(nil)

// NewUsersTable creates a UsersTable for the given database.
func NewUsersTable(db *sql.DB) *UsersTable {
	return &UsersTable{exec: bob.NewDB(db)}
}

// Insert creates a new user. A duplicate email returns ErrDuplicate.
func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	q := psql.Insert(
		im.Into(usersTableName, "id", "email", "full_name", "password_hash", "active", "created_at", "updated_at"),
		im.Values(psql.Arg(create.ID, create.Email, create.FullName, create.PasswordHash, true, create.CreatedAt, create.CreatedAt)),
		im.Returning(userColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[userRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toUser(), nil
}

// FindByID retrieves a user by primary key, deleted or not.
func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[userRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toUser(), nil
}

// FindActiveByEmail retrieves the non-deleted user holding email.
func (t *UsersTable) FindActiveByEmail(ctx context.Context, email string) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTableName),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[userRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toUser(), nil
}

// SoftDelete marks an active user deleted. ErrNotFound if no active user has id.
func (t *UsersTable) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := psql.Update(
		um.Table(usersTableName),
		um.SetCol("active").ToArg(false),
		um.SetCol("deleted_at").ToArg(at),
		um.SetCol("updated_at").ToArg(at),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("deleted_at").IsNull()),
	)
	return execExpectingOne(ctx, t.exec, q)
}

func execExpectingOne(ctx context.Context, exec bob.Executor, q bob.Query) error {
	res, err := bob.Exec(ctx, exec, q)
	if err != nil {
		return translateError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
