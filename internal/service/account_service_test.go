package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

const testPassword = "Str0ngPass"

func newTestAccountService(t *testing.T, store *storage.Storage) *AccountService {
	t.Helper()
	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return NewAccountService(store, hasher, auth.NewTokenIssuer("test-secret", time.Minute))
}

func registerTestUser(t *testing.T, svc *AccountService, email string) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		FullName: "Test User",
		Password: testPassword,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_Success(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())

	user := registerTestUser(t, svc, "  Alice@Example.COM ")

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Test User", user.FullName)
	assert.True(t, user.Active)
	assert.Nil(t, user.DeletedAt)
}

func TestRegister_HashesPassword(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newTestAccountService(t, store)

	user := registerTestUser(t, svc, "alice@example.com")

	row, err := store.Users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, row.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(testPassword)))
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())
	registerTestUser(t, svc, "alice@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ALICE@example.com",
		FullName: "Other Alice",
		Password: testPassword,
	})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_DuplicateEmailAfterSoftDelete(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())
	user := registerTestUser(t, svc, "alice@example.com")
	require.NoError(t, svc.SoftDelete(context.Background(), user.ID))

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		FullName: "Alice Again",
		Password: testPassword,
	})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"bad email", RegisterInput{Email: "not-an-email", FullName: "A", Password: testPassword}, ErrInvalidRegistration},
		{"empty name", RegisterInput{Email: "a@example.com", FullName: "   ", Password: testPassword}, ErrInvalidRegistration},
		{"short password", RegisterInput{Email: "a@example.com", FullName: "A", Password: "Ab1"}, ErrWeakCredential},
		{"no digit", RegisterInput{Email: "a@example.com", FullName: "A", Password: "Abcdefghij"}, ErrWeakCredential},
		{"no upper", RegisterInput{Email: "a@example.com", FullName: "A", Password: "abcdefgh1"}, ErrWeakCredential},
		{"no lower", RegisterInput{Email: "a@example.com", FullName: "A", Password: "ABCDEFGH1"}, ErrWeakCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_StorageError(t *testing.T) {
	users := sqlconfig.NewMockIUserTable(t)
	users.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	svc := newTestAccountService(t, &storage.Storage{Users: users})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		FullName: "Alice",
		Password: testPassword,
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAuthenticate_Success(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())
	user := registerTestUser(t, svc, "alice@example.com")

	session, err := svc.Authenticate(context.Background(), "Alice@Example.com", testPassword)

	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "alice@example.com", session.Email)
	assert.NotEmpty(t, session.Token)
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())
	registerTestUser(t, svc, "alice@example.com")
	deleted := registerTestUser(t, svc, "bob@example.com")
	require.NoError(t, svc.SoftDelete(context.Background(), deleted.ID))

	_, unknownErr := svc.Authenticate(context.Background(), "nobody@example.com", testPassword)
	_, wrongErr := svc.Authenticate(context.Background(), "alice@example.com", "Wr0ngPass")
	_, deletedErr := svc.Authenticate(context.Background(), "bob@example.com", testPassword)

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.ErrorIs(t, deletedErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, unknownErr.Error(), deletedErr.Error())
}

func TestAuthenticate_StorageError(t *testing.T) {
	users := sqlconfig.NewMockIUserTable(t)
	users.EXPECT().FindActiveByEmail(mock.Anything, "alice@example.com").Return(nil, errors.New("timeout"))
	svc := newTestAccountService(t, &storage.Storage{Users: users})

	_, err := svc.Authenticate(context.Background(), "alice@example.com", testPassword)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolve(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())
	user := registerTestUser(t, svc, "alice@example.com")
	session, err := svc.Authenticate(context.Background(), "alice@example.com", testPassword)
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.UserID)

	_, err = svc.Resolve(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.SoftDelete(context.Background(), user.ID))
	_, err = svc.Resolve(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSoftDelete_Twice(t *testing.T) {
	svc := newTestAccountService(t, storage.NewMemoryStorage())
	user := registerTestUser(t, svc, "alice@example.com")

	require.NoError(t, svc.SoftDelete(context.Background(), user.ID))
	assert.ErrorIs(t, svc.SoftDelete(context.Background(), user.ID), ErrNotFound)
	assert.ErrorIs(t, svc.SoftDelete(context.Background(), uuid.Must(uuid.NewV4())), ErrNotFound)
}

func TestSoftDelete_StorageError(t *testing.T) {
	users := sqlconfig.NewMockIUserTable(t)
	id := uuid.Must(uuid.NewV4())
	users.EXPECT().SoftDelete(mock.Anything, id, mock.Anything).Return(errors.New("connection reset"))
	svc := newTestAccountService(t, &storage.Storage{Users: users})

	assert.ErrorIs(t, svc.SoftDelete(context.Background(), id), ErrUnavailable)
}
