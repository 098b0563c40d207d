package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

var baseTime = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func insertTransaction(t *testing.T, store *Store, owner uuid.UUID, kind, amount string, occurredAt, createdAt time.Time) *sqlconfig.Transaction {
	t.Helper()
	category := "salary"
	if kind == "expense" {
		category = "food"
	}
	tx, err := store.Transactions.Insert(context.Background(), &sqlconfig.TransactionCreate{
		ID:         uuid.Must(uuid.NewV4()),
		OwnerID:    owner,
		Kind:       kind,
		Category:   category,
		Amount:     decimal.RequireFromString(amount),
		OccurredAt: occurredAt,
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	return tx
}

// -- Users --

func TestUsers_InsertAndFind(t *testing.T) {
	store := New()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	created, err := store.Users.Insert(ctx, &sqlconfig.UserCreate{
		ID:           id,
		Email:        "user@example.com",
		FullName:     "Test User",
		PasswordHash: "hash",
		CreatedAt:    baseTime,
	})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Nil(t, created.DeletedAt)
	assert.Equal(t, baseTime, created.UpdatedAt)

	byID, err := store.Users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byEmail, err := store.Users.FindActiveByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	store := New()
	ctx := context.Background()
	create := &sqlconfig.UserCreate{ID: uuid.Must(uuid.NewV4()), Email: "user@example.com", CreatedAt: baseTime}

	_, err := store.Users.Insert(ctx, create)
	require.NoError(t, err)

	_, err = store.Users.Insert(ctx, &sqlconfig.UserCreate{ID: uuid.Must(uuid.NewV4()), Email: "user@example.com", CreatedAt: baseTime})
	assert.ErrorIs(t, err, sqlconfig.ErrDuplicate)
}

func TestUsers_SoftDelete(t *testing.T) {
	store := New()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	_, err := store.Users.Insert(ctx, &sqlconfig.UserCreate{ID: id, Email: "user@example.com", CreatedAt: baseTime})
	require.NoError(t, err)

	deletedAt := baseTime.Add(time.Hour)
	require.NoError(t, store.Users.SoftDelete(ctx, id, deletedAt))

	_, err = store.Users.FindActiveByEmail(ctx, "user@example.com")
	assert.ErrorIs(t, err, sqlconfig.ErrNotFound)

	user, err := store.Users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, user.Active)
	require.NotNil(t, user.DeletedAt)
	assert.Equal(t, deletedAt, *user.DeletedAt)

	assert.ErrorIs(t, store.Users.SoftDelete(ctx, id, deletedAt), sqlconfig.ErrNotFound, "already deleted")
	assert.ErrorIs(t, store.Users.SoftDelete(ctx, uuid.Must(uuid.NewV4()), deletedAt), sqlconfig.ErrNotFound, "unknown")

	_, err = store.Users.Insert(ctx, &sqlconfig.UserCreate{ID: uuid.Must(uuid.NewV4()), Email: "user@example.com", CreatedAt: baseTime})
	assert.ErrorIs(t, err, sqlconfig.ErrDuplicate, "deleted users keep their email")
}

func TestUsers_ReturnedRecordsAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	created, err := store.Users.Insert(ctx, &sqlconfig.UserCreate{ID: id, Email: "user@example.com", FullName: "Original", CreatedAt: baseTime})
	require.NoError(t, err)

	created.FullName = "Mutated"

	found, err := store.Users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Original", found.FullName)
}

func TestUsers_CanceledContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Users.FindByID(ctx, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, context.Canceled)
}

// -- Transactions --

func TestTransactions_ListOrdering(t *testing.T) {
	store := New()
	owner := uuid.Must(uuid.NewV4())

	older := insertTransaction(t, store, owner, "income", "1", baseTime, baseTime)
	newer := insertTransaction(t, store, owner, "income", "2", baseTime.Add(24*time.Hour), baseTime)
	sameDayLaterCreated := insertTransaction(t, store, owner, "expense", "3", baseTime, baseTime.Add(time.Minute))

	txs, err := store.Transactions.ListActiveByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, newer.ID, txs[0].ID)
	assert.Equal(t, sameDayLaterCreated.ID, txs[1].ID, "ties on occurredAt broken by createdAt desc")
	assert.Equal(t, older.ID, txs[2].ID)
}

func TestTransactions_ListScopedToOwner(t *testing.T) {
	store := New()
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())

	insertTransaction(t, store, owner, "income", "1", baseTime, baseTime)
	insertTransaction(t, store, other, "income", "2", baseTime, baseTime)

	txs, err := store.Transactions.ListActiveByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	empty, err := store.Transactions.ListActiveByOwner(context.Background(), uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTransactions_SoftDelete(t *testing.T) {
	store := New()
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())
	tx := insertTransaction(t, store, owner, "income", "1000", baseTime, baseTime)

	assert.ErrorIs(t, store.Transactions.SoftDelete(ctx, other, tx.ID, baseTime), sqlconfig.ErrNotFound, "foreign owner")
	assert.ErrorIs(t, store.Transactions.SoftDelete(ctx, owner, uuid.Must(uuid.NewV4()), baseTime), sqlconfig.ErrNotFound, "unknown id")

	deletedAt := baseTime.Add(time.Hour)
	require.NoError(t, store.Transactions.SoftDelete(ctx, owner, tx.ID, deletedAt))
	assert.ErrorIs(t, store.Transactions.SoftDelete(ctx, owner, tx.ID, deletedAt), sqlconfig.ErrNotFound, "already deleted")

	txs, err := store.Transactions.ListActiveByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, txs)

	totals, err := store.Transactions.Totals(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, totals)

	audited, err := store.Transactions.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	require.NotNil(t, audited.DeletedAt)
	assert.Equal(t, deletedAt, *audited.DeletedAt)
	assert.True(t, audited.Amount.Equal(decimal.RequireFromString("1000")))
}

func TestTransactions_Totals(t *testing.T) {
	store := New()
	owner := uuid.Must(uuid.NewV4())

	insertTransaction(t, store, owner, "income", "3000", baseTime, baseTime)
	insertTransaction(t, store, owner, "expense", "500", baseTime, baseTime)
	insertTransaction(t, store, owner, "expense", "200.25", baseTime, baseTime)
	insertTransaction(t, store, uuid.Must(uuid.NewV4()), "income", "99", baseTime, baseTime)

	totals, err := store.Transactions.Totals(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "expense", totals[0].Kind)
	assert.True(t, totals[0].Total.Equal(decimal.RequireFromString("700.25")))
	assert.Equal(t, int64(2), totals[0].Count)

	assert.Equal(t, "income", totals[1].Kind)
	assert.True(t, totals[1].Total.Equal(decimal.RequireFromString("3000")))
	assert.Equal(t, int64(1), totals[1].Count)
}

func TestTransactions_ConcurrentInserts(t *testing.T) {
	store := New()
	owner := uuid.Must(uuid.NewV4())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Transactions.Insert(context.Background(), &sqlconfig.TransactionCreate{
				ID:         uuid.Must(uuid.NewV4()),
				OwnerID:    owner,
				Kind:       "income",
				Category:   "salary",
				Amount:     decimal.NewFromInt(1),
				OccurredAt: baseTime,
				CreatedAt:  baseTime,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	totals, err := store.Transactions.Totals(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, int64(50), totals[0].Count)
}
