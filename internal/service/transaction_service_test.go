package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

func appendTx(t *testing.T, svc *TransactionService, ownerID uuid.UUID, kind Kind, category Category, amount string) *Transaction {
	t.Helper()
	tx, err := svc.Append(context.Background(), ownerID, AppendInput{
		Kind:     kind,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	})
	require.NoError(t, err)
	return tx
}

func assertBalance(t *testing.T, balance *Balance, income, expense, current string, count int64) {
	t.Helper()
	assert.True(t, balance.TotalIncome.Equal(decimal.RequireFromString(income)), "income %s", balance.TotalIncome)
	assert.True(t, balance.TotalExpense.Equal(decimal.RequireFromString(expense)), "expense %s", balance.TotalExpense)
	assert.True(t, balance.CurrentBalance.Equal(decimal.RequireFromString(current)), "balance %s", balance.CurrentBalance)
	assert.Equal(t, count, balance.TransactionCount)
}

func TestAppend_SingleIncome(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	owner := uuid.Must(uuid.NewV4())

	tx := appendTx(t, svc, owner, KindIncome, CategorySalary, "5000")

	assert.Equal(t, owner, tx.OwnerID)
	assert.Equal(t, KindIncome, tx.Kind)
	assert.False(t, tx.OccurredAt.IsZero())

	balance, err := svc.ComputeBalance(context.Background(), owner)
	require.NoError(t, err)
	assertBalance(t, balance, "5000", "0", "5000", 1)
}

func TestAppend_OptionalFields(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	occurred := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	tx, err := svc.Append(context.Background(), uuid.Must(uuid.NewV4()), AppendInput{
		Kind:        KindExpense,
		Category:    CategoryFood,
		Amount:      decimal.RequireFromString("12.34"),
		Description: omit.From("<script>alert(1)</script>"),
		OccurredAt:  omit.From(occurred),
	})

	require.NoError(t, err)
	assert.Equal(t, "<script>alert(1)</script>", tx.Description)
	assert.True(t, tx.OccurredAt.Equal(occurred))
}

func TestAppend_Rejections(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	owner := uuid.Must(uuid.NewV4())

	tests := []struct {
		name  string
		input AppendInput
		want  error
	}{
		{"zero amount", AppendInput{Kind: KindIncome, Category: CategorySalary, Amount: decimal.Zero}, ErrInvalidAmount},
		{"negative amount", AppendInput{Kind: KindExpense, Category: CategoryFood, Amount: decimal.RequireFromString("-5")}, ErrInvalidAmount},
		{"huge exponent", AppendInput{Kind: KindIncome, Category: CategorySalary, Amount: decimal.RequireFromString("1e5000000")}, ErrInvalidAmount},
		{"huge negative exponent", AppendInput{Kind: KindIncome, Category: CategorySalary, Amount: decimal.RequireFromString("-1e5000000")}, ErrInvalidAmount},
		{"tiny exponent", AppendInput{Kind: KindIncome, Category: CategorySalary, Amount: decimal.RequireFromString("1e-5000000")}, ErrInvalidAmount},
		{"too many fractional digits", AppendInput{Kind: KindExpense, Category: CategoryFood, Amount: decimal.RequireFromString("12.34567")}, ErrInvalidAmount},
		{"too many integer digits", AppendInput{Kind: KindExpense, Category: CategoryFood, Amount: decimal.RequireFromString("1234567890123456")}, ErrInvalidAmount},
		{"category of other kind", AppendInput{Kind: KindIncome, Category: CategoryFood, Amount: decimal.RequireFromString("5")}, ErrInvalidCategory},
		{"unknown category", AppendInput{Kind: KindExpense, Category: "gambling", Amount: decimal.RequireFromString("5")}, ErrInvalidCategory},
		{"unknown kind", AppendInput{Kind: "transfer", Category: CategorySalary, Amount: decimal.RequireFromString("5")}, ErrInvalidCategory},
		{"long description", AppendInput{Kind: KindExpense, Category: CategoryFood, Amount: decimal.RequireFromString("5"), Description: omit.From(strings.Repeat("x", MaxDescriptionLength+1))}, ErrInvalidDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Append(context.Background(), owner, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	transactions, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestAppend_AmountAtPrecisionLimit(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	owner := uuid.Must(uuid.NewV4())

	appendTx(t, svc, owner, KindIncome, CategorySalary, "999999999999999.9999")
	appendTx(t, svc, owner, KindExpense, CategoryFood, "0.0001")

	balance, err := svc.ComputeBalance(context.Background(), owner)
	require.NoError(t, err)
	assertBalance(t, balance, "999999999999999.9999", "0.0001", "999999999999999.9998", 2)
}

func TestWithinAmountPrecision(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"1", true},
		{"12.5", true},
		{"1e10", true},
		{"999999999999999", true},
		{"0.0001", true},
		{"1e15", false},
		{"0.00001", false},
		{"1e5000000", false},
		{"1e-5000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, withinAmountPrecision(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestComputeBalance_IncomeMinusExpenses(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	owner := uuid.Must(uuid.NewV4())

	appendTx(t, svc, owner, KindIncome, CategorySalary, "3000")
	appendTx(t, svc, owner, KindExpense, CategoryHousing, "500")
	appendTx(t, svc, owner, KindExpense, CategoryFood, "200")

	balance, err := svc.ComputeBalance(context.Background(), owner)
	require.NoError(t, err)
	assertBalance(t, balance, "3000", "700", "2300", 3)
}

func TestComputeBalance_CanGoNegative(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	owner := uuid.Must(uuid.NewV4())

	appendTx(t, svc, owner, KindIncome, CategoryFreelance, "100.10")
	appendTx(t, svc, owner, KindExpense, CategoryShopping, "250.25")

	balance, err := svc.ComputeBalance(context.Background(), owner)
	require.NoError(t, err)
	assertBalance(t, balance, "100.10", "250.25", "-150.15", 2)
}

func TestComputeBalance_EmptyLedger(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	owner := uuid.Must(uuid.NewV4())

	balance, err := svc.ComputeBalance(context.Background(), owner)
	require.NoError(t, err)
	assertBalance(t, balance, "0", "0", "0", 0)

	transactions, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.NotNil(t, transactions)
	assert.Empty(t, transactions)
}

func TestSoftDelete_ExcludesFromReads(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewTransactionService(store)
	owner := uuid.Must(uuid.NewV4())

	tx := appendTx(t, svc, owner, KindExpense, CategoryUtilities, "100")
	require.NoError(t, svc.SoftDelete(context.Background(), owner, tx.ID))

	balance, err := svc.ComputeBalance(context.Background(), owner)
	require.NoError(t, err)
	assertBalance(t, balance, "0", "0", "0", 0)

	transactions, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, transactions)

	_, err = svc.Get(context.Background(), owner, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	row, err := store.Transactions.FindByID(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.NotNil(t, row.DeletedAt)

	assert.ErrorIs(t, svc.SoftDelete(context.Background(), owner, tx.ID), ErrNotFound)
}

func TestOwnerScoping(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	alice := uuid.Must(uuid.NewV4())
	bob := uuid.Must(uuid.NewV4())

	tx := appendTx(t, svc, alice, KindIncome, CategoryInvestment, "42")

	assert.ErrorIs(t, svc.SoftDelete(context.Background(), bob, tx.ID), ErrNotFound)
	_, err := svc.Get(context.Background(), bob, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	bobList, err := svc.List(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, bobList)

	got, err := svc.Get(context.Background(), alice, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
}

func TestList_MostRecentFirst(t *testing.T) {
	svc := NewTransactionService(storage.NewMemoryStorage())
	owner := uuid.Must(uuid.NewV4())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, day := range []int{3, 1, 2} {
		_, err := svc.Append(context.Background(), owner, AppendInput{
			Kind:        KindExpense,
			Category:    CategoryFood,
			Amount:      decimal.NewFromInt(int64(i + 1)),
			OccurredAt:  omit.From(base.AddDate(0, 0, day)),
			Description: omit.From("day"),
		})
		require.NoError(t, err)
	}

	transactions, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.True(t, transactions[0].OccurredAt.Equal(base.AddDate(0, 0, 3)))
	assert.True(t, transactions[1].OccurredAt.Equal(base.AddDate(0, 0, 2)))
	assert.True(t, transactions[2].OccurredAt.Equal(base.AddDate(0, 0, 1)))
}

func TestTransactionService_StorageErrors(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	dbErr := errors.New("connection refused")

	table := sqlconfig.NewMockITransactionTable(t)
	table.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil, dbErr)
	table.EXPECT().ListActiveByOwner(mock.Anything, owner).Return(nil, dbErr)
	table.EXPECT().FindByID(mock.Anything, id).Return(nil, dbErr)
	table.EXPECT().SoftDelete(mock.Anything, owner, id, mock.Anything).Return(dbErr)
	table.EXPECT().Totals(mock.Anything, owner).Return(nil, dbErr)
	svc := NewTransactionService(&storage.Storage{Transactions: table})
	ctx := context.Background()

	_, err := svc.Append(ctx, owner, AppendInput{Kind: KindIncome, Category: CategorySalary, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, dbErr)

	_, err = svc.List(ctx, owner)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = svc.Get(ctx, owner, id)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, svc.SoftDelete(ctx, owner, id), ErrUnavailable)

	_, err = svc.ComputeBalance(ctx, owner)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAppend_StorageOutOfRange(t *testing.T) {
	table := sqlconfig.NewMockITransactionTable(t)
	table.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil, sqlconfig.ErrOutOfRange)
	svc := NewTransactionService(&storage.Storage{Transactions: table})

	_, err := svc.Append(context.Background(), uuid.Must(uuid.NewV4()), AppendInput{
		Kind:     KindIncome,
		Category: CategorySalary,
		Amount:   decimal.NewFromInt(1),
	})

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestAppend_PassesRecordToStorage(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	table := sqlconfig.NewMockITransactionTable(t)
	table.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(create *sqlconfig.TransactionCreate) bool {
		return create.OwnerID == owner &&
			create.Kind == "expense" &&
			create.Category == "food" &&
			create.Amount.Equal(decimal.RequireFromString("9.99")) &&
			create.Description == "" &&
			create.OccurredAt.Equal(now) &&
			create.CreatedAt.Equal(now) &&
			create.ID != uuid.Nil
	})).RunAndReturn(func(_ context.Context, create *sqlconfig.TransactionCreate) (*sqlconfig.Transaction, error) {
		return &sqlconfig.Transaction{
			ID:         create.ID,
			OwnerID:    create.OwnerID,
			Kind:       create.Kind,
			Category:   create.Category,
			Amount:     create.Amount,
			OccurredAt: create.OccurredAt,
			CreatedAt:  create.CreatedAt,
			UpdatedAt:  create.CreatedAt,
		}, nil
	})
	svc := NewTransactionService(&storage.Storage{Transactions: table})
	svc.now = func() time.Time { return now }

	tx, err := svc.Append(context.Background(), owner, AppendInput{
		Kind:     KindExpense,
		Category: CategoryFood,
		Amount:   decimal.RequireFromString("9.99"),
	})

	require.NoError(t, err)
	assert.Equal(t, CategoryFood, tx.Category)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(KindIncome, CategorySalary))
	assert.True(t, ValidCategory(KindExpense, CategoryOtherExpense))
	assert.False(t, ValidCategory(KindExpense, CategoryOtherIncome))
	assert.False(t, ValidCategory("", ""))
	assert.Len(t, CategoriesFor(KindIncome), 4)
	assert.Len(t, CategoriesFor(KindExpense), 8)
	assert.Nil(t, CategoriesFor("transfer"))
}
