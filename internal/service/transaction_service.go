package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// TransactionService handles the per-user ledger.
type TransactionService struct {
	storage *storage.Storage
	now     func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store, now: time.Now}
}

// Append records a new transaction for ownerID.
func (s *TransactionService) Append(ctx context.Context, ownerID uuid.UUID, input AppendInput) (*Transaction, error) {
	if err := checkAmount(input.Amount); err != nil {
		return nil, err
	}
	if !ValidCategory(input.Kind, input.Category) {
		return nil, fmt.Errorf("%w: %q is not a %q category", ErrInvalidCategory, input.Category, input.Kind)
	}

	description := input.Description.GetOr("")
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: limit is %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("uuid.NewV4: %w", err)
	}

	now := s.now()
	row, err := s.storage.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		ID:          id,
		OwnerID:     ownerID,
		Kind:        string(input.Kind),
		Category:    string(input.Category),
		Amount:      input.Amount,
		Description: description,
		OccurredAt:  input.OccurredAt.GetOr(now),
		CreatedAt:   now,
	})
	if errors.Is(err, sqlconfig.ErrOutOfRange) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if err != nil {
		return nil, unavailable("insert transaction", err)
	}

	tx := transactionFromStorage(row)
	return &tx, nil
}

// List returns ownerID's active transactions, most recent first. An empty
// ledger yields an empty slice.
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID) ([]Transaction, error) {
	rows, err := s.storage.Transactions.ListActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, unavailable("list transactions", err)
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nil
}

// Get returns one of ownerID's active transactions.
func (s *TransactionService) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find transaction", err)
	}
	if row.OwnerID != ownerID || row.DeletedAt != nil {
		return nil, ErrNotFound
	}

	tx := transactionFromStorage(row)
	return &tx, nil
}

// SoftDelete hides one of ownerID's active transactions from reads and
// aggregates. The record itself is retained.
func (s *TransactionService) SoftDelete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	err := s.storage.Transactions.SoftDelete(ctx, ownerID, id, s.now())
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable("delete transaction", err)
	}
	return nil
}

// ComputeBalance sums ownerID's active transactions. It reads storage on
// every call.
func (s *TransactionService) ComputeBalance(ctx context.Context, ownerID uuid.UUID) (*Balance, error) {
	totals, err := s.storage.Transactions.Totals(ctx, ownerID)
	if err != nil {
		return nil, unavailable("sum transactions", err)
	}

	balance := &Balance{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, total := range totals {
		switch Kind(total.Kind) {
		case KindIncome:
			balance.TotalIncome = balance.TotalIncome.Add(total.Total)
		case KindExpense:
			balance.TotalExpense = balance.TotalExpense.Add(total.Total)
		default:
			continue
		}
		balance.TransactionCount += total.Count
	}
	balance.CurrentBalance = balance.TotalIncome.Sub(balance.TotalExpense)

	return balance, nil
}
