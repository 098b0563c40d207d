package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type transactionRecord struct {
	tx sqlconfig.Transaction
}

// TransactionsTable is the in-memory transactions table. Soft-deleted
// records are kept and stay reachable through FindByID.
type TransactionsTable struct {
	store *Store
	byID  map[string]*transactionRecord
}

var _ sqlconfig.ITransactionTable = (*TransactionsTable)(nil)

func (t *TransactionsTable) Insert(ctx context.Context, create *sqlconfig.TransactionCreate) (*sqlconfig.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, exists := t.byID[create.ID.String()]; exists {
		return nil, sqlconfig.ErrDuplicate
	}

	rec := &transactionRecord{tx: sqlconfig.Transaction{
		ID:          create.ID,
		OwnerID:     create.OwnerID,
		Kind:        create.Kind,
		Category:    create.Category,
		Amount:      create.Amount,
		Description: create.Description,
		OccurredAt:  create.OccurredAt,
		CreatedAt:   create.CreatedAt,
		UpdatedAt:   create.CreatedAt,
	}}
	t.byID[create.ID.String()] = rec

	return copyTransaction(&rec.tx), nil
}

func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	rec, ok := t.byID[id.String()]
	if !ok {
		return nil, sqlconfig.ErrNotFound
	}
	return copyTransaction(&rec.tx), nil
}

func (t *TransactionsTable) ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*sqlconfig.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.RLock()
	result := make([]*sqlconfig.Transaction, 0)
	for _, rec := range t.byID {
		if rec.tx.OwnerID == ownerID && rec.tx.DeletedAt == nil {
			result = append(result, copyTransaction(&rec.tx))
		}
	}
	t.store.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.After(b.OccurredAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes()) > 0
	})
	return result, nil
}

func (t *TransactionsTable) SoftDelete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	rec, ok := t.byID[id.String()]
	if !ok || rec.tx.OwnerID != ownerID || rec.tx.DeletedAt != nil {
		return sqlconfig.ErrNotFound
	}
	deletedAt := at
	rec.tx.DeletedAt = &deletedAt
	rec.tx.UpdatedAt = at
	return nil
}

func (t *TransactionsTable) Totals(ctx context.Context, ownerID uuid.UUID) ([]*sqlconfig.KindTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	byKind := make(map[string]*sqlconfig.KindTotal)
	var kinds []string
	for _, rec := range t.byID {
		if rec.tx.OwnerID != ownerID || rec.tx.DeletedAt != nil {
			continue
		}
		total, ok := byKind[rec.tx.Kind]
		if !ok {
			total = &sqlconfig.KindTotal{Kind: rec.tx.Kind, Total: decimal.Zero}
			byKind[rec.tx.Kind] = total
			kinds = append(kinds, rec.tx.Kind)
		}
		total.Total = total.Total.Add(rec.tx.Amount)
		total.Count++
	}

	sort.Strings(kinds)
	result := make([]*sqlconfig.KindTotal, len(kinds))
	for i, kind := range kinds {
		result[i] = byKind[kind]
	}
	return result, nil
}

func copyTransaction(tx *sqlconfig.Transaction) *sqlconfig.Transaction {
	c := *tx
	if tx.DeletedAt != nil {
		deletedAt := *tx.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}
