package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        string
	Category    string
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        string
	Category    string
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
}

// KindTotal is the sum and count of an owner's active transactions of one kind.
type KindTotal struct {
	Kind  string
	Total decimal.Decimal
	Count int64
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --inpackage --output . --filename mock_ITransactionTable.go --with-expecter
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error)
	SoftDelete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, at time.Time) error
	Totals(ctx context.Context, ownerID uuid.UUID) ([]*KindTotal, error)
}

type transactionRow struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	Kind        string          `db:"kind"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	OccurredAt  time.Time       `db:"occurred_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	DeletedAt   sql.NullTime    `db:"deleted_at"`
}

func (r transactionRow) toTransaction() *Transaction {
	return &Transaction{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Kind:        r.Kind,
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
		OccurredAt:  r.OccurredAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   nullTimeToPtr(r.DeletedAt),
	}
}

type kindTotalRow struct {
	Kind  string          `db:"kind"`
	Total decimal.Decimal `db:"total"`
	Count int64           `db:"count"`
}
