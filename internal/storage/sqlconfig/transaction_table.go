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

const transactionsTableName = "transactions"

var transactionColumns = []any{
	"id", "owner_id", "kind", "category", "amount", "description",
	"occurred_at", "created_at", "updated_at", "deleted_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{exec: bob.NewDB(db)}
}

// Insert creates a new transaction and returns the stored record.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	q := psql.Insert(
		im.Into(transactionsTableName,
			"id", "owner_id", "kind", "category", "amount", "description",
			"occurred_at", "created_at", "updated_at"),
		im.Values(psql.Arg(
			create.ID, create.OwnerID, create.Kind, create.Category, create.Amount, create.Description,
			create.OccurredAt, create.CreatedAt, create.CreatedAt,
		)),
		im.Returning(transactionColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toTransaction(), nil
}

// FindByID retrieves a transaction by primary key, including soft-deleted ones.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toTransaction(), nil
}

// ListActiveByOwner returns the owner's non-deleted transactions, most recent first.
func (t *TransactionsTable) ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
		sm.OrderBy("occurred_at").Desc(),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, translateError(err)
	}
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = row.toTransaction()
	}
	return result, nil
}

// SoftDelete marks the owner's active transaction deleted. Missing, already
// deleted and foreign transactions all return ErrNotFound.
func (t *TransactionsTable) SoftDelete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, at time.Time) error {
	q := psql.Update(
		um.Table(transactionsTableName),
		um.SetCol("deleted_at").ToArg(at),
		um.SetCol("updated_at").ToArg(at),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("deleted_at").IsNull()),
	)
	return execExpectingOne(ctx, t.exec, q)
}

// Totals sums the owner's active transactions per kind.
func (t *TransactionsTable) Totals(ctx context.Context, ownerID uuid.UUID) ([]*KindTotal, error) {
	q := psql.Select(
		sm.Columns("kind", "COALESCE(SUM(amount), 0) AS total", "COUNT(*) AS count"),
		sm.From(transactionsTableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("deleted_at").IsNull()),
		sm.GroupBy("kind"),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[kindTotalRow]())
	if err != nil {
		return nil, translateError(err)
	}
	result := make([]*KindTotal, len(rows))
	for i, row := range rows {
		result[i] = &KindTotal{Kind: row.Kind, Total: row.Total, Count: row.Count}
	}
	return result, nil
}
