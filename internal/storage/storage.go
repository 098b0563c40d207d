package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/storage/memstore"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type Storage struct {
	DB           *sql.DB
	Users        sqlconfig.IUserTable
	Transactions sqlconfig.ITransactionTable
}

// NewStorage opens the backend selected by env.StorageDriver.
func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	if env.StorageDriver == config.StorageDriverMemory {
		return NewMemoryStorage(), nil
	}

	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.PingContext: %w", err)
	}

	return NewPostgresStorage(db), nil
}

// NewPostgresStorage wires the bob-backed tables to an open database.
func NewPostgresStorage(db *sql.DB) *Storage {
	return &Storage{
		DB:           db,
		Users:        sqlconfig.NewUsersTable(db),
		Transactions: sqlconfig.NewTransactionsTable(db),
	}
}

// NewMemoryStorage returns a Storage backed by a fresh in-memory store.
func NewMemoryStorage() *Storage {
	store := memstore.New()
	return &Storage{
		Users:        store.Users,
		Transactions: store.Transactions,
	}
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
