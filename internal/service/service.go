package service

import (
	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, hasher *auth.Hasher, tokens *auth.TokenIssuer) *Service {
	return &Service{
		Transaction: NewTransactionService(store),
		Account:     NewAccountService(store, hasher, tokens),
	}
}
