// Package memstore keeps users and transactions in process memory. It
// satisfies the same table interfaces as the postgres backend and is used
// for local runs (STORAGE_DRIVER=memory) and tests.
package memstore

import (
	"sync"
)

// Store owns the shared lock for both tables so each write is a single
// critical section and reads observe a consistent snapshot.
type Store struct {
	mu           sync.RWMutex
	Users        *UsersTable
	Transactions *TransactionsTable
}

func New() *Store {
	s := &Store{}
	s.Users = &UsersTable{store: s, byID: make(map[string]*userRecord), byEmail: make(map[string]string)}
	s.Transactions = &TransactionsTable{store: s, byID: make(map[string]*transactionRecord)}
	return s
}
