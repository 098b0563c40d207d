package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	Kind        string `json:"kind" enum:"income,expense" doc:"income or expense"`
	Category    string `json:"category" doc:"Category within the kind"`
	Amount      string `json:"amount" doc:"Positive decimal amount"`
	Description string `json:"description" doc:"Free text, returned verbatim"`
	OccurredAt  string `json:"occurredAt" doc:"RFC3339 time the transaction happened"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 time the transaction was recorded"`
}

func transactionResponse(tx *service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Kind:        string(tx.Kind),
		Category:    string(tx.Category),
		Amount:      tx.Amount.String(),
		Description: tx.Description,
		OccurredAt:  tx.OccurredAt.UTC().Format(time.RFC3339),
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// bearerSecurity marks an operation as requiring a bearer token.
var bearerSecurity = []map[string][]string{{"bearer": {}}}

// TransactionIDInput is the path parameter shared by single-transaction routes.
type TransactionIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

func parseTransactionID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusUnprocessableEntity, "invalid transaction id", err)
	}
	return id, nil
}
