package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierr"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

// DeleteTransactionOutput is empty; success is 204.
type DeleteTransactionOutput struct{}

// transactionDeleter is the interface for soft-deleting transactions.
type transactionDeleter interface {
	SoftDelete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
	Middlewares        huma.Middlewares
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(svc transactionDeleter, middlewares huma.Middlewares) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc, Middlewares: middlewares}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Description:   "Soft-deletes one of the caller's transactions. It no longer counts toward the balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerSecurity,
		Middlewares:   h.Middlewares,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*DeleteTransactionOutput, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, err := parseTransactionID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.SoftDelete(ctx, ownerID, id); err != nil {
		return nil, apierr.FromService(ctx, "Transaction", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &DeleteTransactionOutput{}, nil
}
