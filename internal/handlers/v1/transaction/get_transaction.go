package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierr"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// GetTransactionOutput is the Huma output for reading one transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// transactionGetter is the interface for reading one transaction.
type transactionGetter interface {
	Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
	Middlewares        huma.Middlewares
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(svc transactionGetter, middlewares huma.Middlewares) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc, Middlewares: middlewares}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Description: "Returns one active transaction owned by the caller.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*GetTransactionOutput, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, err := parseTransactionID(input.ID)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.Get(ctx, ownerID, id)
	if err != nil {
		return nil, apierr.FromService(ctx, "Transaction", err)
	}

	return &GetTransactionOutput{Body: transactionResponse(tx)}, nil
}
