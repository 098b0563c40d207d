package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Kind        string `json:"kind" required:"true" enum:"income,expense" doc:"income or expense"`
	Category    string `json:"category" required:"true" minLength:"1" doc:"Category allowed for the kind"`
	Amount      string `json:"amount" required:"true" maxLength:"20" pattern:"^\\d{1,15}(\\.\\d{1,4})?$" patternDescription:"decimal with up to 15 integer and 4 fractional digits" doc:"Positive decimal amount, e.g. '12.50'"`
	Description string `json:"description,omitempty" maxLength:"500" doc:"Optional free text"`
	OccurredAt  string `json:"occurredAt,omitempty" format:"date-time" doc:"RFC3339 time, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionAppender is the interface for creating transactions.
type transactionAppender interface {
	Append(ctx context.Context, ownerID uuid.UUID, input service.AppendInput) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionAppender
	Middlewares        huma.Middlewares
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionAppender, middlewares huma.Middlewares) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, Middlewares: middlewares}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records a new income or expense for the caller.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
		Middlewares: h.Middlewares,
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (service.AppendInput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.AppendInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	parsed := service.AppendInput{
		Kind:     service.Kind(input.Body.Kind),
		Category: service.Category(input.Body.Category),
		Amount:   amount,
	}

	if input.Body.Description != "" {
		parsed.Description = omit.From(input.Body.Description)
	}

	if input.Body.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, input.Body.OccurredAt)
		if err != nil {
			return service.AppendInput{}, huma.NewError(http.StatusBadRequest, "invalid occurredAt", err)
		}
		parsed.OccurredAt = omit.From(occurredAt)
	}

	return parsed, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appendInput, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("appendTransactionMs")
	}
	tx, err := h.TransactionService.Append(ctx, ownerID, appendInput)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(ctx, "Transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", tx.ID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   transactionResponse(tx),
	}, nil
}
