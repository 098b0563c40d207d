package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// BalanceInput is the Huma input for the balance summary.
type BalanceInput struct{}

// Balance is the API response model for the balance summary.
type Balance struct {
	TotalIncome      string `json:"totalIncome" doc:"Sum of active income"`
	TotalExpense     string `json:"totalExpense" doc:"Sum of active expenses"`
	CurrentBalance   string `json:"currentBalance" doc:"totalIncome minus totalExpense, may be negative"`
	TransactionCount int64  `json:"transactionCount" doc:"Number of active transactions"`
}

// BalanceOutput is the Huma output for the balance summary.
type BalanceOutput struct {
	Body Balance
}

// balanceComputer is the interface for computing balances.
type balanceComputer interface {
	ComputeBalance(ctx context.Context, ownerID uuid.UUID) (*service.Balance, error)
}

// BalanceHandler handles GET /v1/balance.
type BalanceHandler struct {
	TransactionService balanceComputer
	Middlewares        huma.Middlewares
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(svc balanceComputer, middlewares huma.Middlewares) *BalanceHandler {
	return &BalanceHandler{TransactionService: svc, Middlewares: middlewares}
}

// Register registers the balance endpoint with the Huma API.
func (h *BalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/v1/balance",
		Summary:     "Current balance",
		Description: "Recomputes income, expense and balance from the caller's active transactions.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *BalanceHandler) handle(ctx context.Context, _ *BalanceInput) (*BalanceOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("computeBalanceMs")
	}
	balance, err := h.TransactionService.ComputeBalance(ctx, ownerID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(ctx, "Transaction", err)
	}

	return &BalanceOutput{Body: Balance{
		TotalIncome:      balance.TotalIncome.String(),
		TotalExpense:     balance.TotalExpense.String(),
		CurrentBalance:   balance.CurrentBalance.String(),
		TransactionCount: balance.TransactionCount,
	}}, nil
}
