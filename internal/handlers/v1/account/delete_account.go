package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierr"
)

// DeleteAccountInput is the Huma input for deleting the caller's account.
type DeleteAccountInput struct{}

// DeleteAccountOutput is empty; success is 204.
type DeleteAccountOutput struct{}

// accountDeleter is the interface for soft-deleting accounts.
type accountDeleter interface {
	SoftDelete(ctx context.Context, userID uuid.UUID) error
}

// DeleteAccountHandler handles DELETE /v1/account.
type DeleteAccountHandler struct {
	AccountService accountDeleter
	Middlewares    huma.Middlewares
}

// NewDeleteAccountHandler creates a new DeleteAccountHandler. middlewares
// must place an auth.Session in the request context.
func NewDeleteAccountHandler(svc accountDeleter, middlewares huma.Middlewares) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc, Middlewares: middlewares}
}

// Register registers the delete account endpoint with the Huma API.
func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/v1/account",
		Summary:       "Delete account",
		Description:   "Soft-deletes the caller's account. Existing tokens stop working.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
		Security:      BearerSecurity,
		Middlewares:   h.Middlewares,
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, _ *DeleteAccountInput) (*DeleteAccountOutput, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusUnauthorized, "Could not validate credentials")
	}

	if err := h.AccountService.SoftDelete(ctx, session.UserID); err != nil {
		return nil, apierr.FromService(ctx, "Account", err)
	}

	return &DeleteAccountOutput{}, nil
}
