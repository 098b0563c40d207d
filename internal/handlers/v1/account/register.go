package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// RegisterBody is the request body for creating an account.
type RegisterBody struct {
	Email    string `json:"email" required:"true" maxLength:"254" doc:"Email address, unique per account"`
	FullName string `json:"fullName" required:"true" minLength:"1" maxLength:"100" doc:"Full name"`
	Password string `json:"password" required:"true" minLength:"8" maxLength:"72" doc:"At least 8 characters with an upper, a lower and a digit"`
}

// RegisterInput is the Huma input for creating an account.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterOutput is the Huma output for creating an account.
type RegisterOutput struct {
	Status int
	Body   User
}

// userRegistrar is the interface for creating accounts.
type userRegistrar interface {
	Register(ctx context.Context, input service.RegisterInput) (*service.User, error)
}

// RegisterHandler handles POST /v1/auth/register.
type RegisterHandler struct {
	AccountService userRegistrar
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc userRegistrar) *RegisterHandler {
	return &RegisterHandler{AccountService: svc}
}

// Register registers the registration endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/v1/auth/register",
		Summary:     "Register",
		Description: "Creates a new account with a hashed password.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("registerMs")
	}
	user, err := h.AccountService.Register(ctx, service.RegisterInput{
		Email:    input.Body.Email,
		FullName: input.Body.FullName,
		Password: input.Body.Password,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(ctx, "Account", err)
	}

	if logData != nil {
		logData.AddData("userID", user.ID.String())
	}

	return &RegisterOutput{
		Status: http.StatusCreated,
		Body:   userResponse(user),
	}, nil
}
