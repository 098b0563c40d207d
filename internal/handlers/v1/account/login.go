package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierr"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

// LoginBody is the request body for signing in.
type LoginBody struct {
	Email    string `json:"email" required:"true" doc:"Email address"`
	Password string `json:"password" required:"true" doc:"Password"`
}

// LoginInput is the Huma input for signing in.
type LoginInput struct {
	Body LoginBody
}

// LoginResponse is the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"accessToken" doc:"JWT bearer token"`
	TokenType   string `json:"tokenType" doc:"Always \"bearer\""`
	ExpiresAt   string `json:"expiresAt" doc:"RFC3339 expiry time"`
}

// LoginOutput is the Huma output for signing in.
type LoginOutput struct {
	Body LoginResponse
}

// authenticator is the interface for verifying credentials.
type authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*auth.Session, error)
}

// LoginHandler handles POST /v1/auth/login.
type LoginHandler struct {
	AccountService authenticator
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(svc authenticator) *LoginHandler {
	return &LoginHandler{AccountService: svc}
}

// Register registers the login endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Log in",
		Description: "Verifies the credential and returns a short-lived bearer token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("authenticateMs")
	}
	session, err := h.AccountService.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.FromService(ctx, "Account", err)
	}

	if logData != nil {
		logData.AddData("userID", session.UserID.String())
	}

	return &LoginOutput{Body: LoginResponse{
		AccessToken: session.Token,
		TokenType:   "bearer",
		ExpiresAt:   session.ExpiresAt.UTC().Format(time.RFC3339),
	}}, nil
}
