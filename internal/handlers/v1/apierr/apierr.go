package apierr

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// FromService maps a service error kind to the HTTP error sent to the
// client. The full error is recorded on the request LogData; only the
// storage-independent message reaches the response. resource names the
// entity in 404 messages.
func FromService(ctx context.Context, resource string, err error) error {
	logging.AddError(ctx, err)

	switch {
	case errors.Is(err, service.ErrInvalidRegistration),
		errors.Is(err, service.ErrWeakCredential),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidDescription):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		return huma.NewError(http.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return huma.NewError(http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, resource+" not found")
	case errors.Is(err, service.ErrUnavailable):
		return huma.NewError(http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		return huma.NewError(http.StatusInternalServerError, "internal error")
	}
}
