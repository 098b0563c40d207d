package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/auth"
)

// ownerFromContext returns the caller's user ID. The auth middleware must
// have run first.
func ownerFromContext(ctx context.Context) (uuid.UUID, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return session.UserID, nil
}
