package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// BearerSchemeName names the OpenAPI security scheme for protected routes.
const BearerSchemeName = "bearer"

// BearerSecurity marks an operation as requiring a bearer token.
var BearerSecurity = []map[string][]string{{BearerSchemeName: {}}}

// sessionResolver is the interface for turning a token into a session.
type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Session, error)
}

// RequireSession returns a middleware that resolves the bearer token and
// places the session in the request context. Requests without a valid
// token never reach the operation.
func RequireSession(api huma.API, resolver sessionResolver) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			unauthorized(api, ctx)
			return
		}

		session, err := resolver.Resolve(ctx.Context(), token)
		if errors.Is(err, service.ErrUnavailable) {
			logging.AddError(ctx.Context(), err)
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "service temporarily unavailable")
			return
		}
		if err != nil {
			unauthorized(api, ctx)
			return
		}

		if logData := logging.GetLogData(ctx.Context()); logData != nil {
			logData.AddData("userID", session.UserID.String())
		}
		next(huma.WithContext(ctx, auth.WithSession(ctx.Context(), session)))
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(api huma.API, ctx huma.Context) {
	ctx.SetHeader("WWW-Authenticate", "Bearer")
	_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Could not validate credentials")
}
