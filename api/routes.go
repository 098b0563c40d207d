package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/account"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

const serviceName = "budget-tracker"

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	AllowedOrigins []string
	Service        *service.Service
}

// Handler builds the full HTTP handler: status route, huma API, CORS and
// security headers, wrapped for tracing.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(serviceName)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Budget Tracker API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		account.BearerSchemeName: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humago.New(mux, config)
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	requireSession := huma.Middlewares{account.RequireSession(api, r.Service.Account)}

	account.NewRegisterHandler(r.Service.Account).Register(api)
	account.NewLoginHandler(r.Service.Account).Register(api)
	account.NewDeleteAccountHandler(r.Service.Account, requireSession).Register(api)

	transaction.NewCreateTransactionHandler(r.Service.Transaction, requireSession).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction, requireSession).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction, requireSession).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction, requireSession).Register(api)
	transaction.NewBalanceHandler(r.Service.Transaction, requireSession).Register(api)

	return otelhttp.NewHandler(SecurityHeaders(CORS(r.AllowedOrigins, mux)), serviceName)
}

// Serve listens until ctx is canceled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
