package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/user"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/ratelimit"
	"github.com/carson-networks/ledger-server/internal/service"
)

const shutdownTimeout = 15 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	AllowedOrigins []string
	Location       *time.Location

	// TrustProxyHeaders rewrites the client address from proxy headers.
	TrustProxyHeaders bool

	Service  *service.Service
	Database pinger
	Tokens   auth.TokenParser
	// Limiter is optional. Without it no operation is rate limited.
	Limiter ratelimit.Limiter
}

type registrar interface {
	Register(api huma.API)
}

// Handler builds the router with every v1 operation mounted.
func (r *Rest) Handler() http.Handler {
	router := chi.NewMux()
	if r.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("Money Manager API", "1.0.0")
	humaConfig.Components.SecuritySchemes = auth.SecuritySchemes()
	api := humachi.New(router, humaConfig)

	api.UseMiddleware(logging.Middleware(r.Logger))
	api.UseMiddleware(auth.Middleware(api, r.Tokens))
	if r.Limiter != nil {
		api.UseMiddleware(ratelimit.Middleware(api, r.Limiter, r.Logger))
	}

	location := r.Location
	if location == nil {
		location = time.UTC
	}
	svc := r.Service

	handlers := []registrar{
		status.NewHandler(r.Database),

		user.NewRegisterHandler(svc.Auth),
		user.NewSessionHandler(svc.Auth),
		user.NewPasswordResetHandler(svc.Auth),

		account.NewListAccountsHandler(svc.Account),
		account.NewCreateAccountHandler(svc.Account),
		account.NewUpdateAccountHandler(svc.Account),
		account.NewDeleteAccountHandler(svc.Account),
		account.NewReconcileAccountHandler(svc.Account),

		transaction.NewListTransactionsHandler(svc.Transaction, location),
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewUpdateTransactionHandler(svc.Transaction),
		transaction.NewDeleteTransactionHandler(svc.Transaction),
		transaction.NewSummaryHandler(svc.Transaction, location),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
