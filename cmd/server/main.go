package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/config"
	"github.com/mmynk/santa/internal/exchange"
	"github.com/mmynk/santa/internal/metrics"
	"github.com/mmynk/santa/internal/middleware"
	"github.com/mmynk/santa/internal/service"
	"github.com/mmynk/santa/internal/storage/sqlite"
	"github.com/mmynk/santa/pkg/api/apiconnect"
	"github.com/mmynk/santa/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	ex := exchange.New(store, exchange.WithLogger(logger))

	var adminSecret auth.CredentialVerifier
	if cfg.AdminSecret != "" {
		adminSecret = auth.SharedSecret(cfg.AdminSecret)
		logger.Info("Admin secret enabled for RunAssignment")
	}

	hostInterceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
			apiconnect.AuthServiceLogoutProcedure,
			// Authorized by host ownership or the admin secret header.
			apiconnect.EventServiceRunAssignmentProcedure,
		),
		middleware.LoggingInterceptor(logger),
	)
	participantInterceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, logger),
		hostInterceptors,
	))
	mux.Handle(apiconnect.NewEventServiceHandler(
		service.NewEventService(ex, adminSecret, m, logger),
		hostInterceptors,
	))
	mux.Handle(apiconnect.NewParticipantServiceHandler(
		service.NewParticipantService(ex, m, logger),
		participantInterceptors,
	))
	mux.Handle(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := loggingMiddleware(logger, corsMiddleware(cfg.CORSOrigin, mux))

	// h2c for HTTP/2 without TLS, which Connect streaming clients expect.
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Connect server starting", "address", cfg.Addr, "metrics", cfg.MetricsPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
