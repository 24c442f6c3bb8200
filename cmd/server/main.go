package main

import (
	"context"
	"errors"
	"fmt"
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
	"golang.org/x/sync/errgroup"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/auth"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/config"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/events"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/middleware"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/service"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/storage/sqlite"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api/apiconnect"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithCurrencySymbol(cfg.CurrencySymbol),
		service.WithPercentEpsilon(cfg.PercentEpsilon),
		service.WithPublisher(publisher),
	}
	ledgerInterceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.Authenticate(jwtManager, service.PublicProcedures...),
		middleware.LoggingInterceptor(logger),
	)
	authInterceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, opts...), authInterceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store, opts...), ledgerInterceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(store, opts...), ledgerInterceptors))
	mux.Handle(apiconnect.NewUserServiceHandler(service.NewUserService(store, opts...), ledgerInterceptors))

	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(middleware.AccessLog(logger, middleware.CORS(mux)), &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Info("Event publishing disabled")
		return events.Nop{}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	logger.Info("Publishing events", "exchange", cfg.AMQPExchange)
	return publisher, nil
}
