package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finbooks/backoffice/internal/application/usecase"
	"github.com/finbooks/backoffice/internal/domain/service"
	"github.com/finbooks/backoffice/internal/infrastructure/config"
	infraKafka "github.com/finbooks/backoffice/internal/infrastructure/kafka"
	infraPG "github.com/finbooks/backoffice/internal/infrastructure/postgres"
	grpcPresentation "github.com/finbooks/backoffice/internal/presentation/grpc"
	"github.com/finbooks/backoffice/internal/presentation/rest"
	"github.com/finbooks/backoffice/pkg/auth"
	kafkapkg "github.com/finbooks/backoffice/pkg/kafka"
	"github.com/finbooks/backoffice/pkg/observability"
	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg := config.Load()
	cfg.Validate()

	// Initialize logger
	logger := observability.InitLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting invoicing-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize metrics
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		Port:        cfg.HTTPPort,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	} else {
		defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort meter shutdown
	}

	// Initialize database
	pool, err := pgpkg.NewPool(ctx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	if err = pgpkg.RunMigrations(cfg.DB.DSN(), cfg.MigrationsDir); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	// Initialize Kafka producer
	producer := kafkapkg.NewProducer(cfg.Kafka)
	defer producer.Close() //nolint:errcheck // best-effort producer shutdown

	// Wire dependencies (DI via constructors)
	txManager := infraPG.NewTxManager(pool)
	publisher := infraKafka.NewEventPublisher(producer, logger)
	resolver := service.NewAccountResolver(cfg.Resolver)
	scheduler := service.NewPaymentScheduler()
	builder := service.NewEntryBuilder()
	validator := service.NewEntryValidator()

	// Use cases
	postInvoiceUC := usecase.NewPostInvoice(txManager, publisher, resolver, scheduler, builder, validator)
	cancelInvoiceUC := usecase.NewCancelInvoice(txManager, publisher)
	resetInvoiceUC := usecase.NewResetInvoice(txManager, publisher)
	previewEntryUC := usecase.NewPreviewJournalEntry(txManager, resolver, scheduler, builder, validator)
	previewScheduleUC := usecase.NewPreviewPaymentSchedule(txManager, scheduler)
	getInvoiceUC := usecase.NewGetInvoice(txManager)

	// JWT service (validation-only unless a signing key is configured)
	jwtSvc, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server
	handler := grpcPresentation.NewInvoicingHandler(
		postInvoiceUC, cancelInvoiceUC, resetInvoiceUC,
		previewEntryUC, previewScheduleUC, getInvoiceUC,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, cfg.EnableReflection)

	// HTTP server (health checks + metrics)
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, func() error {
		return pgpkg.HealthCheck(ctx, pool)
	})
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Serve(cfg.GRPCAddr())
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown
	if err := httpServer.Shutdown(context.Background()); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("invoicing-service stopped")
}
