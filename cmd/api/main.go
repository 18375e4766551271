package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pix-recebidos/config"
	httpHandler "pix-recebidos/internal/adapter/http/handler"
	"pix-recebidos/internal/adapter/messaging"
	"pix-recebidos/internal/adapter/provider"
	pgStorage "pix-recebidos/internal/adapter/storage/postgres"
	redisStorage "pix-recebidos/internal/adapter/storage/redis"
	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/internal/service"
	"pix-recebidos/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting PIX recebidos service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Run schema migrations
	if cfg.Database.Migrate {
		if err := pgStorage.Migrate(cfg.Database.DSN(), log); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	eventRepo := pgStorage.NewEventRepo(pool)
	linkRepo := pgStorage.NewLinkRepo(pool)
	credRepo := pgStorage.NewCredentialRepo(pool)
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	contactRepo := pgStorage.NewContactRepo(pool)
	chargeRepo := pgStorage.NewChargeRepo(pool)

	// Initialize Redis stores
	tokenCache := redisStorage.NewTokenCache(rdb)

	// Initialize outbound clients
	authClient := provider.NewAuthClient(cfg.Provider)
	queryClient := provider.NewQueryClient(cfg.Provider)
	gateway := messaging.NewGatewayClient(cfg.Gateway)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	confirmPolicy := domain.NewConfirmationPolicy(cfg.Provider.ConfirmedStatuses)
	credSvc := service.NewCredentialService(credRepo, tokenCache, authClient, log)
	notifySvc := service.NewNotificationService(
		contactRepo,
		chargeRepo,
		paymentRepo,
		gateway,
		confirmPolicy,
		log,
	)
	reconcileSvc := service.NewReconcileService(
		eventRepo,
		linkRepo,
		credSvc,
		queryClient,
		paymentRepo,
		notifySvc,
		cfg.Webhook,
		confirmPolicy,
		log,
	)
	authSvc := service.NewAuthService(cfg.Operator, hashSvc, tokenSvc)
	reportingSvc := service.NewReportingService(paymentRepo)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ReconcileSvc:   reconcileSvc,
		AuthSvc:        authSvc,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
