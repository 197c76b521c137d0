package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"finbot/config"
	httpLayer "finbot/http"
	"finbot/repository"
	"finbot/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := config.LoadCatalog(cfg.Deposit.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load bank catalog", zap.Error(err))
	}

	var (
		users        repository.UserRepository
		entitlements repository.EntitlementRepository
	)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		users = repository.NewUserRepositoryRedis(client)
		entitlements = repository.NewEntitlementRepositoryRedis(client)
		logger.Info("using redis stores", zap.String("addr", cfg.Redis.Addr))
	} else {
		users = repository.NewUserRepositoryMemory()
		entitlements = repository.NewEntitlementRepositoryMemory()
		logger.Info("using in-memory stores")
	}
	sessions := repository.NewSessionRepositoryMemory()

	creditService := service.NewCreditService(users, logger.Named("credit"))
	depositService := service.NewDepositService(catalog, cfg.Deposit.TaxRatePct, logger.Named("deposit"))
	formService := service.NewFormService(sessions, users, creditService, depositService, logger.Named("forms"))
	entitlementService := service.NewEntitlementService(entitlements, logger.Named("premium"))

	sweeper := service.NewSessionSweeper(formService, cfg.Forms.SessionTTL, cfg.Forms.SweepInterval, logger.Named("sweeper"))
	defer sweeper.Stop()

	formHandler := httpLayer.NewFormHandler(
		formService,
		entitlementService,
		httpLayer.AllowAllMembership{},
		cfg.Forms.PremiumForms,
		logger.Named("http"),
	)
	creditHandler := httpLayer.NewCreditHandler(creditService, logger.Named("http"))
	depositHandler := httpLayer.NewDepositHandler(depositService, logger.Named("http"))
	entitlementHandler := httpLayer.NewEntitlementHandler(entitlementService, logger.Named("http"))
	profileHandler := httpLayer.NewProfileHandler(users, logger.Named("http"))

	rateLimiter := httpLayer.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateWindow)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	routes := map[string]http.HandlerFunc{
		"/form/start":        formHandler.StartForm,
		"/form/submit":       formHandler.SubmitInput,
		"/form/cancel":       formHandler.CancelForm,
		"/credit/schedule":   creditHandler.Schedule,
		"/deposit/calculate": depositHandler.Calculate,
		"/deposit/compare":   depositHandler.Compare,
		"/premium/grant":     entitlementHandler.Grant,
		"/premium/status":    entitlementHandler.Status,
		"/profile":           profileHandler.Show,
	}
	for path, handler := range routes {
		mux.Handle(path, httpLayer.RateLimitMiddleware(rateLimiter, handler))
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
