package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/trackswift/internal/api/http"
	"github.com/spec-kit/trackswift/internal/api/http/handlers"
	"github.com/spec-kit/trackswift/internal/auth"
	"github.com/spec-kit/trackswift/internal/config"
	"github.com/spec-kit/trackswift/internal/events"
	"github.com/spec-kit/trackswift/internal/observability"
	"github.com/spec-kit/trackswift/internal/persistence"
	"github.com/spec-kit/trackswift/internal/repository"
	"github.com/spec-kit/trackswift/internal/service"
	"github.com/spec-kit/trackswift/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.Open(cfg.SQLite, logger)
	if err != nil {
		logger.Fatal("failed to open sqlite store", zap.Error(err))
	}
	defer store.Close()

	if err := persistence.EnsureSchema(ctx, store, logger); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	if cfg.App.SeedDemoData {
		if err := persistence.SeedIfEmpty(ctx, store, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		sessions = session.NewRedisStore(redis.Client())
	} else {
		logger.Info("REDIS_ADDR not provided; keeping sessions in-process")
		sessions = session.NewMemoryStore()
	}

	accountRepo := repository.NewAccountRepository(store)
	shipmentRepo := repository.NewShipmentRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLog(dispatcher, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:  accountRepo,
		SessionStore: sessions,
	})
	shipmentService := service.NewShipmentService(service.ShipmentDependencies{
		ShipmentRepo: shipmentRepo,
		OrderRepo:    orderRepo,
		AccountRepo:  accountRepo,
		Dispatcher:   dispatcher,
	})
	orderService := service.NewOrderService(orderRepo, shipmentRepo)
	reportService := service.NewReportService(shipmentRepo, orderRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), sessions)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Shipments:      handlers.NewShipmentsHandler(shipmentService, orderService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Dashboard:      handlers.NewDashboardHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
