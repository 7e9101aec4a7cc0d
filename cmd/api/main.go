package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/blood-bank-service/internal/api/http"
	"github.com/spec-kit/blood-bank-service/internal/api/http/handlers"
	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/cache"
	"github.com/spec-kit/blood-bank-service/internal/config"
	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/observability"
	"github.com/spec-kit/blood-bank-service/internal/persistence"
	"github.com/spec-kit/blood-bank-service/internal/repository"
	"github.com/spec-kit/blood-bank-service/internal/service"
	"github.com/spec-kit/blood-bank-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := repository.NewMemoryStore().Set()
	deps := []handlers.Dependency{}
	if pool := pg.PoolHandle(); pool != nil {
		repos = repository.NewPostgresSet(pool)
		deps = append(deps, handlers.Dependency{Name: "postgres", Pinger: pg})
	}

	var inventoryCache cache.Cache = cache.NewMemoryCache()
	if redis.Enabled() {
		inventoryCache = cache.NewRedisCache(redis.Client, cfg.App.Name+":")
		deps = append(deps, handlers.Dependency{Name: "redis", Pinger: redis})
	}

	metrics := observability.NewMetrics()
	codec, err := auth.NewCodec(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to build token codec", zap.Error(err))
	}
	if cfg.Auth.TokenScheme == config.TokenSchemeLegacy {
		logger.Warn("legacy unsigned tokens enabled; any client can forge a session")
	}
	hasher := auth.NewPasswordHasher(cfg.Auth)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := worker.StartNotificationWorker(context.Background(), dispatcher,
		service.NewNotificationService(logger, cfg.Notification), logger)
	defer notifications.Stop()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   repos.Users,
		Codec:      codec,
		Hasher:     hasher,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:         repos.Users,
		ProfileRepo:      repos.Profiles,
		AppointmentRepo:  repos.Appointments,
		BloodRequestRepo: repos.BloodRequests,
	})
	inventoryService := service.NewInventoryService(service.InventoryDependencies{
		ProfileRepo:   repos.Profiles,
		InventoryRepo: repos.Inventory,
		Cache:         inventoryCache,
		CacheTTL:      cfg.Cache.InventoryTTL(),
		Dispatcher:    dispatcher,
		Metrics:       metrics,
		Logger:        logger,
	})

	app := httptransport.NewApp(httptransport.ServerConfig{
		Name:           cfg.App.Name,
		RequestTimeout: cfg.App.RequestTimeout(),
		Logger:         logger,
		Metrics:        metrics,
	}, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps...),
		Auth:         handlers.NewAuthHandler(authService),
		User:         handlers.NewUserHandler(userService),
		Appointments: handlers.NewAppointmentsHandler(service.NewAppointmentService(repos.Appointments, dispatcher, logger)),
		Requests:     handlers.NewRequestsHandler(service.NewBloodRequestService(repos.BloodRequests, dispatcher, logger)),
		Inventory:    handlers.NewInventoryHandler(inventoryService),
		Gate:         auth.NewGate(codec, metrics),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Error("fiber listen", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}
