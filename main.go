package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lablink/internal/clients"
	"lablink/internal/config"
	"lablink/internal/handlers"
	"lablink/internal/logger"
	"lablink/internal/middleware"
	"lablink/internal/models"
	"lablink/internal/repositories"
	"lablink/internal/seed"
	"lablink/internal/services"
	"lablink/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := NewApp(ctx, cfg, zl)
	cancel()
	if err != nil {
		zl.Fatal("failed to start", zap.Error(err))
	}
	defer app.Close()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zl.Info("starting server", zap.String("addr", cfg.AppPort), zap.Bool("offline", cfg.Offline()))
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zl.Info("shutting down server")
	if err := app.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("error during fiber shutdown", zap.Error(err))
	}
	zl.Info("server gracefully stopped")
}

// App is the wired application.
type App struct {
	Fiber    *fiber.App
	Store    *services.Store
	Catalog  *services.CatalogService
	Checkout *services.CheckoutService
	closers  []func() error
	logger   *zap.Logger
}

// Close releases storage and broker connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("error during close", zap.Error(err))
		}
	}
}

// NewApp wires storage, backends, services and routes from cfg and restores
// the persisted session.
func NewApp(ctx context.Context, cfg config.Config, zl *zap.Logger) (*App, error) {
	app := &App{logger: zl}

	// --- Storage ---
	snapshots, partners, err := app.openStorage(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	// --- Services ---
	notifier := services.NewLogNotifier(zl)
	store := services.NewStore(
		snapshots,
		repositories.NewStaticCouponRepository(seed.Coupons()),
		notifier,
		zl,
		services.WithSnapshotKey(cfg.SnapshotKey),
		services.WithPricing(services.NewPricing(cfg.HomeCollectionCharge)),
	)
	if err := store.Load(ctx); err != nil {
		// A corrupt snapshot must not keep the app down; start fresh.
		zl.Warn("failed to restore snapshot, starting with empty state", zap.Error(err))
	}

	var (
		source    services.CatalogSource
		sink      services.OrderSink
		auth      services.PartnerAuthenticator
		registrar handlers.PartnerRegistrar
	)
	authService := services.NewAuthService(partners, cfg.JWTSecret, zl)
	if cfg.Offline() {
		zl.Info("WP_API_BASE not set, running offline with bundled catalog")
		sink = clients.NewOfflineOrderSink(time.Second)
		auth = authService
		registrar = authService
		authService.RestoreSession(ctx, store)
	} else {
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		wp := clients.NewWordPressClient(clients.NewClient("wordpress", cfg.WPAPIBase, httpClient))
		source = wp
		auth = wp
		sink = clients.NewWooCommerceClient(clients.NewClient("woocommerce", cfg.WPAPIBase, httpClient), cfg.WCKey, cfg.WCSecret)
	}

	var publisher services.OrderEventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, zl)
		if err != nil {
			// Events are best effort; orders still go through without a broker.
			zl.Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
		} else {
			publisher = mq
			app.closers = append(app.closers, mq.Close)
		}
	}

	catalog := services.NewCatalogService(source, store, zl)
	checkout := services.NewCheckoutService(store, sink, publisher, notifier, zl)

	// --- Handlers ---
	fiberApp := fiber.New(fiber.Config{
		AppName:      "lablink",
		ErrorHandler: errorHandler(zl),
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(fiberlogger.New())

	apiV1 := fiberApp.Group("/api/v1")
	handlers.NewCatalogHandler(catalog).RegisterRoutes(apiV1)
	handlers.NewCartHandler(store, catalog).RegisterRoutes(apiV1)
	handlers.NewUserHandler(store).RegisterRoutes(apiV1)
	handlers.NewAuthHandler(auth, registrar, store, zl).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.PartnerRequired(store))
	handlers.NewPatientHandler(store).RegisterRoutes(protected)
	handlers.NewOrderHandler(checkout, store, zl).RegisterRoutes(protected)

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"offline": cfg.Offline(),
			"storage": cfg.StorageDriver,
			"events":  publisher != nil,
		})
	})

	app.Fiber = fiberApp
	app.Store = store
	app.Catalog = catalog
	app.Checkout = checkout
	return app, nil
}

// openStorage picks the snapshot backend. SQL drivers also hold the partner
// directory; otherwise partners live in memory.
func (a *App) openStorage(ctx context.Context, cfg config.Config) (repositories.SnapshotRepository, repositories.PartnerRepository, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite, config.DriverPostgres:
		dialector := sqlite.Open(cfg.DatabaseDSN)
		if cfg.StorageDriver == config.DriverPostgres {
			dialector = postgres.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		if err := db.WithContext(ctx).AutoMigrate(&models.SnapshotRecord{}, &models.Partner{}); err != nil {
			return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
		}
		return repositories.NewGORMSnapshotRepository(db), repositories.NewGORMPartnerRepository(db), nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return repositories.NewRedisSnapshotRepository(client), repositories.NewMockPartnerRepository(), nil

	case config.DriverMemory:
		return repositories.NewMockSnapshotRepository(), repositories.NewMockPartnerRepository(), nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// errorHandler renders unhandled errors, including recovered panics, in the
// same {message, error} shape the handlers use.
func errorHandler(zl *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			zl.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"message": statusMessage(code),
			"error":   err.Error(),
		})
	}
}

func statusMessage(code int) string {
	if msg := http.StatusText(code); msg != "" {
		return msg
	}
	return "Error"
}
