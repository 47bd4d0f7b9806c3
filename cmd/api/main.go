package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"sitrack/docs"
	"sitrack/internal/auth"
	"sitrack/internal/cache"
	"sitrack/internal/config"
	"sitrack/internal/database"
	"sitrack/internal/database/migration"
	"sitrack/internal/events"
	handlers "sitrack/internal/http/handler"
	"sitrack/internal/http/middleware"
	"sitrack/internal/logging"
	"sitrack/internal/metrics"
	"sitrack/internal/otel"
	"sitrack/internal/repository/postgres"
	"sitrack/internal/service"
	"sitrack/internal/storage"
)

// @title SiTrack API
// @version 1.0
// @description Correspondence tracking: registration, coordinator and staff workflow, public tracking.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logging.New(os.Stdout, cfg.Location())
	logging.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "tracing_init_failed", err)
	}

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		fatal(log, "database_connect_failed", err)
	}
	defer db.Close()
	if err := database.RegisterStats(prometheus.DefaultRegisterer, db, cfg.Database.Name); err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "database_migration_failed", err)
	}

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		fatal(log, "catalog_load_failed", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		fatal(log, "storage_init_failed", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL())
	if err != nil {
		fatal(log, "token_manager_init_failed", err)
	}

	workflowMetrics, err := metrics.NewWorkflow(prometheus.DefaultRegisterer)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer, "/api/v1/events")
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	// Change events reach SSE clients through the hub. With Redis configured
	// they make a round trip through the channel so every instance sees them.
	hub := events.NewHub(64)
	var (
		publishers    []events.Publisher
		trackingCache service.TrackingCache
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()

		tc := cache.NewTracking(rdb, cfg.Redis.TrackCachePrefix, time.Duration(cfg.Redis.TrackCacheTTLSec)*time.Second)
		trackingCache = tc
		publishers = append(publishers, events.NewRedisPublisher(rdb, cfg.Redis.EventChannel), tc.Evictor())

		sub := events.NewRedisSubscriber(rdb, cfg.Redis.EventChannel, log)
		go func() {
			if err := sub.Run(ctx, hub); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("events_subscriber_stopped", err, map[string]any{"channel": cfg.Redis.EventChannel})
			}
		}()
	} else {
		publishers = append(publishers, hub)
	}
	if cfg.AMQP.URL != "" {
		conn, ch, err := events.DialAMQP(cfg.AMQP.URL)
		if err != nil {
			fatal(log, "amqp_connect_failed", err)
		}
		defer conn.Close()
		defer ch.Close()

		amqpPub, err := events.NewAMQPPublisher(ch, cfg.AMQP.Exchange)
		if err != nil {
			fatal(log, "amqp_init_failed", err)
		}
		publishers = append(publishers, amqpPub)
	}
	pub := events.Multi(publishers...)

	// Initialize repositories and services
	store := postgres.NewStore(db)
	presignExpiry := cfg.MinIO.PresignExpiry()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    20 * 1024 * 1024,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:          db,
		Tokens:      tokens,
		Auth:        service.NewAuthService(store, tokens),
		Users:       service.NewUserService(store, cfg.Auth.EmailDomain, pub, log),
		Reports:     service.NewReportService(store, objStore, catalog, presignExpiry, pub, log),
		Workflow:    service.NewWorkflowService(store, catalog, workflowMetrics, pub, log),
		Attachments: service.NewAttachmentService(objStore, store, presignExpiry, pub, log),
		Tracking:    service.NewTrackingService(store, trackingCache, log),
		Events:      hub,
		Gatherer:    prometheus.DefaultGatherer,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		log.Info("server_shutting_down", nil)

		// Open event streams never finish on their own.
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server_shutdown_failed", err, nil)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("tracing_shutdown_failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", map[string]any{"addr": addr})

	if err := app.Listen(addr); err != nil {
		fatal(log, "server_start_failed", err)
	}
	<-stopped
}

func fatal(log *logging.Logger, msg string, err error) {
	log.Error(msg, err, nil)
	os.Exit(1)
}
