package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storefrontserver "github.com/rawatr0788-code/Gamerz-Kit/go"
	blobclient "github.com/rawatr0788-code/Gamerz-Kit/internal/clients/http/blob"

	catalogmemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application"
	catalogports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/ports"

	identitymemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/memory"
	identityobs "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/observability"
	identitypostgres "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/persistence/postgres"
	identityredis "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/redis"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/token"
	identityapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/application"
	identityports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"

	ordermemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/adapters/memory"
	orderobs "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application"
	orderports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"

	uploadblob "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/external/blob"
	uploadmemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/memory"
	uploadredis "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/redis"
	uploadworkflows "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/workflows"
	uploadapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/application"
	uploadports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"

	platformkafka "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/kafka"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/platform/migrations"
	platformobservability "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/observability"
	platformpostgres "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/postgres"
	platformredis "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/redis"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

const serviceName = "storefront-api"

// Run boots the storefront HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("schema migration failed, falling back to in-memory repositories", slog.String("error", err.Error()))
			db = nil
		}
	}
	rdb, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer cleanupRedis()

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	intents := buildIntentStore(rdb)
	blobs, err := buildBlobStore(cfg, logger)
	if err != nil {
		return err
	}
	uploadOpts := []uploadapp.Option{uploadapp.WithLogger(logger)}
	if intents != nil {
		uploadOpts = append(uploadOpts, uploadapp.WithIntentStore(intents))
	}
	coordinator := uploadapp.NewCoordinator(blobs, uploadOpts...)

	gate := authz.NewGate(cfg.AdminEmail)

	issuer, err := token.NewIssuer(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to configure token issuer: %w", err)
	}
	identityService := identityobs.New(
		identityapp.NewService(
			buildAccountRepository(db),
			buildSessionStore(db, rdb),
			issuer,
			identityapp.WithSessionTTL(cfg.SessionTTL),
		),
		identityobs.WithLogger(logger),
		identityobs.WithTracer(instruments.Tracer("internal.identity.application")),
		identityobs.WithMeter(instruments.Meter("internal.identity.application")),
	)

	catalogService := catalogobs.New(
		catalogapp.NewService(buildProductRepository(db), coordinator, gate, catalogapp.WithPublisher(publisher)),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	orderService := orderobs.New(
		orderapp.NewService(buildOrderRepository(db), catalogService, coordinator, gate,
			orderapp.WithPublisher(publisher),
			orderapp.WithLogger(logger),
			orderapp.WithIdempotencyStore(buildIdempotencyStore(db)),
		),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var uploadWorkflows uploadports.WorkflowOrchestrator
	if intents != nil {
		uploadWorkflows = uploadworkflows.NewInlineUploadWorkflows(coordinator)
		if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
			logger.Warn("Temporal workflows unavailable, reconciling uploads inline", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			uploadWorkflows = uploadworkflows.NewTemporalUploadWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
	}

	handlers := storefrontserver.ApiHandleFunctions{
		AuthAPI:    storefrontserver.NewAuthAPI(identityService, gate, storefrontserver.NewIPRateLimiter(time.Minute, cfg.LoginBurst)),
		ProductAPI: storefrontserver.NewProductAPI(catalogService),
		OrderAPI:   storefrontserver.NewOrderAPI(orderService),
		AdminAPI:   storefrontserver.NewAdminAPI(orderService, gate, uploadWorkflows, cfg.UploadGrace),
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName))
	router := storefrontserver.NewRouterWithGinEngine(engine, handlers)
	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildAccountRepository(db *gorm.DB) identityports.Repository {
	if db == nil {
		return identitymemory.NewRepository()
	}
	return identitypostgres.NewRepository(db)
}

// buildSessionStore prefers Redis, whose key expiry reaps sessions without the purger job.
func buildSessionStore(db *gorm.DB, rdb *goredis.Client) identityports.SessionStore {
	switch {
	case rdb != nil:
		return identityredis.NewSessionStore(rdb)
	case db != nil:
		return identitypostgres.NewSessionStore(db)
	default:
		return identitymemory.NewSessionStore()
	}
}

func buildProductRepository(db *gorm.DB) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db)
}

func buildOrderRepository(db *gorm.DB) orderports.Repository {
	if db == nil {
		return ordermemory.NewRepository()
	}
	return orderpostgres.NewRepository(db)
}

func buildIdempotencyStore(db *gorm.DB) orderports.IdempotencyStore {
	if db == nil {
		return ordermemory.NewIdempotencyStore()
	}
	return orderpostgres.NewIdempotencyStore(db)
}

// buildIntentStore returns nil without Redis, which leaves orphan reconciliation off.
func buildIntentStore(rdb *goredis.Client) uploadports.IntentStore {
	if rdb == nil {
		return nil
	}
	return uploadredis.NewIntentStore(rdb)
}

func buildBlobStore(cfg Config, logger *slog.Logger) (uploadports.BlobStore, error) {
	if cfg.BlobUploadURL == "" {
		logger.Warn("BLOB_UPLOAD_URL not set, keeping uploads in memory under memory://blobs")
		return uploadmemory.NewBlobStore(""), nil
	}
	c, err := blobclient.NewClient(cfg.BlobUploadURL, nil, blobclient.WithFormField(cfg.BlobFormField))
	if err != nil {
		return nil, fmt.Errorf("failed to configure blob client: %w", err)
	}
	return uploadblob.NewStore(c), nil
}

func buildPublisher(cfg Config, logger *slog.Logger) (events.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, domain events are dropped")
		return events.NoopPublisher, func() {}
	}
	publisher, err := platformkafka.NewPublisher(
		platformkafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic),
		serviceName,
		platformkafka.WithLogger(logger),
	)
	if err != nil {
		logger.Warn("failed to configure kafka publisher, domain events are dropped", slog.String("error", err.Error()))
		return events.NoopPublisher, func() {}
	}
	logger.Info("publishing domain events to kafka", slog.String("topic", cfg.KafkaTopic))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to flush kafka publisher", slog.String("error", err.Error()))
		}
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
