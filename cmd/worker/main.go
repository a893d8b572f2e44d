package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	blobclient "github.com/rawatr0788-code/Gamerz-Kit/internal/clients/http/blob"
	uploadblob "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/external/blob"
	uploadredis "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/redis"
	uploadworkflows "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/workflows"
	uploadapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/application"
	reconcileworkflows "github.com/rawatr0788-code/Gamerz-Kit/internal/durable/temporal/workflows/uploads"
	platformobservability "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/observability"
	platformredis "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/redis"
	uploadactivities "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/temporal/activities/uploads"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	rdb, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer cleanupRedis()
	if rdb == nil {
		logger.Error("worker requires REDIS_ADDR to read upload intents")
		os.Exit(1)
	}
	blobs, err := blobclient.NewClient(os.Getenv("BLOB_UPLOAD_URL"), nil, blobclient.WithFormField(envOrDefault("BLOB_FORM_FIELD", "file")))
	if err != nil {
		logger.Error("failed to configure blob client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	coordinator := uploadapp.NewCoordinator(
		uploadblob.NewStore(blobs),
		uploadapp.WithIntentStore(uploadredis.NewIntentStore(rdb)),
		uploadapp.WithLogger(logger),
	)
	reconcileActivities := uploadactivities.NewActivities(coordinator)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, reconcileworkflows.OrphanReconcileTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(reconcileworkflows.OrphanReconcileWorkflow, workflow.RegisterOptions{Name: reconcileworkflows.OrphanReconcileWorkflowName})
	w.RegisterActivityWithOptions(reconcileActivities.ReconcileOrphans, activity.RegisterOptions{Name: uploadactivities.ReconcileOrphansActivityName})

	cron := envOrDefault("UPLOAD_RECONCILE_CRON", "*/30 * * * *")
	grace := graceFromEnv()
	if err := uploadworkflows.NewTemporalUploadWorkflows(temporalClient).ScheduleOrphanReconcile(ctx, cron, grace); err != nil {
		logger.Warn("failed to schedule orphan reconcile", slog.String("error", err.Error()))
	} else {
		logger.Info("orphan reconcile scheduled", slog.String("cron", cron), slog.String("grace", grace.String()))
	}

	logger.Info("worker listening", slog.String("taskQueue", reconcileworkflows.OrphanReconcileTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func graceFromEnv() time.Duration {
	minutes, err := strconv.Atoi(strings.TrimSpace(os.Getenv("UPLOAD_GRACE_MINUTES")))
	if err != nil || minutes <= 0 {
		return time.Hour
	}
	return time.Duration(minutes) * time.Minute
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
