package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
)

const (
	// DefaultMaxParallel caps concurrent uploads inside one UploadAll call.
	DefaultMaxParallel = 4
	// DefaultReconcileBatch caps intents handled per Reconcile call.
	DefaultReconcileBatch = 500
)

// Coordinator uploads files before the owning record is written. Uploads are
// never rolled back; with an IntentStore configured, unreferenced blobs are
// left for Reconcile.
type Coordinator struct {
	blobs       ports.BlobStore
	intents     ports.IntentStore
	clock       clock.Clock
	logger      *slog.Logger
	maxParallel int
	batch       int
}

type Option func(*Coordinator)

// WithIntentStore enables orphan tracking.
func WithIntentStore(store ports.IntentStore) Option {
	return func(c *Coordinator) {
		c.intents = store
	}
}

func WithClock(cl clock.Clock) Option {
	return func(c *Coordinator) {
		if cl != nil {
			c.clock = cl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func WithMaxParallel(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxParallel = n
		}
	}
}

func WithReconcileBatch(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.batch = n
		}
	}
}

func NewCoordinator(blobs ports.BlobStore, opts ...Option) *Coordinator {
	c := &Coordinator{
		blobs:       blobs,
		clock:       clock.NewSystem(),
		maxParallel: DefaultMaxParallel,
		batch:       DefaultReconcileBatch,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Upload stores one file and returns its retrieval URL.
func (c *Coordinator) Upload(ctx context.Context, file domain.File) (string, error) {
	if err := file.Validate(); err != nil {
		return "", apperrors.Validation(err)
	}
	url, err := c.blobs.Put(ctx, file)
	if err != nil {
		return "", apperrors.Upload(fmt.Errorf("%s: %w", file.Name, err))
	}
	c.recordIntent(ctx, url)
	return url, nil
}

// UploadAll uploads files concurrently and returns URLs in input order.
// Any failure fails the whole call; blobs that did upload stay orphaned.
func (c *Coordinator) UploadAll(ctx context.Context, files []domain.File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	for _, file := range files {
		if err := file.Validate(); err != nil {
			return nil, apperrors.Validation(err)
		}
	}
	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxParallel)
	for i, file := range files {
		g.Go(func() error {
			url, err := c.Upload(gctx, file)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logOrphans(ctx, "batch upload failed", urls, err)
		return nil, err
	}
	return urls, nil
}

// Commit marks urls as referenced by a persisted record.
func (c *Coordinator) Commit(ctx context.Context, urls ...string) {
	if c.intents == nil || len(urls) == 0 {
		return
	}
	if err := c.intents.Commit(ctx, urls...); err != nil {
		c.logWarn(ctx, "failed to commit upload intents", slog.Int("count", len(urls)), slog.String("error", err.Error()))
	}
}

// Orphaned is called by owners whose write failed after uploading. The blobs
// stay in place and are logged; their intents remain for Reconcile.
func (c *Coordinator) Orphaned(ctx context.Context, cause error, urls ...string) {
	c.logOrphans(ctx, "record write failed after upload", urls, cause)
}

// Reconcile deletes blobs whose intents are older than grace and never committed.
func (c *Coordinator) Reconcile(ctx context.Context, grace time.Duration) (domain.ReconcileReport, error) {
	var report domain.ReconcileReport
	if c.intents == nil {
		return report, nil
	}
	if grace < 0 {
		return report, apperrors.Validation(errors.New("grace period must not be negative"))
	}
	expired, err := c.intents.Expired(ctx, c.clock.Now().Add(-grace), c.batch)
	if err != nil {
		return report, err
	}
	report.Scanned = len(expired)
	for _, intent := range expired {
		if err := c.blobs.Delete(ctx, intent.URL); err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
			report.Failed = append(report.Failed, intent.URL)
			c.logWarn(ctx, "failed to delete orphaned blob", slog.String("blob.url", intent.URL), slog.String("error", err.Error()))
			continue
		}
		report.Deleted = append(report.Deleted, intent.URL)
	}
	if len(report.Deleted) > 0 {
		if err := c.intents.Commit(ctx, report.Deleted...); err != nil {
			return report, err
		}
	}
	c.logInfo(ctx, "orphaned blobs reconciled",
		slog.Int("scanned", report.Scanned),
		slog.Int("deleted", len(report.Deleted)),
		slog.Int("failed", len(report.Failed)))
	return report, nil
}

func (c *Coordinator) recordIntent(ctx context.Context, url string) {
	if c.intents == nil {
		return
	}
	if err := c.intents.Record(ctx, domain.Intent{URL: url, CreatedAt: c.clock.Now()}); err != nil {
		c.logWarn(ctx, "failed to record upload intent", slog.String("blob.url", url), slog.String("error", err.Error()))
	}
}

func (c *Coordinator) logOrphans(ctx context.Context, msg string, urls []string, cause error) {
	var orphaned []string
	for _, url := range urls {
		if url != "" {
			orphaned = append(orphaned, url)
		}
	}
	if len(orphaned) == 0 {
		return
	}
	attrs := []slog.Attr{slog.Any("blob.urls", orphaned)}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	c.logWarn(ctx, msg, attrs...)
}

func (c *Coordinator) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (c *Coordinator) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

var (
	_ ports.Uploader   = (*Coordinator)(nil)
	_ ports.Reconciler = (*Coordinator)(nil)
)
