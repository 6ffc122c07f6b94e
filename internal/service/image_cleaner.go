package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/pkg/jobs"
	"github.com/noah-isme/arts-admin-api/pkg/storage"
)

const imageCleanupJob = "event_image_cleanup"

// ImageCleaner removes stored event images in the background once their event is gone.
type ImageCleaner struct {
	queue   *jobs.Queue
	store   storage.ObjectStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewImageCleaner builds the cleaner and its worker queue. Call Start before scheduling.
func NewImageCleaner(store storage.ObjectStore, metrics *MetricsService, cfg jobs.QueueConfig) *ImageCleaner {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	c := &ImageCleaner{store: store, metrics: metrics, logger: cfg.Logger}
	c.queue = jobs.NewQueue("image-cleanup", c.handle, cfg)
	return c
}

// Start launches the workers.
func (c *ImageCleaner) Start(ctx context.Context) {
	c.queue.Start(ctx)
}

// Stop drains queued removals and stops the workers.
func (c *ImageCleaner) Stop() {
	c.queue.Stop()
}

// ScheduleRemoval queues key for deletion. Failures are logged and counted, never returned.
func (c *ImageCleaner) ScheduleRemoval(key string) {
	if key == "" {
		return
	}
	err := c.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: imageCleanupJob, Payload: key, Enqueued: time.Now()})
	if err != nil {
		c.metrics.RecordImageCleanup(err)
		c.logger.Warn("image cleanup not scheduled", zap.String("key", key), zap.Error(err))
	}
}

func (c *ImageCleaner) handle(ctx context.Context, job jobs.Job) error {
	key, ok := job.Payload.(string)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	err := c.store.Delete(ctx, key)
	c.metrics.RecordImageCleanup(err)
	if err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	c.logger.Info("event image removed", zap.String("key", key))
	return nil
}
