package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/arts-admin-api/pkg/jobs"
)

func TestImageCleanerRemovesScheduledKeys(t *testing.T) {
	store := newMemoryStore()
	_, err := store.Save(context.Background(), "uploads/events/a.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	cleaner := NewImageCleaner(store, NewMetricsService(), jobs.QueueConfig{Workers: 1, BufferSize: 4, RetryDelay: time.Millisecond})
	cleaner.Start(context.Background())
	cleaner.ScheduleRemoval("uploads/events/a.jpg")
	cleaner.ScheduleRemoval("")

	assert.Eventually(t, func() bool { return !store.has("uploads/events/a.jpg") }, time.Second, 5*time.Millisecond)
	cleaner.Stop()
}

func TestImageCleanerScheduleBeforeStartIsDropped(t *testing.T) {
	cleaner := NewImageCleaner(newMemoryStore(), nil, jobs.QueueConfig{Workers: 1})
	cleaner.ScheduleRemoval("uploads/events/b.jpg")
}
