package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesBufferedJobsBeforeStop(t *testing.T) {
	var processed int32
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&processed, 1)
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(Job{Type: "noop"}))
	}
	q.Stop()

	assert.Equal(t, int32(5), atomic.LoadInt32(&processed))
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts int32
	done := make(chan struct{})
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "flaky"}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestQueueRejectsWhenStoppedOrFull(t *testing.T) {
	block := make(chan struct{})
	q := NewQueue("full", func(ctx context.Context, job Job) error {
		<-block
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})

	assert.ErrorIs(t, q.Enqueue(Job{}), ErrQueueStopped)

	q.Start(context.Background())
	require.NoError(t, q.Enqueue(Job{}))
	require.Eventually(t, func() bool { return len(q.jobs) == 0 }, time.Second, time.Millisecond)
	require.NoError(t, q.Enqueue(Job{}))
	assert.ErrorIs(t, q.Enqueue(Job{}), ErrQueueFull)

	close(block)
	q.Stop()
}

func TestQueueDrainsWithLiveContextAfterParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	started := make(chan struct{}, 1)
	release := make(chan struct{})

	var mu sync.Mutex
	var seen []error
	q := NewQueue("drain", func(ctx context.Context, job Job) error {
		if job.Type == "slow" {
			started <- struct{}{}
			<-release
		}
		mu.Lock()
		seen = append(seen, ctx.Err())
		mu.Unlock()
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(parent)

	require.NoError(t, q.Enqueue(Job{Type: "slow"}))
	<-started
	require.NoError(t, q.Enqueue(Job{Type: "buffered"}))

	cancelParent()
	close(release)
	q.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []error{nil, nil}, seen)
}
