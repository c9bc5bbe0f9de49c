package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	seen := make([]int, 0)
	done := make(chan struct{}, 3)

	q := NewQueue[int]("test", func(_ context.Context, n int) error {
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for i := 1; i <= 3; i++ {
		require.NoError(t, q.Offer(i))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []int{1, 2, 3}, seen)
}

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue[string]("idle", func(context.Context, string) error { return nil }, QueueConfig{})
	assert.Error(t, q.Offer("x"))
}

func TestQueueFullDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	q := NewQueue[int]("slow", func(context.Context, int) error {
		<-release
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())

	require.NoError(t, q.Offer(1))
	var err error
	for i := 0; i < 10 && err == nil; i++ {
		err = q.Offer(i)
	}
	assert.True(t, errors.Is(err, ErrQueueFull))

	close(release)
	q.Stop()
}

func TestQueueStopDrainsBuffer(t *testing.T) {
	var mu sync.Mutex
	count := 0
	block := make(chan struct{})
	q := NewQueue[int]("drain", func(_ context.Context, n int) error {
		if n == 0 {
			<-block
		}
		mu.Lock()
		count++
		mu.Unlock()
		return errors.New("ignored")
	}, QueueConfig{Workers: 1, BufferSize: 4})
	q.Start(context.Background())

	require.NoError(t, q.Offer(0))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Offer(1))
	require.NoError(t, q.Offer(2))

	close(block)
	q.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, count)
}
