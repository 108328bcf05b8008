package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	mu    sync.Mutex
	calls int
	idle  []time.Duration
	swept chan struct{}
}

func (s *countingSweeper) CleanupIdleSessions(maxIdle time.Duration) int {
	s.mu.Lock()
	s.calls++
	s.idle = append(s.idle, maxIdle)
	s.mu.Unlock()

	select {
	case s.swept <- struct{}{}:
	default:
	}
	return 1
}

func TestWorkerSweepsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{swept: make(chan struct{}, 8)}
	w := NewWorker(sweeper, 30*time.Minute, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := w.Start(ctx)

	for i := 0; i < 3; i++ {
		select {
		case <-sweeper.swept:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not sweep in time")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	sweeper.mu.Lock()
	defer sweeper.mu.Unlock()
	require.GreaterOrEqual(t, sweeper.calls, 3)
	for _, d := range sweeper.idle {
		assert.Equal(t, 30*time.Minute, d)
	}
}
