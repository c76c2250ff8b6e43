package shardqueue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
)

func TestExecuteWait_Success(t *testing.T) {
	t.Parallel()
	p := NewShardExecutor(Config{Shards: 2, QueueSize: 8})
	defer p.Stop()

	var ran int32
	err := p.ExecuteWait(context.Background(), "movie:1", JobFunc(func(context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	}))
	if err != nil {
		t.Fatalf("ExecuteWait: %v", err)
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("job did not run before ExecuteWait returned")
	}
}

func TestExecuteWait_PropagatesFinalError(t *testing.T) {
	t.Parallel()
	p := NewShardExecutor(Config{Shards: 1, QueueSize: 4, MaxAttempts: 2, BaseBackoff: time.Millisecond})
	defer p.Stop()

	boom := errors.New("boom")
	var attempts int32
	err := p.ExecuteWait(context.Background(), "movie:1", JobFunc(func(context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom after retries, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestExecuteWait_IrrecoverableFailsFast(t *testing.T) {
	t.Parallel()
	p := NewShardExecutor(Config{Shards: 1, QueueSize: 4, MaxAttempts: 5, BaseBackoff: time.Millisecond})
	defer p.Stop()

	var attempts int32
	err := p.ExecuteWait(context.Background(), "movie:1", JobFunc(func(context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return apperrs.NewHTTPError(403, "forbidden", "op")
	}))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("irrecoverable error should not retry, got %d attempts", got)
	}
}

func TestExecuteWait_CallerContextCancel(t *testing.T) {
	t.Parallel()
	p := NewShardExecutor(Config{Shards: 1, QueueSize: 4})
	defer p.Stop()

	gate := make(chan struct{})
	defer close(gate)
	_ = p.Submit(context.Background(), "movie:1", JobFunc(func(context.Context) error {
		<-gate
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.ExecuteWait(ctx, "movie:1", noopJob{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBarrier_FlushesFIFO(t *testing.T) {
	t.Parallel()
	p := NewShardExecutor(Config{Shards: 2, QueueSize: 16})
	defer p.Stop()

	var done int32
	for i := 0; i < 5; i++ {
		_ = p.Submit(context.Background(), "movie:4", JobFunc(func(context.Context) error {
			atomic.AddInt32(&done, 1)
			return nil
		}))
	}
	if err := p.Barrier(context.Background(), "movie:4"); err != nil {
		t.Fatalf("Barrier: %v", err)
	}
	if got := atomic.LoadInt32(&done); got != 5 {
		t.Fatalf("barrier returned before all jobs ran: %d/5", got)
	}
}
