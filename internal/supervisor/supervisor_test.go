package supervisor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRestartsFailingTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		attempts atomic.Int64
		start    = time.Now()
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		Run(ctx, "failing", 10*time.Millisecond, func(context.Context) error {
			if attempts.Add(1) >= 3 {
				cancel()
			}

			return errors.New("boom")
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop after cancellation")
	}

	// Retried at least twice, each retry separated by the back-off.
	got := attempts.Load()
	require.GreaterOrEqual(t, got, int64(3))
	assert.GreaterOrEqual(t, time.Since(start), time.Duration(got-1)*10*time.Millisecond)
}

func TestRunRecoversPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts atomic.Int64

	done := make(chan struct{})

	go func() {
		defer close(done)

		Run(ctx, "panicking", time.Millisecond, func(context.Context) error {
			if attempts.Add(1) >= 2 {
				cancel()
			}

			panic("kaboom")
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not survive the panic")
	}

	assert.GreaterOrEqual(t, attempts.Load(), int64(2))
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var attempts atomic.Int64

	// With a cancelled context the task body runs at most once and the
	// supervisor returns immediately instead of backing off.
	Run(ctx, "cancelled", time.Hour, func(context.Context) error {
		attempts.Add(1)
		return errors.New("boom")
	})

	assert.LessOrEqual(t, attempts.Load(), int64(1))
}

func TestGroupWaitsForAllTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var running atomic.Int64

	g := NewGroup(time.Millisecond)

	for i := 0; i < 3; i++ {
		g.Go(ctx, "worker", func(ctx context.Context) error {
			running.Add(1)
			<-ctx.Done()

			return ctx.Err()
		})
	}

	require.Eventually(t, func() bool {
		return running.Load() == 3
	}, time.Second, time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("group did not drain after cancellation")
	}
}
