// Package supervisor keeps long-lived tasks alive. Every loop in the daemon
// (device listeners, dispatcher, cleanup, lights) runs under the same
// restart-on-failure contract: a task's unhandled failure never terminates
// the process, and task-local state is rebuilt from scratch on restart with
// the store as the durable recovery point.
package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Task is a long-running loop. Returning is treated the same as failing:
// the supervisor restarts it after the back-off unless the context is done.
type Task func(ctx context.Context) error

// Run executes task under the restart contract until ctx is cancelled.
// Panics are recovered and logged like returned errors.
func Run(ctx context.Context, name string, backoff time.Duration, task Task) {
	for {
		err := runOnce(ctx, task)

		if ctx.Err() != nil {
			return
		}

		if err != nil {
			log.Error().Err(err).Stack().Str("task", name).Msg("task failed, restarting after back-off")
		} else {
			log.Warn().Str("task", name).Msg("task returned unexpectedly, restarting after back-off")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

func runOnce(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("task panic: %v", r)
		}
	}()

	return task(ctx)
}

// Group launches named tasks with a shared back-off and tracks them for
// shutdown.
type Group struct {
	backoff time.Duration
	wg      sync.WaitGroup
}

// NewGroup returns a Group restarting failed tasks after backoff.
func NewGroup(backoff time.Duration) *Group {
	return &Group{backoff: backoff}
}

// Go launches task under supervision in its own goroutine.
func (g *Group) Go(ctx context.Context, name string, task Task) {
	g.wg.Add(1)

	go func() {
		defer g.wg.Done()

		log.Info().Str("task", name).Msg("starting task")
		Run(ctx, name, g.backoff, task)
		log.Info().Str("task", name).Msg("task stopped")
	}()
}

// Wait blocks until every launched task has observed cancellation and
// returned.
func (g *Group) Wait() {
	g.wg.Wait()
}
