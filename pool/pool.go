// Package pool implements spec §6's external spawn interfaces: a
// ThreadPool spawning lightweight same-process tasks and a ProcessPool
// spawning isolated units of work. Go interfaces cannot carry generic
// methods, so Spawn here takes and returns any; SpawnTyped below layers
// compile-time type safety back on top, the same split the teacher's
// own worker pools make between an untyped Task/TaskResult channel
// protocol (internal/streaming/worker_pool.go) and typed callers.
package pool

import (
	"context"
	"runtime"

	"github.com/amadeus-go/amadeus/internal/amaerrors"
	"github.com/amadeus-go/amadeus/telemetry"
	"golang.org/x/sync/semaphore"
)

// Awaiter is the handle returned by Spawn, the Go rendering of spec's
// JoinFuture<T>.
type Awaiter interface {
	// Join blocks until the spawned task completes, returning its
	// result or the error it failed with (including a panic captured
	// as amaerrors.ErrTaskPanicked).
	Join(ctx context.Context) (any, error)
}

// ThreadPool spawns work that runs in the current process, sharing
// memory with the caller — spec's thread tier.
type ThreadPool interface {
	Spawn(fn func(ctx context.Context) (any, error)) Awaiter
	// Parallelism reports how many tasks this pool runs concurrently.
	Parallelism() int
}

// ProcessPool spawns work conceptually isolated from the caller — spec's
// process tier. This in-process reference implementation models
// isolation with goroutines rather than real OS processes; real
// deployments would substitute a pool backed by subprocesses or remote
// workers behind the same interface.
type ProcessPool interface {
	Spawn(fn func(ctx context.Context) (any, error)) Awaiter
	Parallelism() int
}

type awaiter struct {
	done chan struct{}
	val  any
	err  error
}

func newAwaiter() *awaiter {
	return &awaiter{done: make(chan struct{})}
}

func (a *awaiter) finish(val any, err error) {
	a.val, a.err = val, err
	close(a.done)
}

func (a *awaiter) Join(ctx context.Context) (any, error) {
	select {
	case <-a.done:
		return a.val, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// semaphorePool is the shared implementation backing both ThreadPool
// and ProcessPool: a weighted semaphore bounding concurrency, modeled
// on the teacher's fixed-size worker pool (internal/streaming/pool.go)
// but spawn-based instead of channel-based, since exec needs to spawn
// tasks one at a time as partitions are discovered rather than
// enqueueing a precomputed batch.
type semaphorePool struct {
	sem         *semaphore.Weighted
	parallelism int
}

func newSemaphorePool(parallelism int) *semaphorePool {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	return &semaphorePool{sem: semaphore.NewWeighted(int64(parallelism)), parallelism: parallelism}
}

func (p *semaphorePool) Parallelism() int { return p.parallelism }

func (p *semaphorePool) spawn(fn func(ctx context.Context) (any, error)) Awaiter {
	aw := newAwaiter()
	go func() {
		ctx := context.Background()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			aw.finish(nil, err)
			return
		}
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				err := amaerrors.Panic(r)
				telemetry.Log().Error().Err(err).Msg("pool task panicked")
				aw.finish(nil, err)
			}
		}()
		val, err := fn(ctx)
		if err != nil {
			telemetry.Log().Debug().Err(err).Msg("pool task returned error")
		}
		aw.finish(val, err)
	}()
	return aw
}

type threadPool struct{ *semaphorePool }

// NewThreadPool returns a reference ThreadPool bounding concurrent
// spawns to parallelism (GOMAXPROCS if <= 0).
func NewThreadPool(parallelism int) ThreadPool {
	return threadPool{newSemaphorePool(parallelism)}
}

func (p threadPool) Spawn(fn func(ctx context.Context) (any, error)) Awaiter {
	return p.spawn(fn)
}

type processPool struct{ *semaphorePool }

// NewProcessPool returns a reference ProcessPool bounding concurrent
// spawns to parallelism (GOMAXPROCS if <= 0). See ProcessPool's doc
// comment: isolation here is goroutine-level, not OS-process-level.
func NewProcessPool(parallelism int) ProcessPool {
	return processPool{newSemaphorePool(parallelism)}
}

func (p processPool) Spawn(fn func(ctx context.Context) (any, error)) Awaiter {
	return p.spawn(fn)
}

// TypedAwaiter wraps an Awaiter, asserting its result to T — the
// generic-method workaround SpawnTyped relies on.
type TypedAwaiter[T any] struct {
	inner Awaiter
}

func (a TypedAwaiter[T]) Join(ctx context.Context) (T, error) {
	v, err := a.inner.Join(ctx)
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

// spawner is satisfied by both ThreadPool and ProcessPool.
type spawner interface {
	Spawn(fn func(ctx context.Context) (any, error)) Awaiter
}

// SpawnTyped spawns a typed task on any spawner (ThreadPool or
// ProcessPool), recovering Go's inability to put a generic method on
// the pool interfaces themselves.
func SpawnTyped[T any](p spawner, fn func(ctx context.Context) (T, error)) TypedAwaiter[T] {
	aw := p.Spawn(func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	return TypedAwaiter[T]{inner: aw}
}
