package exec

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/amadeus-go/amadeus/partition"
	"github.com/amadeus-go/amadeus/pool"
	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/sink"
	"github.com/amadeus-go/amadeus/stream"
	"github.com/amadeus-go/amadeus/task"
	"github.com/amadeus-go/amadeus/telemetry"
	"github.com/amadeus-go/amadeus/wire"
)

// Decomposition is the Go rendering of spec's four-artifact
// DistributedSink breakdown: `(Pipe[T, T], Factory[T, A], Factory[A, B],
// Reducer[B, O])`. Pipe may be nil (identity: no pre-transform).
type Decomposition[T, A, B, O any] struct {
	Pipe           task.Pipe[T, T]
	LeafFactory    reducer.Factory[T, A]
	CombineFactory reducer.Factory[A, B]
	Driver         reducer.Reducer[B, O]
}

// Options configures Reduce's two-tier parallelism and the wire codec
// applied at the process/driver boundary.
type Options[B any] struct {
	Processes int
	Threads   int
	// Codec, if non-nil, round-trips each process-tier reducer's output
	// (B) through a wire encode/decode before the driver tier consumes
	// it — the one real wire hop spec calls for (process -> driver). A
	// nil Codec skips the round-trip entirely, appropriate for this
	// reference in-process pool where no real process boundary exists.
	Codec wire.Codec[B]
}

// Reduce runs spec §4.5's three-stage procedure over ds:
//  1. process-partition: ds is balanced into Options.Processes bins.
//  2. process-dispatch: each bin is spawned on a ProcessPool; inside,
//     it is itself balanced into Options.Threads bins and spawned on a
//     fresh ThreadPool (thread-partition-and-reduce), each thread
//     folding its tasks through dec.LeafFactory into an A, and the
//     process combining its threads' A values into a B via
//     dec.CombineFactory.
//  3. driver-aggregate: every process's B (optionally wire round-tripped)
//     is folded by dec.Driver into the final O.
func Reduce[T, A, B, O any](ctx context.Context, ds stream.DistributedStream[T], dec Decomposition[T, A, B, O], pp pool.ProcessPool, opts Options[B]) (O, error) {
	var zero O
	processes := opts.Processes
	if processes < 1 {
		processes = 1
	}
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	processBins, err := partition.Balance[T](ctx, ds, processes)
	if err != nil {
		return zero, fmt.Errorf("exec: process partition: %w", err)
	}

	awaiters := make([]pool.TypedAwaiter[B], 0, len(processBins))
	for _, bin := range processBins {
		if len(bin) == 0 {
			continue
		}
		bin := bin
		awaiters = append(awaiters, pool.SpawnTyped(pp, func(ctx context.Context) (B, error) {
			return runProcessTier(ctx, bin, dec, threads)
		}))
	}

	outputs := make([]B, 0, len(awaiters))
	for _, aw := range awaiters {
		b, err := aw.Join(ctx)
		if err != nil {
			return zero, fmt.Errorf("exec: process tier: %w", err)
		}
		if opts.Codec != nil {
			blob, err := opts.Codec.Encode(b)
			if err != nil {
				return zero, fmt.Errorf("exec: wire encode: %w", err)
			}
			b, err = opts.Codec.Decode(blob)
			if err != nil {
				return zero, fmt.Errorf("exec: wire decode: %w", err)
			}
		}
		outputs = append(outputs, b)
	}

	telemetry.Log().Debug().Int("processes", len(outputs)).Msg("exec: driver aggregate")
	return reducer.Run[B, O](ctx, dec.Driver, sink.Slice(outputs))
}

// runProcessTier performs thread-partition-and-reduce for one process's
// share of tasks, then folds the resulting A values into a single B
// with a fresh thread pool scoped to this process, matching the "its own
// nested ThreadPool" isolation model documented on pool.ProcessPool.
func runProcessTier[T, A, B, O any](ctx context.Context, bin []task.Stream[T], dec Decomposition[T, A, B, O], threads int) (B, error) {
	var zero B
	threadBins, err := partition.Balance[T](ctx, &taskListSource[T]{tasks: bin}, threads)
	if err != nil {
		return zero, fmt.Errorf("thread partition: %w", err)
	}

	tp := pool.NewThreadPool(threads)
	g, gctx := errgroup.WithContext(ctx)
	results := make([]A, 0, len(threadBins))
	var mu sync.Mutex

	for _, tbin := range threadBins {
		if len(tbin) == 0 {
			continue
		}
		tbin := tbin
		aw := pool.SpawnTyped(tp, func(ctx context.Context) (A, error) {
			return runLeafTier(ctx, tbin, dec.Pipe, dec.LeafFactory)
		})
		g.Go(func() error {
			a, err := aw.Join(gctx)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, a)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, fmt.Errorf("leaf tier: %w", err)
	}

	return reducer.Run[A, B](ctx, dec.CombineFactory.Make(), sink.Slice(results))
}

// runLeafTier folds one thread's share of tasks, optionally passed
// through the pre-transform pipe, into a single A via leaf.
func runLeafTier[T, A any](ctx context.Context, bin []task.Stream[T], pipe task.Pipe[T, T], leaf reducer.Factory[T, A]) (A, error) {
	var zero A
	src := sink.Pump[T](ctx, func(ctx context.Context, out sink.Sink[T]) error {
		for _, st := range bin {
			async := st.IntoAsync()
			taskSrc := sink.Pump[T](ctx, func(ctx context.Context, o sink.Sink[T]) error {
				return async.Run(ctx, o)
			})
			var err error
			if pipe != nil {
				err = pipe.IntoAsync().Run(ctx, taskSrc, out)
			} else {
				err = out.Forward(ctx, taskSrc)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	out, err := reducer.Run[T, A](ctx, leaf.Make(), src)
	if err != nil {
		return zero, err
	}
	return out, nil
}

// taskListSource adapts an already-materialized slice of tasks to
// partition.Source, so a process's share of tasks can be re-balanced
// across its own threads with the same Balance algorithm used at the
// top level.
type taskListSource[T any] struct {
	tasks []task.Stream[T]
	i     int
}

func (s *taskListSource[T]) SizeHint() (int, int, bool) {
	remaining := len(s.tasks) - s.i
	return remaining, remaining, true
}

func (s *taskListSource[T]) NextTask() (task.Stream[T], bool) {
	if s.i >= len(s.tasks) {
		return nil, false
	}
	t := s.tasks[s.i]
	s.i++
	return t, true
}
