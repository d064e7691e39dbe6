// Package amadeus is the public facade over the engine's packages: a
// small surface re-exporting the builder entry points (sources, stream
// combinators, terminal operations, and the top-level Reduce runners)
// so a caller can build a pipeline against one import instead
// of five.
package amadeus

import (
	"context"

	"github.com/amadeus-go/amadeus/exec"
	"github.com/amadeus-go/amadeus/pool"
	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/source"
	"github.com/amadeus-go/amadeus/stream"
	"github.com/amadeus-go/amadeus/task"
	"github.com/amadeus-go/amadeus/wire"
)

// Stream re-exports stream.DistributedStream for callers who only need
// the facade import.
type Stream[T any] = stream.DistributedStream[T]

// FromSlice builds a single-task Stream seeded from xs.
func FromSlice[T any](xs []T) Stream[T] { return source.Slice(xs) }

// Chunked builds a Stream seeded from xs, split into up to numTasks
// roughly-equal tasks so a Reduce/Count/Sum/Collect call over it can
// actually spread across more than one process or thread.
func Chunked[T any](xs []T, numTasks int) Stream[T] { return source.Chunked(xs, numTasks) }

// Runner bundles the two pools a pipeline needs and the degree of
// parallelism to request at each tier, the facade's stand-in for
// spec's top-level driver/executor handle.
type Runner struct {
	Processes   pool.ProcessPool
	NumProcesses int
	NumThreads   int
}

// NewRunner builds a Runner with reference in-process pools sized to
// numProcesses x numThreads total workers.
func NewRunner(numProcesses, numThreads int) *Runner {
	if numProcesses < 1 {
		numProcesses = 1
	}
	if numThreads < 1 {
		numThreads = 1
	}
	return &Runner{
		Processes:    pool.NewProcessPool(numProcesses),
		NumProcesses: numProcesses,
		NumThreads:   numThreads,
	}
}

// Decomposition builds an exec.Decomposition from a bare three-reducer
// set (as returned by every reducer package constructor), with no
// pre-transform pipe — the common case for terminal operations composed
// directly onto a Stream.
func Decomposition[T, A, B, O any](leaf reducer.Factory[T, A], combine reducer.Factory[A, B], driver reducer.Reducer[B, O]) exec.Decomposition[T, A, B, O] {
	return exec.Decomposition[T, A, B, O]{LeafFactory: leaf, CombineFactory: combine, Driver: driver}
}

// Reduce runs dec over s using r's configured parallelism, with no wire
// round-trip at the process/driver boundary.
func Reduce[T, A, B, O any](ctx context.Context, r *Runner, s Stream[T], dec exec.Decomposition[T, A, B, O]) (O, error) {
	return exec.Reduce[T, A, B, O](ctx, s, dec, r.Processes, exec.Options[B]{
		Processes: r.NumProcesses,
		Threads:   r.NumThreads,
	})
}

// ReduceWithCodec is Reduce, additionally round-tripping each process
// tier's output through codec before the driver tier consumes it.
func ReduceWithCodec[T, A, B, O any](ctx context.Context, r *Runner, s Stream[T], dec exec.Decomposition[T, A, B, O], codec wire.Codec[B]) (O, error) {
	return exec.Reduce[T, A, B, O](ctx, s, dec, r.Processes, exec.Options[B]{
		Processes: r.NumProcesses,
		Threads:   r.NumThreads,
		Codec:     codec,
	})
}

// Count runs spec's count() over s.
func Count[T any](ctx context.Context, r *Runner, s Stream[T]) (int64, error) {
	leaf, combine, driver := reducer.Count[T]()
	return Reduce[T, int64, int64, int64](ctx, r, s, exec.Decomposition[T, int64, int64, int64]{
		LeafFactory: leaf, CombineFactory: combine, Driver: driver,
	})
}

// Sum runs spec's sum::<S>() over s.
func Sum[T reducer.Number](ctx context.Context, r *Runner, s Stream[T]) (T, error) {
	leaf, combine, driver := reducer.Sum[T]()
	return Reduce[T, T, T, T](ctx, r, s, exec.Decomposition[T, T, T, T]{
		LeafFactory: leaf, CombineFactory: combine, Driver: driver,
	})
}

// Collect runs spec's collect::<Vec<_>>() over s.
func Collect[T any](ctx context.Context, r *Runner, s Stream[T]) ([]T, error) {
	leaf, combine, driver := reducer.CollectSlice[T]()
	return Reduce[T, []T, []T, []T](ctx, r, s, exec.Decomposition[T, []T, []T, []T]{
		LeafFactory: leaf, CombineFactory: combine, Driver: driver,
	})
}

// Map re-exports stream.Map for the facade.
func Map[T, U any](s Stream[T], f func(T) U) Stream[U] { return stream.Map(s, f) }

// Filter re-exports stream.Filter for the facade.
func Filter[T any](s Stream[T], pred func(context.Context, T) (bool, error)) Stream[T] {
	return stream.Filter(s, pred)
}

// Identity re-exports task.Identity for the facade.
func Identity[T any]() task.Pipe[T, T] { return task.Identity[T]() }
