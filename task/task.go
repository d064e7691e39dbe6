// Package task defines the serializable per-partition work units from
// spec §3/§4.2: StreamTask and PipeTask. Each converts to an async form
// that is driven to completion against a sink. Grounded on the teacher's
// TaskProcessor (internal/stream/task_pool.go): there, a Task carried a
// byte payload and an Index and was processed by a single Process call;
// here a Task carries (or produces) a whole sub-sequence of items, and
// "processing" means draining that sub-sequence into a Sink.
package task

import (
	"context"

	"github.com/amadeus-go/amadeus/sink"
)

// Stream is a seed for one partition's worth of source items. Cloning a
// Stream at the factory level is a plain Go value copy (or a method that
// returns a fresh value); once converted with IntoAsync and run, a task
// is considered consumed and must not be reused.
type Stream[T any] interface {
	// SizeHint reports a lower bound and, if known, an upper bound on the
	// number of items this task will still produce. The lower bound must
	// never overestimate.
	SizeHint() (lower int, upper int, upperKnown bool)
	IntoAsync() StreamAsync[T]
}

// StreamAsync drives this task's items into out until exhausted.
type StreamAsync[T any] interface {
	Run(ctx context.Context, out sink.Sink[T]) error
}

// Pipe is a transform unit parameterized by input item type I and output
// item type O. A DistributedPipe's Task() factory yields fresh Pipe
// values on demand (pipes may be instantiated many times: once per
// partition, at each tier).
type Pipe[I, O any] interface {
	IntoAsync() PipeAsync[I, O]
}

// PipeAsync reads from in, transforms, and writes to out. Conceptually a
// sink-to-sink adapter: it turns an upstream Sink[O] into a Sink[I] by
// running the transform in between.
type PipeAsync[I, O any] interface {
	Run(ctx context.Context, in sink.Source[I], out sink.Sink[O]) error
}

// StreamFunc adapts two plain values to a Stream.
type StreamFunc[T any] struct {
	Hint func() (int, int, bool)
	New  func() StreamAsync[T]
}

func (s StreamFunc[T]) SizeHint() (int, int, bool)  { return s.Hint() }
func (s StreamFunc[T]) IntoAsync() StreamAsync[T]   { return s.New() }

// FromSource builds a one-shot Stream task around an already-materialized
// sink.Source, with a fixed size hint. This is how the built-in
// in-memory sources (package source) and tests manufacture tasks.
func FromSource[T any](src sink.Source[T], lower, upper int, upperKnown bool) Stream[T] {
	return StreamFunc[T]{
		Hint: func() (int, int, bool) { return lower, upper, upperKnown },
		New: func() StreamAsync[T] {
			return streamAsyncFromSource[T]{src: src}
		},
	}
}

type streamAsyncFromSource[T any] struct{ src sink.Source[T] }

func (a streamAsyncFromSource[T]) Run(ctx context.Context, out sink.Sink[T]) error {
	return out.Forward(ctx, a.src)
}
