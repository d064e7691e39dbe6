// Package sink implements the pull-based consumer protocol described in
// spec §4.1: a Sink is handed exclusive access to a Source and must drain
// it to completion. It is grounded on the teacher's stream/worker_pool.go
// consume-until-closed loop, generalized from a fixed Task/TaskResult pair
// to an arbitrary item type.
package sink

import "context"

// Sink is a pull-based consumer of a Source[T]. Forward must keep calling
// Source.Next until it returns Done (success) or another error (failure),
// and must only return nil once the source is exhausted and any buffered
// state has been flushed.
type Sink[T any] interface {
	Forward(ctx context.Context, src Source[T]) error
}

// Func adapts a plain function to a Sink.
type Func[T any] func(ctx context.Context, src Source[T]) error

func (f Func[T]) Forward(ctx context.Context, src Source[T]) error { return f(ctx, src) }

// Drain forwards every item from src into a no-op sink, the Go spelling
// of pulling a source to exhaustion without collecting anything.
func Drain[T any](ctx context.Context, src Source[T]) error {
	for {
		_, err := src.Next(ctx)
		if err != nil {
			if err == Done {
				return nil
			}
			return err
		}
	}
}

// Map returns a Sink[T] that applies f to each item before handing the
// mapped sequence to inner. This is the composable SinkMap adapter from
// spec §4.1: given S Sink[U] and f: T -> U, it produces a Sink[T].
func Map[T, U any](f func(T) U, inner Sink[U]) Sink[T] {
	return Func[T](func(ctx context.Context, src Source[T]) error {
		return inner.Forward(ctx, MapSource(src, f))
	})
}

// Filter returns a Sink[T] that only forwards items for which pred
// returns true.
func Filter[T any](pred func(context.Context, T) (bool, error), inner Sink[T]) Sink[T] {
	return Func[T](func(ctx context.Context, src Source[T]) error {
		return inner.Forward(ctx, FilterSource(src, pred))
	})
}

// FlatMap returns a Sink[T] that expands each item into zero or more
// items of U before handing them to inner.
func FlatMap[T, U any](f func(T) []U, inner Sink[U]) Sink[T] {
	return Func[T](func(ctx context.Context, src Source[T]) error {
		return inner.Forward(ctx, FlatMapSource(src, f))
	})
}

// Inspect returns a Sink[T] that calls f on every item as it passes
// through to inner, without altering the sequence.
func Inspect[T any](f func(T), inner Sink[T]) Sink[T] {
	return Func[T](func(ctx context.Context, src Source[T]) error {
		return inner.Forward(ctx, InspectSource(src, f))
	})
}

// Collector accumulates every item it sees into a slice. It is the
// simplest possible Sink.
type Collector[T any] struct {
	Items []T
}

func NewCollector[T any]() *Collector[T] { return &Collector[T]{} }

func (c *Collector[T]) Forward(ctx context.Context, src Source[T]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == Done {
				return nil
			}
			return err
		}
		c.Items = append(c.Items, v)
	}
}
