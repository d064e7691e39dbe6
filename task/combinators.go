package task

import (
	"context"

	"github.com/amadeus-go/amadeus/sink"
)

// Map wraps a Stream[I] so that every item it produces is transformed by
// f before reaching whatever sink eventually drains the task. Mirrors
// the teacher's pattern of wrapping TaskProcessor with one extra stage
// (internal/stream/task_pool.go's layered encryptionPipeline), generalized
// from a fixed byte transform to an arbitrary f.
func Map[I, O any](inner Stream[I], f func(I) O) Stream[O] {
	return mapStream[I, O]{inner: inner, f: f}
}

type mapStream[I, O any] struct {
	inner Stream[I]
	f     func(I) O
}

func (m mapStream[I, O]) SizeHint() (int, int, bool) { return m.inner.SizeHint() }

func (m mapStream[I, O]) IntoAsync() StreamAsync[O] {
	return mapStreamAsync[I, O]{inner: m.inner.IntoAsync(), f: m.f}
}

type mapStreamAsync[I, O any] struct {
	inner StreamAsync[I]
	f     func(I) O
}

func (a mapStreamAsync[I, O]) Run(ctx context.Context, out sink.Sink[O]) error {
	return a.inner.Run(ctx, sink.Map(a.f, out))
}

// Filter wraps a Stream[T] so that only items for which pred returns true
// reach the downstream sink. pred receives ctx so it may itself suspend,
// matching spec's requirement that a filter predicate be async.
func Filter[T any](inner Stream[T], pred func(context.Context, T) (bool, error)) Stream[T] {
	return filterStream[T]{inner: inner, pred: pred}
}

type filterStream[T any] struct {
	inner Stream[T]
	pred  func(context.Context, T) (bool, error)
}

// SizeHint's lower bound drops to 0: filtering may discard everything the
// inner task would have produced, and the spec requires the bound never
// overestimate.
func (f filterStream[T]) SizeHint() (int, int, bool) {
	_, upper, upperKnown := f.inner.SizeHint()
	return 0, upper, upperKnown
}

func (f filterStream[T]) IntoAsync() StreamAsync[T] {
	return filterStreamAsync[T]{inner: f.inner.IntoAsync(), pred: f.pred}
}

type filterStreamAsync[T any] struct {
	inner StreamAsync[T]
	pred  func(context.Context, T) (bool, error)
}

func (a filterStreamAsync[T]) Run(ctx context.Context, out sink.Sink[T]) error {
	return a.inner.Run(ctx, sink.Filter(a.pred, out))
}

// FlatMap wraps a Stream[T] so every item expands into zero or more items
// of U before reaching the downstream sink.
func FlatMap[T, U any](inner Stream[T], f func(T) []U) Stream[U] {
	return flatMapStream[T, U]{inner: inner, f: f}
}

type flatMapStream[T, U any] struct {
	inner Stream[T]
	f     func(T) []U
}

// SizeHint is always unknown: a flat-mapped item can expand to any number
// of outputs, including zero, so the inner stream's size carries no bound
// on the output size.
func (m flatMapStream[T, U]) SizeHint() (int, int, bool) {
	return 0, 0, false
}

func (m flatMapStream[T, U]) IntoAsync() StreamAsync[U] {
	return flatMapStreamAsync[T, U]{inner: m.inner.IntoAsync(), f: m.f}
}

type flatMapStreamAsync[T, U any] struct {
	inner StreamAsync[T]
	f     func(T) []U
}

func (a flatMapStreamAsync[T, U]) Run(ctx context.Context, out sink.Sink[U]) error {
	return a.inner.Run(ctx, sink.FlatMap(a.f, out))
}

// Inspect wraps a Stream[T] calling f on each item as it passes through,
// without altering the sequence.
func Inspect[T any](inner Stream[T], f func(T)) Stream[T] {
	return inspectStream[T]{inner: inner, f: f}
}

type inspectStream[T any] struct {
	inner Stream[T]
	f     func(T)
}

func (s inspectStream[T]) SizeHint() (int, int, bool) { return s.inner.SizeHint() }

func (s inspectStream[T]) IntoAsync() StreamAsync[T] {
	return inspectStreamAsync[T]{inner: s.inner.IntoAsync(), f: s.f}
}

type inspectStreamAsync[T any] struct {
	inner StreamAsync[T]
	f     func(T)
}

func (a inspectStreamAsync[T]) Run(ctx context.Context, out sink.Sink[T]) error {
	return a.inner.Run(ctx, sink.Inspect(a.f, out))
}

// Update wraps a Stream[T] mutating each item in place via f before it
// reaches the downstream sink.
func Update[T any](inner Stream[T], f func(*T)) Stream[T] {
	return Map(inner, func(t T) T { f(&t); return t })
}

// Cloned dereferences a Stream of pointers into a Stream of values.
func Cloned[T any](inner Stream[*T]) Stream[T] {
	return Map(inner, func(p *T) T {
		if p == nil {
			var zero T
			return zero
		}
		return *p
	})
}
