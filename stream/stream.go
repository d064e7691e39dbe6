// Package stream implements the lazy builders from spec §4.3:
// DistributedStream and DistributedPipe. No work happens until a
// terminal sink is invoked; combinators only compose types. Grounded on
// the teacher's Pipeline type (stream/pipeline.go), which likewise
// separates "describe the stages" (NewPipeline) from "run them"
// (Process) — here that separation is pushed one level further, into a
// fully lazy builder chain.
package stream

import (
	"context"

	"github.com/amadeus-go/amadeus/sink"
	"github.com/amadeus-go/amadeus/task"
)

// DistributedStream is a lazy, partitionable source of T. SizeHint and
// NextTask are the Go rendering of spec's size_hint()/next_task(): once
// NextTask returns ok=false, every subsequent call must also return
// ok=false.
type DistributedStream[T any] interface {
	SizeHint() (lower int, upper int, upperKnown bool)
	NextTask() (task.Stream[T], bool)
}

// DistributedPipe is a factory of fresh transform units: pipes may be
// instantiated many times, once per partition at each tier, so Task must
// return an independently runnable Pipe every time it is called.
type DistributedPipe[I, O any] interface {
	Task() task.Pipe[I, O]
}

// FromSlice builds a single-task DistributedStream seeded from xs. This
// is the simplest connector adaptor and stands in for the out-of-scope
// Parquet/CSV/Postgres connectors in tests and examples.
func FromSlice[T any](xs []T) DistributedStream[T] {
	return &sliceDistStream[T]{xs: xs}
}

type sliceDistStream[T any] struct {
	xs   []T
	done bool
}

func (s *sliceDistStream[T]) SizeHint() (int, int, bool) {
	if s.done {
		return 0, 0, true
	}
	return len(s.xs), len(s.xs), true
}

func (s *sliceDistStream[T]) NextTask() (task.Stream[T], bool) {
	if s.done {
		return nil, false
	}
	s.done = true
	xs := s.xs
	return task.FromSource(sink.Slice(xs), len(xs), len(xs), true), true
}

// Map produces a type-preserving builder applying f to every item of s.
func Map[T, U any](s DistributedStream[T], f func(T) U) DistributedStream[U] {
	return &mapDistStream[T, U]{inner: s, f: f}
}

type mapDistStream[T, U any] struct {
	inner DistributedStream[T]
	f     func(T) U
}

func (m *mapDistStream[T, U]) SizeHint() (int, int, bool) { return m.inner.SizeHint() }

func (m *mapDistStream[T, U]) NextTask() (task.Stream[U], bool) {
	t, ok := m.inner.NextTask()
	if !ok {
		return nil, false
	}
	return task.Map(t, m.f), true
}

// Filter produces a builder that only keeps items for which pred returns
// true. pred receives ctx, since spec requires a filter predicate to be
// able to suspend mid-decision.
func Filter[T any](s DistributedStream[T], pred func(context.Context, T) (bool, error)) DistributedStream[T] {
	return &filterDistStream[T]{inner: s, pred: pred}
}

type filterDistStream[T any] struct {
	inner DistributedStream[T]
	pred  func(context.Context, T) (bool, error)
}

func (f *filterDistStream[T]) SizeHint() (int, int, bool) {
	_, upper, upperKnown := f.inner.SizeHint()
	return 0, upper, upperKnown
}

func (f *filterDistStream[T]) NextTask() (task.Stream[T], bool) {
	t, ok := f.inner.NextTask()
	if !ok {
		return nil, false
	}
	return task.Filter(t, f.pred), true
}

// FlatMap produces a builder expanding every item into zero or more
// items of U.
func FlatMap[T, U any](s DistributedStream[T], f func(T) []U) DistributedStream[U] {
	return &flatMapDistStream[T, U]{inner: s, f: f}
}

type flatMapDistStream[T, U any] struct {
	inner DistributedStream[T]
	f     func(T) []U
}

func (m *flatMapDistStream[T, U]) SizeHint() (int, int, bool) { return 0, 0, false }

func (m *flatMapDistStream[T, U]) NextTask() (task.Stream[U], bool) {
	t, ok := m.inner.NextTask()
	if !ok {
		return nil, false
	}
	return task.FlatMap(t, m.f), true
}

// Inspect produces a builder calling f on every item as it passes
// through, without altering the sequence.
func Inspect[T any](s DistributedStream[T], f func(T)) DistributedStream[T] {
	return &inspectDistStream[T]{inner: s, f: f}
}

type inspectDistStream[T any] struct {
	inner DistributedStream[T]
	f     func(T)
}

func (s *inspectDistStream[T]) SizeHint() (int, int, bool) { return s.inner.SizeHint() }

func (s *inspectDistStream[T]) NextTask() (task.Stream[T], bool) {
	t, ok := s.inner.NextTask()
	if !ok {
		return nil, false
	}
	return task.Inspect(t, s.f), true
}

// Update produces a builder mutating each item in place via f.
func Update[T any](s DistributedStream[T], f func(*T)) DistributedStream[T] {
	return Map(s, func(t T) T { f(&t); return t })
}

// Chain concatenates a and b: a's tasks are drained before b's, and the
// size hint is the pointwise sum. Matches testable property 6.
func Chain[T any](a, b DistributedStream[T]) DistributedStream[T] {
	return &chainDistStream[T]{a: a, b: b}
}

type chainDistStream[T any] struct {
	a, b     DistributedStream[T]
	aExpired bool
}

func (c *chainDistStream[T]) SizeHint() (int, int, bool) {
	al, au, auk := c.a.SizeHint()
	bl, bu, buk := c.b.SizeHint()
	upperKnown := auk && buk
	upper := 0
	if upperKnown {
		upper = au + bu
	}
	return al + bl, upper, upperKnown
}

func (c *chainDistStream[T]) NextTask() (task.Stream[T], bool) {
	if !c.aExpired {
		if t, ok := c.a.NextTask(); ok {
			return t, true
		}
		c.aExpired = true
	}
	return c.b.NextTask()
}
