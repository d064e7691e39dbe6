package task

import (
	"context"

	"github.com/amadeus-go/amadeus/sink"
)

// Identity returns a Pipe that forwards every item unchanged, the base
// onto which PipeMap, PipeFilter and PipeFlatMap stages are composed.
func Identity[T any]() Pipe[T, T] {
	return PipeFunc[T, T]{New: func() PipeAsync[T, T] { return identityPipeAsync[T]{} }}
}

type identityPipeAsync[T any] struct{}

func (identityPipeAsync[T]) Run(ctx context.Context, in sink.Source[T], out sink.Sink[T]) error {
	return out.Forward(ctx, in)
}

// PipeFunc adapts a constructor function to a Pipe.
type PipeFunc[I, O any] struct {
	New func() PipeAsync[I, O]
}

func (p PipeFunc[I, O]) IntoAsync() PipeAsync[I, O] { return p.New() }

// PipeMap composes a Pipe[I, O] with f: O -> O2.
func PipeMap[I, O, O2 any](inner Pipe[I, O], f func(O) O2) Pipe[I, O2] {
	return PipeFunc[I, O2]{New: func() PipeAsync[I, O2] {
		return pipeMapAsync[I, O, O2]{inner: inner.IntoAsync(), f: f}
	}}
}

type pipeMapAsync[I, O, O2 any] struct {
	inner PipeAsync[I, O]
	f     func(O) O2
}

func (a pipeMapAsync[I, O, O2]) Run(ctx context.Context, in sink.Source[I], out sink.Sink[O2]) error {
	return a.inner.Run(ctx, in, sink.Map(a.f, out))
}

// PipeFilter composes a Pipe[I, O] with an async predicate over O.
func PipeFilter[I, O any](inner Pipe[I, O], pred func(context.Context, O) (bool, error)) Pipe[I, O] {
	return PipeFunc[I, O]{New: func() PipeAsync[I, O] {
		return pipeFilterAsync[I, O]{inner: inner.IntoAsync(), pred: pred}
	}}
}

type pipeFilterAsync[I, O any] struct {
	inner PipeAsync[I, O]
	pred  func(context.Context, O) (bool, error)
}

func (a pipeFilterAsync[I, O]) Run(ctx context.Context, in sink.Source[I], out sink.Sink[O]) error {
	return a.inner.Run(ctx, in, sink.Filter(a.pred, out))
}

// PipeFlatMap composes a Pipe[I, O] with f: O -> []O2.
func PipeFlatMap[I, O, O2 any](inner Pipe[I, O], f func(O) []O2) Pipe[I, O2] {
	return PipeFunc[I, O2]{New: func() PipeAsync[I, O2] {
		return pipeFlatMapAsync[I, O, O2]{inner: inner.IntoAsync(), f: f}
	}}
}

type pipeFlatMapAsync[I, O, O2 any] struct {
	inner PipeAsync[I, O]
	f     func(O) []O2
}

func (a pipeFlatMapAsync[I, O, O2]) Run(ctx context.Context, in sink.Source[I], out sink.Sink[O2]) error {
	return a.inner.Run(ctx, in, sink.FlatMap(a.f, out))
}
