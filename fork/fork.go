// Package fork implements spec §4.7's pipe_fork: a single source feeding
// two independent sinks, with the constraint that the "B" sink observes
// each item before the "A" sink consumes it, and no more than one item
// ever buffered per side. Rust's version distinguishes A's by-value
// receipt from B's by-reference receipt; Go has no borrow checker, so
// both sides simply receive the same value — the invariant this package
// actually enforces is the *order* of observation, not aliasing.
package fork

import (
	"context"

	"github.com/amadeus-go/amadeus/sink"
)

// Pipe drains src exactly once, handing each item to right before left
// (the B-before-A observation order spec's constraints require), and
// returns once both sinks have finished. Each of leftCh/rightCh below is
// an unbuffered channel: a send only completes once the corresponding
// sink's Forward loop has pulled the item, which is the literal Go
// rendering of "no buffering beyond a single one-item slot."
func Pipe[T any](ctx context.Context, src sink.Source[T], left, right sink.Sink[T]) error {
	leftCh := make(chan T)
	rightCh := make(chan T)

	errc := make(chan error, 2)
	go func() { errc <- left.Forward(ctx, sink.Chan(leftCh)) }()
	go func() { errc <- right.Forward(ctx, sink.Chan(rightCh)) }()

	dispatchErr := dispatch(ctx, src, leftCh, rightCh)

	var sinkErr error
	for i := 0; i < 2; i++ {
		if err := <-errc; err != nil && sinkErr == nil {
			sinkErr = err
		}
	}
	if dispatchErr != nil {
		return dispatchErr
	}
	return sinkErr
}

func dispatch[T any](ctx context.Context, src sink.Source[T], leftCh, rightCh chan<- T) error {
	defer close(leftCh)
	defer close(rightCh)
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		select {
		case rightCh <- v:
		case <-ctx.Done():
			return ctx.Err()
		}
		select {
		case leftCh <- v:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
