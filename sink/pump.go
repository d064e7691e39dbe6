package sink

import (
	"context"

	"github.com/amadeus-go/amadeus/internal/amaerrors"
)

// chanSink drains whatever Source it is handed onto a channel. Its
// Forward may be called more than once against the same channel — each
// call just proxies another source's items through — which is safe
// because chanSink carries no exhausted-once state of its own; only Pump
// relies on this relaxation, and only internally.
type chanSink[T any] struct {
	ch chan<- T
}

func (s chanSink[T]) Forward(ctx context.Context, src Source[T]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == Done {
				return nil
			}
			return err
		}
		select {
		case s.ch <- v:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Pump bridges a push-based producer (anything shaped like
// task.StreamAsync.Run, which drives items into a Sink) into a
// pull-based Source, by running produce in its own goroutine against a
// channel-backed Sink and exposing the channel as a Source. This is the
// seam exec needs to feed a reducer's pull-based Forward from a task's
// push-based Run, since the engine's task/sink half and reducer half
// were designed around opposite directions of control. A panic inside
// produce is recovered and surfaces from Next as an
// amaerrors.ErrTaskPanicked error.
func Pump[T any](ctx context.Context, produce func(ctx context.Context, out Sink[T]) error) Source[T] {
	ch := make(chan T)
	errc := make(chan error, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				errc <- amaerrors.Panic(r)
			}
		}()
		errc <- produce(ctx, chanSink[T]{ch: ch})
	}()

	var (
		runErr   error
		errTaken bool
	)
	return SourceFunc[T](func(ctx context.Context) (T, error) {
		var zero T
		select {
		case v, ok := <-ch:
			if !ok {
				if !errTaken {
					runErr = <-errc
					errTaken = true
				}
				if runErr != nil {
					return zero, runErr
				}
				return zero, Done
			}
			return v, nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	})
}
