// Package reducer implements the stateful accumulator protocol from
// spec §3: a Reducer incrementally folds a Source into internal state,
// then emits a single output once. The engine drives three tiers of
// reducers (thread-level A, process-level B, driver-level C); Go's
// structural typing means a single Reducer[T, O] interface serves all
// three — the spec's ReducerSend/ReducerProcessSend distinction (an
// added Send/serialize bound on the output) is enforced where it
// actually matters, at the wire.Codec boundary in package exec, rather
// than by three separate interfaces.
package reducer

import (
	"context"
	"fmt"

	"github.com/amadeus-go/amadeus/internal/amaerrors"
	"github.com/amadeus-go/amadeus/sink"
)

// Reducer accumulates a Source[T] into a single O. Forward may be called
// any number of times in principle, but the engine only ever calls it
// once per reducer instance, against a Source representing that
// worker's whole share of the input; Output must be called exactly once,
// after Forward has returned successfully.
type Reducer[T, O any] interface {
	Forward(ctx context.Context, src sink.Source[T]) error
	Output() (O, error)
}

// Factory makes fresh, independent Reducer instances on demand. A
// reducer is single-use and every worker needs its own, so the engine
// clones the Factory (a plain Go value copy, the analogue of spec's
// Clone bound) down to each worker and calls Make there.
type Factory[T, O any] interface {
	Make() Reducer[T, O]
}

// FactoryFunc adapts a plain function to a Factory.
type FactoryFunc[T, O any] func() Reducer[T, O]

func (f FactoryFunc[T, O]) Make() Reducer[T, O] { return f() }

// Run drives r over src and returns its output, enforcing the
// call-at-most-once-after-successful-Forward contract described in spec
// §3's reducer invariants. Every tier of exec.Reduce funnels its local
// work through this helper so the contract is checked in one place.
func Run[T, O any](ctx context.Context, r Reducer[T, O], src sink.Source[T]) (O, error) {
	var zero O
	if err := r.Forward(ctx, src); err != nil {
		return zero, err
	}
	out, err := r.Output()
	if err != nil {
		return zero, fmt.Errorf("%w: %v", amaerrors.ErrReducerMisuse, err)
	}
	return out, nil
}
