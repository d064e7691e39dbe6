package fork

import (
	"context"

	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/sink"
)

// Pair is the combined output of Reduce: the two sub-sinks' results.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Reduce is spec §4.7's compound reducer: it builds one reducer per side
// from leftFactory/rightFactory, forks src across both via Pipe (a
// Reducer's Forward has the same shape as a Sink's, so the two reducers
// are handed to Pipe directly), and emits their outputs as a Pair once
// both have finished.
func Reduce[T, L, R any](ctx context.Context, src sink.Source[T], leftFactory reducer.Factory[T, L], rightFactory reducer.Factory[T, R]) (Pair[L, R], error) {
	var zero Pair[L, R]
	left := leftFactory.Make()
	right := rightFactory.Make()

	if err := Pipe[T](ctx, src, sink.Func[T](left.Forward), sink.Func[T](right.Forward)); err != nil {
		return zero, err
	}

	lo, err := left.Output()
	if err != nil {
		return zero, err
	}
	ro, err := right.Output()
	if err != nil {
		return zero, err
	}
	return Pair[L, R]{Left: lo, Right: ro}, nil
}
