package reducer

import (
	"context"

	"github.com/amadeus-go/amadeus/sink"
)

// foldReducer is the concrete Reducer behind MonoidReducers and Fold: it
// holds a running accumulator and a step function, folding each item of
// the source into it in order. SampleUnstable, MostFrequent and
// MostDistinct use reducers of their own.
type foldReducer[T, Acc any] struct {
	acc  Acc
	step func(Acc, T) Acc
}

func (r *foldReducer[T, Acc]) Forward(ctx context.Context, src sink.Source[T]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		r.acc = r.step(r.acc, v)
	}
}

func (r *foldReducer[T, Acc]) Output() (Acc, error) { return r.acc, nil }

// Either is the Left(item)/Right(sub-accumulator) sum type spec's fold
// combinator folds over: Left values are raw source items seen by a
// leaf (thread-tier) reducer, Right values are already-combined
// accumulators seen by a combining (process- or driver-tier) reducer.
type Either[L, R any] struct {
	left   L
	right  R
	isLeft bool
}

func Left[L, R any](l L) Either[L, R]  { return Either[L, R]{left: l, isLeft: true} }
func Right[L, R any](r R) Either[L, R] { return Either[L, R]{right: r} }

// Match dispatches to onLeft or onRight depending on which side e holds.
func (e Either[L, R]) Match(onLeft func(L), onRight func(R)) {
	if e.isLeft {
		onLeft(e.left)
	} else {
		onRight(e.right)
	}
}

// Monoid packages an identity element and an associative, commutative
// combine function. Count, Sum, Min, Max, Combine, All, Any and
// CollectSlice are built from one: the engine folds leaf items into Acc via lift+Combine at the
// thread tier, then folds partial Accs together via Combine alone at the
// process and driver tiers — which is exactly why the three-tier
// reduction in exec.Reduce requires its reducers to be commutative for
// observable determinism (spec §5).
type Monoid[Acc any] struct {
	Identity Acc
	Combine  func(a, b Acc) Acc
}

// MonoidReducers builds the leaf factory (folds T into Acc via lift),
// the combine factory (folds Acc into Acc), and a ready driver-tier
// reducer instance, from a single Monoid plus a lift function. This is
// the shared building block behind Count, Sum, Min, Max, Combine, All,
// and Any.
func MonoidReducers[T, Acc any](m Monoid[Acc], lift func(T) Acc) (Factory[T, Acc], Factory[Acc, Acc], Reducer[Acc, Acc]) {
	leaf := FactoryFunc[T, Acc](func() Reducer[T, Acc] {
		return &foldReducer[T, Acc]{acc: m.Identity, step: func(acc Acc, t T) Acc { return m.Combine(acc, lift(t)) }}
	})
	combine := FactoryFunc[Acc, Acc](func() Reducer[Acc, Acc] {
		return &foldReducer[Acc, Acc]{acc: m.Identity, step: m.Combine}
	})
	return leaf, combine, combine.Make()
}

// Fold implements spec's general fold(id, op) terminal operation: op is
// applied to Left(item) at the leaf tier and to Right(sub_acc) between
// tiers, the Either encoding spec describes verbatim.
func Fold[T, Acc any](id Acc, op func(Acc, Either[T, Acc]) Acc) (Factory[T, Acc], Factory[Acc, Acc], Reducer[Acc, Acc]) {
	leaf := FactoryFunc[T, Acc](func() Reducer[T, Acc] {
		return &foldReducer[T, Acc]{acc: id, step: func(acc Acc, t T) Acc { return op(acc, Left[T, Acc](t)) }}
	})
	combine := FactoryFunc[Acc, Acc](func() Reducer[Acc, Acc] {
		return &foldReducer[Acc, Acc]{acc: id, step: func(acc Acc, sub Acc) Acc { return op(acc, Right[T, Acc](sub)) }}
	})
	return leaf, combine, combine.Make()
}
