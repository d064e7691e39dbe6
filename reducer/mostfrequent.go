package reducer

import (
	"context"
	"math"

	"github.com/amadeus-go/amadeus/reducer/sketch"
	"github.com/amadeus-go/amadeus/sink"
)

// FrequentEntry is one ranked result of MostFrequent.
type FrequentEntry[K comparable] struct {
	Key   K
	Count uint64
	Error uint64
}

type mostFrequentReducer[T any, K comparable] struct {
	keyOf func(T) K
	ss    *sketch.SpaceSaving[K]
	n     int
}

func (r *mostFrequentReducer[T, K]) Forward(ctx context.Context, src sink.Source[T]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		r.ss.Add(r.keyOf(v))
	}
}

func (r *mostFrequentReducer[T, K]) Output() ([]FrequentEntry[K], error) {
	return toFrequentEntries(r.ss.Top(r.n)), nil
}

type combineFrequentReducer[K comparable] struct {
	ss *sketch.SpaceSaving[K]
	n  int
}

// What crosses from a leaf/combine reducer to the next tier is the
// ranked []FrequentEntry produced so far, re-hydrated here into a fresh
// Space-Saving sketch for merging. Carrying the full sketch state across
// tiers would be more precise but spec only requires the op's
// parameters (n, p, ε) to be forwarded, not the sketch's internal
// representation, so entries are what's serialized at this boundary.
func (r *combineFrequentReducer[K]) Forward(ctx context.Context, src sink.Source[[]FrequentEntry[K]]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		other := sketch.NewSpaceSaving[K](r.ss_cap())
		for _, e := range v {
			for i := uint64(0); i < e.Count; i++ {
				other.Add(e.Key)
			}
		}
		r.ss.Merge(other)
	}
}

func (r *combineFrequentReducer[K]) ss_cap() int { return r.n * 4 }

func (r *combineFrequentReducer[K]) Output() ([]FrequentEntry[K], error) {
	return toFrequentEntries(r.ss.Top(r.n)), nil
}

func toFrequentEntries[K comparable](top []sketch.Entry[K]) []FrequentEntry[K] {
	out := make([]FrequentEntry[K], len(top))
	for i, e := range top {
		out[i] = FrequentEntry[K]{Key: e.Key, Count: e.Count, Error: e.Error}
	}
	return out
}

// MostFrequent builds the reducer set for spec's most_frequent(n, p, ε):
// a Space-Saving top-k sketch. p (the target failure probability) is
// accepted for interface parity with spec but, as in the reference
// Space-Saving algorithm, only ε governs sketch capacity: capacity =
// ceil(1/ε), rounded up to at least n.
func MostFrequent[T any, K comparable](keyOf func(T) K, n int, p, epsilon float64) (
	Factory[T, []FrequentEntry[K]], Factory[[]FrequentEntry[K], []FrequentEntry[K]], Reducer[[]FrequentEntry[K], []FrequentEntry[K]],
) {
	_ = p // accepted for parity with spec's parameter list; Space-Saving has no direct use for it
	capacity := n
	if epsilon > 0 {
		if c := int(math.Ceil(1 / epsilon)); c > capacity {
			capacity = c
		}
	}
	leaf := FactoryFunc[T, []FrequentEntry[K]](func() Reducer[T, []FrequentEntry[K]] {
		return &mostFrequentReducer[T, K]{keyOf: keyOf, ss: sketch.NewSpaceSaving[K](capacity), n: n}
	})
	combine := FactoryFunc[[]FrequentEntry[K], []FrequentEntry[K]](func() Reducer[[]FrequentEntry[K], []FrequentEntry[K]] {
		return &combineFrequentReducer[K]{ss: sketch.NewSpaceSaving[K](capacity), n: n}
	})
	return leaf, combine, combine.Make()
}
