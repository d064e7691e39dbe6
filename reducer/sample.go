package reducer

import (
	"context"
	"math/rand"
	"sync/atomic"

	"github.com/amadeus-go/amadeus/sink"
)

// reservoir is a fixed-capacity unordered sample plus the total count of
// items it has ever seen, which a combining tier needs to merge two
// reservoirs without biasing toward whichever one happened to be
// smaller.
type reservoir[T any] struct {
	k     int
	items []T
	seen  int64
	rng   *rand.Rand
}

func (r *reservoir[T]) add(v T) {
	r.seen++
	if len(r.items) < r.k {
		r.items = append(r.items, v)
		return
	}
	j := r.rng.Int63n(r.seen)
	if j < int64(r.k) {
		r.items[j] = v
	}
}

func (r *reservoir[T]) merge(o reservoir[T]) reservoir[T] {
	out := reservoir[T]{k: r.k, rng: r.rng, seen: r.seen + o.seen}
	pool := append(append([]T{}, r.items...), o.items...)
	weights := append(repeat(r.seen, len(r.items)), repeat(o.seen, len(o.items))...)
	out.items = weightedSample(r.rng, pool, weights, r.k)
	return out
}

func repeat(v int64, n int) []int64 {
	w := make([]int64, n)
	for i := range w {
		w[i] = v
	}
	return w
}

// weightedSample draws up to k distinct-position items from pool without
// replacement, biased by weights — an approximate merge of two
// reservoirs weighted by how many items each one represents. The result
// is an unordered sample, not a statistically exact reservoir; spec
// names this operation "sample_unstable" for exactly this reason.
func weightedSample[T any](rng *rand.Rand, pool []T, weights []int64, k int) []T {
	if len(pool) <= k {
		return pool
	}
	type scored = struct {
		v   T
		key float64
	}
	scoredPool := make([]scored, len(pool))
	for i, v := range pool {
		w := weights[i]
		if w < 1 {
			w = 1
		}
		// Efraimidis-Spirakis weighted reservoir key: -Exp(1)/w, largest
		// keys win, heavier weights win more often without ever being
		// guaranteed to win.
		key := -rng.ExpFloat64() / float64(w)
		scoredPool[i] = scored{v: v, key: key}
	}
	sortByKeyDesc(scoredPool)
	out := make([]T, 0, k)
	for i := 0; i < k && i < len(scoredPool); i++ {
		out = append(out, scoredPool[i].v)
	}
	return out
}

func sortByKeyDesc[T any](xs []struct {
	v   T
	key float64
}) {
	for i := 1; i < len(xs); i++ {
		j := i
		for j > 0 && xs[j-1].key < xs[j].key {
			xs[j-1], xs[j] = xs[j], xs[j-1]
			j--
		}
	}
}

type sampleReducer[T any] struct {
	res reservoir[T]
}

func (r *sampleReducer[T]) Forward(ctx context.Context, src sink.Source[T]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		r.res.add(v)
	}
}

func (r *sampleReducer[T]) Output() ([]T, error) { return r.res.items, nil }

type combineSampleReducer[T any] struct {
	acc reservoir[T]
	set bool
}

func (r *combineSampleReducer[T]) Forward(ctx context.Context, src sink.Source[[]T]) error {
	// The combine tier only ever receives other reservoirs' outputs
	// ([]T), so it reconstructs a synthetic reservoir per batch with a
	// seen count equal to its length — an approximation that is exact
	// when every sub-reservoir never overflowed, and merely biased
	// (never incorrect) otherwise, consistent with "sample_unstable".
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		batch := reservoir[T]{k: r.acc.k, rng: r.acc.rng, items: v, seen: int64(len(v))}
		if !r.set {
			r.acc = batch
			r.set = true
			continue
		}
		r.acc = r.acc.merge(batch)
	}
}

func (r *combineSampleReducer[T]) Output() ([]T, error) { return r.acc.items, nil }

// SampleUnstable builds the reducer set for spec's sample_unstable(k): a
// reservoir-style unordered sample of up to k items, merged across tiers
// by weighted resampling rather than exact reservoir algebra.
//
// rng seeds the whole set (nil picks a fixed default seed for
// reproducibility) but is only ever read here, once, before any
// Reducer exists. Every Make() call below mints its own *rand.Rand from
// an atomically-incremented counter instead of sharing rng itself:
// exec.Reduce calls Make() from concurrent threads/processes, and
// *rand.Rand is not safe for concurrent use, so the reducers spawned
// across tiers must never touch the same generator.
func SampleUnstable[T any](k int, rng *rand.Rand) (Factory[T, []T], Factory[[]T, []T], Reducer[[]T, []T]) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if k < 1 {
		k = 1
	}
	baseSeed := rng.Int63()
	var counter int64
	newRand := func() *rand.Rand {
		seed := baseSeed + atomic.AddInt64(&counter, 1)
		return rand.New(rand.NewSource(seed))
	}

	leaf := FactoryFunc[T, []T](func() Reducer[T, []T] {
		return &sampleReducer[T]{res: reservoir[T]{k: k, rng: newRand()}}
	})
	combine := FactoryFunc[[]T, []T](func() Reducer[[]T, []T] {
		return &combineSampleReducer[T]{acc: reservoir[T]{k: k, rng: newRand()}}
	})
	return leaf, combine, combine.Make()
}
