package reducer

import (
	"context"
	"sort"

	"github.com/amadeus-go/amadeus/reducer/sketch"
	"github.com/amadeus-go/amadeus/sink"
)

// DistinctEntry is one ranked result of MostDistinct: key and its
// estimated distinct-member count.
type DistinctEntry[K comparable] struct {
	Key      K
	Estimate float64
}

// hllSnapshot is the wire shape of a HyperLogLog crossing a reducer
// tier boundary: the register array plus precision needed to rebuild it.
type hllSnapshot struct {
	P         uint8
	Registers []uint8
}

func hllFromSnapshot(s hllSnapshot) *sketch.HyperLogLog {
	h := sketch.NewHyperLogLog(s.P)
	h.SetRegisters(s.Registers)
	return h
}

type mostDistinctReducer[T any, K comparable] struct {
	keyOf    func(T) K
	memberOf func(T) []byte
	p        uint8
	hlls     map[K]*sketch.HyperLogLog
	n        int
}

func (r *mostDistinctReducer[T, K]) Forward(ctx context.Context, src sink.Source[T]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		k := r.keyOf(v)
		h, ok := r.hlls[k]
		if !ok {
			h = sketch.NewHyperLogLog(r.p)
			r.hlls[k] = h
		}
		h.Add(r.memberOf(v))
	}
}

func (r *mostDistinctReducer[T, K]) Output() (map[K]hllSnapshot, error) {
	return topSnapshots(r.hlls, r.n), nil
}

func snapshotAll[K comparable](hlls map[K]*sketch.HyperLogLog) map[K]hllSnapshot {
	out := make(map[K]hllSnapshot, len(hlls))
	for k, h := range hlls {
		out[k] = hllSnapshot{P: h.Precision(), Registers: h.Registers()}
	}
	return out
}

// topSnapshots ranks hlls by estimated cardinality and keeps only the
// top n keys' snapshots, the same Output()-time trimming MostFrequent
// applies via ss.Top(r.n), so every tier's output holds at most n keys.
// The result is a map and carries no order; TopDistinct ranks it.
func topSnapshots[K comparable](hlls map[K]*sketch.HyperLogLog, n int) map[K]hllSnapshot {
	all := snapshotAll(hlls)
	top := TopDistinct(all, n)
	out := make(map[K]hllSnapshot, len(top))
	for _, e := range top {
		out[e.Key] = all[e.Key]
	}
	return out
}

type combineDistinctReducer[K comparable] struct {
	p    uint8
	hlls map[K]*sketch.HyperLogLog
	n    int
}

func (r *combineDistinctReducer[K]) Forward(ctx context.Context, src sink.Source[map[K]hllSnapshot]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		for k, snap := range v {
			h, ok := r.hlls[k]
			if !ok {
				r.hlls[k] = hllFromSnapshot(snap)
				continue
			}
			h.Merge(hllFromSnapshot(snap))
		}
	}
}

func (r *combineDistinctReducer[K]) Output() (map[K]hllSnapshot, error) {
	return topSnapshots(r.hlls, r.n), nil
}

// TopDistinct ranks a MostDistinct driver-tier result down to its top n
// keys by estimated distinct-member count, the final step a caller
// applies to the root reducer's Output.
func TopDistinct[K comparable](snapshots map[K]hllSnapshot, n int) []DistinctEntry[K] {
	all := make([]DistinctEntry[K], 0, len(snapshots))
	for k, snap := range snapshots {
		all = append(all, DistinctEntry[K]{Key: k, Estimate: hllFromSnapshot(snap).Estimate()})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Estimate > all[j].Estimate })
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// MostDistinct builds the reducer set for spec's most_distinct(n, p, ε,
// err): a HyperLogLog per key, keyed top-k by estimated cardinality. p
// is spec's requested precision in the [4,16] range HyperLogLog
// accepts directly; err (the target relative error) is accepted for
// parameter parity but HyperLogLog's accuracy is governed by p alone.
func MostDistinct[T any, K comparable](keyOf func(T) K, memberOf func(T) []byte, n int, precision uint8, err float64) (
	Factory[T, map[K]hllSnapshot], Factory[map[K]hllSnapshot, map[K]hllSnapshot], Reducer[map[K]hllSnapshot, map[K]hllSnapshot],
) {
	_ = err // accepted for parity with spec's parameter list; see doc comment
	leaf := FactoryFunc[T, map[K]hllSnapshot](func() Reducer[T, map[K]hllSnapshot] {
		return &mostDistinctReducer[T, K]{keyOf: keyOf, memberOf: memberOf, p: precision, hlls: make(map[K]*sketch.HyperLogLog), n: n}
	})
	combine := FactoryFunc[map[K]hllSnapshot, map[K]hllSnapshot](func() Reducer[map[K]hllSnapshot, map[K]hllSnapshot] {
		return &combineDistinctReducer[K]{p: precision, hlls: make(map[K]*sketch.HyperLogLog), n: n}
	})
	return leaf, combine, combine.Make()
}
