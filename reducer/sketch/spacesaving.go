// Package sketch implements the approximate summaries spec §4.8 calls
// for but leaves unspecified in detail ("parameters forwarded to the
// sketch library"): a Space-Saving top-k counter for most_frequent, and
// a HyperLogLog register set for most_distinct. Neither example repo in
// the corpus ships a sketch library, so these are hand-rolled,
// self-contained numeric algorithms in the teacher's terse style —
// closest grounding is the teacher's own hand-rolled Reed-Solomon wrapper
// (encoding/shards.go): a small, math-heavy file with no further
// internal dependencies.
package sketch

import "sort"

// SpaceSaving tracks approximate top-k frequent keys in O(k) space. Each
// counter also carries an error bound: counts may overestimate, and the
// true count of a key lies in [count-error, count].
type SpaceSaving[K comparable] struct {
	capacity int
	counts   map[K]*ssCounter
}

type ssCounter struct {
	count uint64
	err   uint64
}

// NewSpaceSaving returns a tracker retaining at most capacity counters.
func NewSpaceSaving[K comparable](capacity int) *SpaceSaving[K] {
	if capacity < 1 {
		capacity = 1
	}
	return &SpaceSaving[K]{capacity: capacity, counts: make(map[K]*ssCounter, capacity)}
}

// Add records one observation of key.
func (s *SpaceSaving[K]) Add(key K) {
	if c, ok := s.counts[key]; ok {
		c.count++
		return
	}
	if len(s.counts) < s.capacity {
		s.counts[key] = &ssCounter{count: 1}
		return
	}
	minKey, minCounter := s.min()
	delete(s.counts, minKey)
	s.counts[key] = &ssCounter{count: minCounter.count + 1, err: minCounter.count}
}

func (s *SpaceSaving[K]) min() (K, *ssCounter) {
	var minKey K
	var minCounter *ssCounter
	for k, c := range s.counts {
		if minCounter == nil || c.count < minCounter.count {
			minKey, minCounter = k, c
		}
	}
	return minKey, minCounter
}

// Merge folds other's counters into s, the process/driver tier operation
// used when combining per-thread Space-Saving summaries. Keys tracked by
// both sides sum exactly; a key tracked by only one side is conservatively
// assigned the other side's minimum count as additional error, matching
// the standard Space-Saving merge strategy.
func (s *SpaceSaving[K]) Merge(other *SpaceSaving[K]) {
	_, otherMin := other.min()
	_, selfMin := s.min()
	var otherMinCount, selfMinCount uint64
	if otherMin != nil {
		otherMinCount = otherMin.count
	}
	if selfMin != nil {
		selfMinCount = selfMin.count
	}

	merged := make(map[K]*ssCounter, len(s.counts)+len(other.counts))
	for k, c := range s.counts {
		if _, inOther := other.counts[k]; inOther {
			merged[k] = &ssCounter{count: c.count, err: c.err}
		} else {
			merged[k] = &ssCounter{count: c.count + otherMinCount, err: c.err + otherMinCount}
		}
	}
	for k, c := range other.counts {
		if existing, ok := merged[k]; ok {
			existing.count += c.count
			existing.err += c.err
		} else {
			merged[k] = &ssCounter{count: c.count + selfMinCount, err: c.err + selfMinCount}
		}
	}
	s.counts = merged
	s.trim()
}

func (s *SpaceSaving[K]) trim() {
	if len(s.counts) <= s.capacity {
		return
	}
	type kv struct {
		k K
		c *ssCounter
	}
	all := make([]kv, 0, len(s.counts))
	for k, c := range s.counts {
		all = append(all, kv{k, c})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].c.count > all[j].c.count })
	kept := make(map[K]*ssCounter, s.capacity)
	for _, e := range all[:s.capacity] {
		kept[e.k] = e.c
	}
	s.counts = kept
}

// Entry is one ranked result from Top.
type Entry[K comparable] struct {
	Key   K
	Count uint64
	Error uint64
}

// Top returns the n highest-count keys, descending by count.
func (s *SpaceSaving[K]) Top(n int) []Entry[K] {
	all := make([]Entry[K], 0, len(s.counts))
	for k, c := range s.counts {
		all = append(all, Entry[K]{Key: k, Count: c.count, Error: c.err})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Count > all[j].Count })
	if n < len(all) {
		all = all[:n]
	}
	return all
}
