package sketch_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amadeus-go/amadeus/reducer/sketch"
)

func TestSpaceSavingFindsClearTopKey(t *testing.T) {
	ss := sketch.NewSpaceSaving[string](4)
	for i := 0; i < 100; i++ {
		ss.Add("hot")
	}
	ss.Add("cold-a")
	ss.Add("cold-b")

	top := ss.Top(1)
	if assert.Len(t, top, 1) {
		assert.Equal(t, "hot", top[0].Key)
		assert.Equal(t, uint64(100), top[0].Count)
	}
}

func TestSpaceSavingMergeCombinesCounts(t *testing.T) {
	a := sketch.NewSpaceSaving[string](4)
	b := sketch.NewSpaceSaving[string](4)
	for i := 0; i < 10; i++ {
		a.Add("x")
	}
	for i := 0; i < 5; i++ {
		b.Add("x")
	}
	a.Merge(b)

	top := a.Top(1)
	if assert.Len(t, top, 1) {
		assert.Equal(t, "x", top[0].Key)
		assert.GreaterOrEqual(t, top[0].Count, uint64(15))
	}
}

func TestHyperLogLogEstimatesWithinTolerance(t *testing.T) {
	h := sketch.NewHyperLogLog(14)
	n := 50000
	for i := 0; i < n; i++ {
		h.Add([]byte(fmt.Sprintf("item-%d", i)))
	}
	est := h.Estimate()
	relErr := math.Abs(est-float64(n)) / float64(n)
	assert.Less(t, relErr, 0.05, "estimate %v too far from true %v", est, n)
}

func TestHyperLogLogMergeIsUnionCardinality(t *testing.T) {
	a := sketch.NewHyperLogLog(12)
	b := sketch.NewHyperLogLog(12)
	for i := 0; i < 1000; i++ {
		a.Add([]byte(fmt.Sprintf("a-%d", i)))
	}
	for i := 0; i < 1000; i++ {
		b.Add([]byte(fmt.Sprintf("b-%d", i)))
	}
	a.Merge(b)

	est := a.Estimate()
	relErr := math.Abs(est-2000) / 2000
	assert.Less(t, relErr, 0.1, "merged estimate %v too far from 2000", est)
}

func TestHyperLogLogRegistersRoundTrip(t *testing.T) {
	h := sketch.NewHyperLogLog(10)
	h.Add([]byte("seed"))
	snap := h.Registers()

	rebuilt := sketch.NewHyperLogLog(h.Precision())
	rebuilt.SetRegisters(snap)
	assert.Equal(t, h.Estimate(), rebuilt.Estimate())
}
