package amadeus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-go/amadeus"
)

func TestSumOverMappedFilteredStream(t *testing.T) {
	xs := make([]int, 20)
	for i := range xs {
		xs[i] = i + 1
	}
	s := amadeus.Chunked(xs, 12)
	evens := amadeus.Filter(s, func(_ context.Context, v int) (bool, error) { return v%2 == 0, nil })
	squared := amadeus.Map(evens, func(v int) int { return v * v })

	r := amadeus.NewRunner(3, 2)
	got, err := amadeus.Sum[int](context.Background(), r, squared)
	require.NoError(t, err)

	want := 0
	for _, v := range xs {
		if v%2 == 0 {
			want += v * v
		}
	}
	assert.Equal(t, want, got)
}

func TestCountOverFilteredStream(t *testing.T) {
	xs := make([]int, 50)
	for i := range xs {
		xs[i] = i
	}
	s := amadeus.Chunked(xs, 16)
	odds := amadeus.Filter(s, func(_ context.Context, v int) (bool, error) { return v%2 == 1, nil })

	r := amadeus.NewRunner(4, 4)
	got, err := amadeus.Count[int](context.Background(), r, odds)
	require.NoError(t, err)
	assert.Equal(t, int64(25), got)
}

func TestCollectPreservesEveryItemAcrossTiers(t *testing.T) {
	xs := []int{5, 4, 3, 2, 1, 6, 7, 8}
	s := amadeus.Chunked(xs, 4)

	r := amadeus.NewRunner(2, 2)
	got, err := amadeus.Collect[int](context.Background(), r, s)
	require.NoError(t, err)
	assert.ElementsMatch(t, xs, got)
}
