package reducer_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/sink"
)

func TestSampleUnstableNeverExceedsCapacity(t *testing.T) {
	leaf, _, _ := reducer.SampleUnstable[int](3, rand.New(rand.NewSource(42)))
	src := make([]int, 100)
	for i := range src {
		src[i] = i
	}
	out, err := reducer.Run[int, []int](context.Background(), leaf.Make(), sink.Slice(src))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out), 3)
}

func TestSampleUnstableKeepsAllWhenUnderCapacity(t *testing.T) {
	leaf, _, _ := reducer.SampleUnstable[int](10, rand.New(rand.NewSource(1)))
	out, err := reducer.Run[int, []int](context.Background(), leaf.Make(), sink.Slice([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, out)
}

func TestSampleUnstableCombineStaysWithinCapacity(t *testing.T) {
	leaf, combine, _ := reducer.SampleUnstable[int](4, rand.New(rand.NewSource(7)))
	a, err := reducer.Run[int, []int](context.Background(), leaf.Make(), sink.Slice([]int{1, 2, 3, 4, 5, 6}))
	require.NoError(t, err)
	b, err := reducer.Run[int, []int](context.Background(), leaf.Make(), sink.Slice([]int{7, 8, 9, 10}))
	require.NoError(t, err)

	final, err := reducer.Run[[]int, []int](context.Background(), combine.Make(), sink.Slice([][]int{a, b}))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(final), 4)
}

func TestSampleUnstableDefaultsInvalidCapacityToOne(t *testing.T) {
	leaf, _, _ := reducer.SampleUnstable[int](0, rand.New(rand.NewSource(3)))
	out, err := reducer.Run[int, []int](context.Background(), leaf.Make(), sink.Slice([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
