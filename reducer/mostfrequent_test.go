package reducer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/sink"
)

func TestMostFrequentRanksHottestKeyFirst(t *testing.T) {
	keyOf := func(v int) int { return v }
	leaf, _, _ := reducer.MostFrequent[int, int](keyOf, 2, 0.01, 0.01)

	var items []int
	for i := 0; i < 50; i++ {
		items = append(items, 1)
	}
	for i := 0; i < 10; i++ {
		items = append(items, 2)
	}
	items = append(items, 3)

	out, err := reducer.Run[int, []reducer.FrequentEntry[int]](context.Background(), leaf.Make(), sink.Slice(items))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, 1, out[0].Key)
	assert.Equal(t, uint64(50), out[0].Count)
}

func TestMostFrequentCombinesAcrossTiers(t *testing.T) {
	keyOf := func(v int) int { return v }
	leaf, combine, _ := reducer.MostFrequent[int, int](keyOf, 1, 0.01, 0.01)

	a, err := reducer.Run[int, []reducer.FrequentEntry[int]](context.Background(), leaf.Make(), repeated(1, 30))
	require.NoError(t, err)
	b, err := reducer.Run[int, []reducer.FrequentEntry[int]](context.Background(), leaf.Make(), repeated(1, 20))
	require.NoError(t, err)

	final, err := reducer.Run[[]reducer.FrequentEntry[int], []reducer.FrequentEntry[int]](
		context.Background(), combine.Make(), sink.Slice([][]reducer.FrequentEntry[int]{a, b}))
	require.NoError(t, err)
	require.NotEmpty(t, final)
	assert.Equal(t, 1, final[0].Key)
	assert.GreaterOrEqual(t, final[0].Count, uint64(50))
}

func repeated(v, n int) sink.Source[int] {
	items := make([]int, n)
	for i := range items {
		items[i] = v
	}
	return sink.Slice(items)
}
