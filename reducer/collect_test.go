package reducer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/sink"
)

// averageCollector implements reducer.FromDistributedStream by summing
// values and counts separately, then dividing at the very end — the
// classic example of a custom collector that needs its own accumulator
// shape rather than reusing a built-in terminal op.
type averageCollector struct{}

type sumCount struct {
	sum   int
	count int
}

func (averageCollector) Reducers() (
	reducer.Factory[int, sumCount],
	reducer.Factory[sumCount, sumCount],
	reducer.Reducer[sumCount, float64],
) {
	leaf := reducer.FactoryFunc[int, sumCount](func() reducer.Reducer[int, sumCount] {
		return &sumCountLeaf{}
	})
	combine := reducer.FactoryFunc[sumCount, sumCount](func() reducer.Reducer[sumCount, sumCount] {
		return &sumCountCombine{}
	})
	return leaf, combine, &averageDriver{}
}

type sumCountLeaf struct{ acc sumCount }

func (r *sumCountLeaf) Forward(ctx context.Context, src sink.Source[int]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		r.acc.sum += v
		r.acc.count++
	}
}

func (r *sumCountLeaf) Output() (sumCount, error) { return r.acc, nil }

type sumCountCombine struct{ acc sumCount }

func (r *sumCountCombine) Forward(ctx context.Context, src sink.Source[sumCount]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		r.acc.sum += v.sum
		r.acc.count += v.count
	}
}

func (r *sumCountCombine) Output() (sumCount, error) { return r.acc, nil }

type averageDriver struct{ acc sumCount }

func (r *averageDriver) Forward(ctx context.Context, src sink.Source[sumCount]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		r.acc.sum += v.sum
		r.acc.count += v.count
	}
}

func (r *averageDriver) Output() (float64, error) {
	if r.acc.count == 0 {
		return 0, nil
	}
	return float64(r.acc.sum) / float64(r.acc.count), nil
}

func TestCollectDelegatesToCustomCollectorWithinOneTier(t *testing.T) {
	leaf, _, _ := reducer.Collect[int, sumCount, sumCount, float64](averageCollector{})
	acc, err := reducer.Run[int, sumCount](context.Background(), leaf.Make(), sink.Slice([]int{2, 4, 6}))
	require.NoError(t, err)
	assert.Equal(t, sumCount{sum: 12, count: 3}, acc)
}

func TestCollectAggregatesAcrossTiersToFinalOutput(t *testing.T) {
	leaf, combine, driver := reducer.Collect[int, sumCount, sumCount, float64](averageCollector{})

	a, err := reducer.Run[int, sumCount](context.Background(), leaf.Make(), sink.Slice([]int{1, 2, 3}))
	require.NoError(t, err)
	b, err := reducer.Run[int, sumCount](context.Background(), leaf.Make(), sink.Slice([]int{4, 5}))
	require.NoError(t, err)

	combined, err := reducer.Run[sumCount, sumCount](context.Background(), combine.Make(), sink.Slice([]sumCount{a, b}))
	require.NoError(t, err)

	avg, err := reducer.Run[sumCount, float64](context.Background(), driver, sink.Slice([]sumCount{combined}))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 1e-9)
}
