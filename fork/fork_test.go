package fork_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-go/amadeus/fork"
	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/sink"
)

func TestPipeDeliversEveryItemToBothSinksExactlyOnce(t *testing.T) {
	left := sink.NewCollector[int]()
	right := sink.NewCollector[int]()

	err := fork.Pipe[int](context.Background(), sink.Slice([]int{1, 2, 3, 4}), left, right)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, left.Items)
	assert.Equal(t, []int{1, 2, 3, 4}, right.Items)
}

// orderRecordingSink appends a label every time it observes an item,
// so the test can confirm B (right) observes an item strictly before
// A (left) consumes the same item.
type orderRecordingSink struct {
	mu     *sync.Mutex
	label  string
	order  *[]string
	values *[]int
}

func (s orderRecordingSink) Forward(ctx context.Context, src sink.Source[int]) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			if err == sink.Done {
				return nil
			}
			return err
		}
		s.mu.Lock()
		*s.order = append(*s.order, s.label)
		*s.values = append(*s.values, v)
		s.mu.Unlock()
	}
}

func TestPipeObservesRightBeforeLeftPerItem(t *testing.T) {
	var mu sync.Mutex
	var order []string
	var leftValues, rightValues []int

	left := orderRecordingSink{mu: &mu, label: "A", order: &order, values: &leftValues}
	right := orderRecordingSink{mu: &mu, label: "B", order: &order, values: &rightValues}

	err := fork.Pipe[int](context.Background(), sink.Slice([]int{1}), left, right)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, "B", order[0])
	assert.Equal(t, "A", order[1])
}

func TestReduceCombinesTwoTerminalOpsInOnePass(t *testing.T) {
	sumLeaf, _, _ := reducer.Sum[int]()
	countLeaf, _, _ := reducer.Count[int]()

	pair, err := fork.Reduce[int, int, int64](context.Background(), sink.Slice([]int{1, 2, 3, 4, 5}), sumLeaf, countLeaf)
	require.NoError(t, err)
	assert.Equal(t, 15, pair.Left)
	assert.Equal(t, int64(5), pair.Right)
}
