package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-go/amadeus/sink"
	"github.com/amadeus-go/amadeus/task"
)

func run[T any](t *testing.T, st task.Stream[T]) []T {
	t.Helper()
	c := sink.NewCollector[T]()
	err := st.IntoAsync().Run(context.Background(), c)
	require.NoError(t, err)
	return c.Items
}

func TestFromSourceDrainsIntoSink(t *testing.T) {
	st := task.FromSource(sink.Slice([]int{1, 2, 3}), 3, 3, true)
	lower, upper, known := st.SizeHint()
	assert.Equal(t, 3, lower)
	assert.Equal(t, 3, upper)
	assert.True(t, known)
	assert.Equal(t, []int{1, 2, 3}, run(t, st))
}

func TestMapAppliesFunctionToEveryItem(t *testing.T) {
	st := task.FromSource(sink.Slice([]int{1, 2, 3}), 3, 3, true)
	mapped := task.Map(st, func(v int) int { return v * v })
	assert.Equal(t, []int{1, 4, 9}, run(t, mapped))
}

func TestFilterKeepsOnlyMatching(t *testing.T) {
	st := task.FromSource(sink.Slice([]int{1, 2, 3, 4, 5}), 5, 5, true)
	pred := func(_ context.Context, v int) (bool, error) { return v%2 == 0, nil }
	filtered := task.Filter(st, pred)
	assert.Equal(t, []int{2, 4}, run(t, filtered))
}

func TestFlatMapExpandsEachItem(t *testing.T) {
	st := task.FromSource(sink.Slice([]int{1, 2, 3}), 3, 3, true)
	expanded := task.FlatMap(st, func(v int) []int { return []int{v, v} })
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3}, run(t, expanded))
}

func TestInspectDoesNotAlterSequence(t *testing.T) {
	var seen []int
	st := task.FromSource(sink.Slice([]int{1, 2, 3}), 3, 3, true)
	inspected := task.Inspect(st, func(v int) { seen = append(seen, v) })
	assert.Equal(t, []int{1, 2, 3}, run(t, inspected))
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestUpdateMutatesInPlace(t *testing.T) {
	st := task.FromSource(sink.Slice([]int{1, 2, 3}), 3, 3, true)
	updated := task.Update(st, func(v *int) { *v += 10 })
	assert.Equal(t, []int{11, 12, 13}, run(t, updated))
}

func TestIdentityPipeIsNoOp(t *testing.T) {
	st := task.FromSource(sink.Slice([]int{1, 2, 3}), 3, 3, true)
	pipe := task.Identity[int]()

	in := sink.Pump[int](context.Background(), func(ctx context.Context, out sink.Sink[int]) error {
		return st.IntoAsync().Run(ctx, out)
	})
	c := sink.NewCollector[int]()
	err := pipe.IntoAsync().Run(context.Background(), in, c)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, c.Items)
}
