// Package exec implements spec §4.5's three-stage reduction procedure
// and §4.6's pipe composition: the glue that actually runs a
// DistributedStream/DistributedPipe/reducer graph instead of merely
// describing one. Grounded on the teacher's Pipeline
// (stream/pipeline.go): NewPipeline separates description from
// execution the same way stream.FromSlice/stream.Map do, and
// runPipeline's errgroup-joined goroutines are this package's Reduce.
package exec

import (
	"context"

	"github.com/amadeus-go/amadeus/sink"
	"github.com/amadeus-go/amadeus/stream"
	"github.com/amadeus-go/amadeus/task"
)

// ConnectTask fuses a Stream[I] task with a Pipe[I, O] task into a
// single Stream[O] task, the task-level realization of spec's
// ConnectTask: a pipe stage bolted onto a stream of items at the
// per-partition granularity the engine actually schedules at.
func ConnectTask[I, O any](inner task.Stream[I], pipe task.Pipe[I, O]) task.Stream[O] {
	return connectTask[I, O]{inner: inner, pipe: pipe}
}

type connectTask[I, O any] struct {
	inner task.Stream[I]
	pipe  task.Pipe[I, O]
}

func (c connectTask[I, O]) SizeHint() (int, int, bool) {
	_, upper, upperKnown := c.inner.SizeHint()
	return 0, upper, upperKnown
}

func (c connectTask[I, O]) IntoAsync() task.StreamAsync[O] {
	return connectTaskAsync[I, O]{inner: c.inner.IntoAsync(), pipe: c.pipe}
}

type connectTaskAsync[I, O any] struct {
	inner task.StreamAsync[I]
	pipe  task.Pipe[I, O]
}

func (a connectTaskAsync[I, O]) Run(ctx context.Context, out sink.Sink[O]) error {
	in := sink.Pump[I](ctx, func(ctx context.Context, o sink.Sink[I]) error {
		return a.inner.Run(ctx, o)
	})
	return a.pipe.IntoAsync().Run(ctx, in, out)
}

// Pipe applies a DistributedPipe stage to every task a DistributedStream
// produces, fusing source and stage at the task level via ConnectTask.
// This is spec §4.6's pipe composition at the DistributedStream level,
// one tier above ConnectTask's per-task fusion.
func Pipe[I, O any](ds stream.DistributedStream[I], dp stream.DistributedPipe[I, O]) stream.DistributedStream[O] {
	return &pipeDistStream[I, O]{inner: ds, dp: dp}
}

type pipeDistStream[I, O any] struct {
	inner stream.DistributedStream[I]
	dp    stream.DistributedPipe[I, O]
}

func (p *pipeDistStream[I, O]) SizeHint() (int, int, bool) {
	_, upper, upperKnown := p.inner.SizeHint()
	return 0, upper, upperKnown
}

func (p *pipeDistStream[I, O]) NextTask() (task.Stream[O], bool) {
	t, ok := p.inner.NextTask()
	if !ok {
		return nil, false
	}
	return ConnectTask(t, p.dp.Task()), true
}
