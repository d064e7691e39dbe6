// Package source holds the engine's minimal built-in DistributedStream
// sources — connector adaptors live firmly out of scope (spec §9), but
// an in-memory slice, channel, and range generator are what the
// terminal-operation tests and the demo CLI actually need to seed a
// stream without a connector.
package source

import (
	"github.com/amadeus-go/amadeus/sink"
	"github.com/amadeus-go/amadeus/stream"
	"github.com/amadeus-go/amadeus/task"
)

// Slice is an alias for stream.FromSlice, kept here so callers reaching
// for "a built-in source" find every option — Slice included — under one
// package rather than having to know Slice lives with the builder types.
func Slice[T any](xs []T) stream.DistributedStream[T] {
	return stream.FromSlice(xs)
}

// Chan builds a single-task DistributedStream draining c until it is
// closed. Unlike Slice, the size hint is unknown: a channel's remaining
// length isn't observable.
func Chan[T any](c <-chan T) stream.DistributedStream[T] {
	return &chanDistStream[T]{c: c}
}

type chanDistStream[T any] struct {
	c    <-chan T
	done bool
}

func (s *chanDistStream[T]) SizeHint() (int, int, bool) {
	if s.done {
		return 0, 0, true
	}
	return 0, 0, false
}

func (s *chanDistStream[T]) NextTask() (task.Stream[T], bool) {
	if s.done {
		return nil, false
	}
	s.done = true
	return task.FromSource(sink.Chan(s.c), 0, 0, false), true
}

// Range builds a single-task DistributedStream yielding the half-open
// integer sequence [lo, hi).
func Range(lo, hi int) stream.DistributedStream[int] {
	if hi < lo {
		hi = lo
	}
	n := hi - lo
	xs := make([]int, n)
	for i := range xs {
		xs[i] = lo + i
	}
	return stream.FromSlice(xs)
}

// Chunked splits xs into up to numTasks roughly-equal tasks (sizes
// differ by at most one, earlier tasks getting the remainder), unlike
// Slice/Range/FromSlice, which always hand the whole input to a single
// task. partition.Balance partitions at task granularity, so a stream
// whose every call yields exactly one task can never actually spread
// across more than one process or thread; Chunked is the built-in
// source that gives Balance more than one task to distribute when a
// caller wants to exercise real multi-worker fan-out.
func Chunked[T any](xs []T, numTasks int) stream.DistributedStream[T] {
	if numTasks < 1 {
		numTasks = 1
	}
	if numTasks > len(xs) {
		numTasks = len(xs)
	}
	if numTasks < 1 {
		numTasks = 1
	}

	chunks := make([][]T, 0, numTasks)
	n := len(xs)
	base := n / numTasks
	rem := n % numTasks
	start := 0
	for i := 0; i < numTasks; i++ {
		size := base
		if i < rem {
			size++
		}
		chunks = append(chunks, xs[start:start+size])
		start += size
	}
	return &chunkedDistStream[T]{chunks: chunks}
}

type chunkedDistStream[T any] struct {
	chunks [][]T
	i      int
}

func (s *chunkedDistStream[T]) SizeHint() (int, int, bool) {
	remaining := 0
	for _, c := range s.chunks[s.i:] {
		remaining += len(c)
	}
	return remaining, remaining, true
}

func (s *chunkedDistStream[T]) NextTask() (task.Stream[T], bool) {
	if s.i >= len(s.chunks) {
		return nil, false
	}
	c := s.chunks[s.i]
	s.i++
	return task.FromSource(sink.Slice(c), len(c), len(c), true), true
}
