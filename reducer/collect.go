package reducer

// FromDistributedStream is implemented by a custom collector type B that
// knows how to build its own three-tier reducer set for an item type T —
// the Go rendering of spec's `FromDistributedStream<T>` bound behind
// `collect::<B>()`. Go interfaces cannot carry generic methods, so the
// intermediate accumulator types A (thread tier) and B (process tier)
// are parameters of the interface itself rather than of a single method.
type FromDistributedStream[T, A, B, O any] interface {
	Reducers() (Factory[T, A], Factory[A, B], Reducer[B, O])
}

// Collect is the generic form of spec's collect::<B>(): it simply
// delegates to the collector's own Reducers, giving exec a uniform way
// to obtain a Decomposition's three reducer artifacts whether they come
// from a built-in terminal op or a user-supplied collector.
func Collect[T, A, B, O any](collector FromDistributedStream[T, A, B, O]) (Factory[T, A], Factory[A, B], Reducer[B, O]) {
	return collector.Reducers()
}
