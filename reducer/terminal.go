package reducer

// Number is the set of built-in types Sum can accumulate over, the Go
// stand-in for spec's item-type Sum trait bound (§4.8).
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Option is the Go rendering of Rust's Option<T>, used wherever a
// terminal operation's result is absent for an empty stream (min, max,
// combine).
type Option[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }
func None[T any]() Option[T]    { var zero T; return Option[T]{Value: zero} }

func optionCombine[T any](pick func(a, b T) T) func(Option[T], Option[T]) Option[T] {
	return func(a, b Option[T]) Option[T] {
		switch {
		case !a.Valid:
			return b
		case !b.Valid:
			return a
		default:
			return Some(pick(a.Value, b.Value))
		}
	}
}

// Count builds the three-tier reducer set for spec's count(): an
// integer accumulator that sums partial counts between tiers.
func Count[T any]() (Factory[T, int64], Factory[int64, int64], Reducer[int64, int64]) {
	return MonoidReducers[T, int64](
		Monoid[int64]{Identity: 0, Combine: func(a, b int64) int64 { return a + b }},
		func(T) int64 { return 1 },
	)
}

// Sum builds the three-tier reducer set for spec's sum::<S>(): items are
// summed using S's addition, partials summed the same way.
func Sum[T Number]() (Factory[T, T], Factory[T, T], Reducer[T, T]) {
	return MonoidReducers[T, T](
		Monoid[T]{Identity: 0, Combine: func(a, b T) T { return a + b }},
		func(t T) T { return t },
	)
}

// Min builds the reducer set for spec's min(): a monoidal minimum over
// Option[T], None iff the stream was empty.
func Min[T any](less func(a, b T) bool) (Factory[T, Option[T]], Factory[Option[T], Option[T]], Reducer[Option[T], Option[T]]) {
	pick := func(a, b T) T {
		if less(b, a) {
			return b
		}
		return a
	}
	return MonoidReducers[T, Option[T]](
		Monoid[Option[T]]{Identity: None[T](), Combine: optionCombine(pick)},
		Some[T],
	)
}

// Max is Min with the comparator inverted.
func Max[T any](less func(a, b T) bool) (Factory[T, Option[T]], Factory[Option[T], Option[T]], Reducer[Option[T], Option[T]]) {
	return Min[T](func(a, b T) bool { return less(b, a) })
}

// MinByKey and MaxByKey compare items by a derived key, the Go
// equivalent of spec's min_by_key/max_by_key.
func MinByKey[T any, K any](key func(T) K, less func(a, b K) bool) (Factory[T, Option[T]], Factory[Option[T], Option[T]], Reducer[Option[T], Option[T]]) {
	return Min[T](func(a, b T) bool { return less(key(a), key(b)) })
}

func MaxByKey[T any, K any](key func(T) K, less func(a, b K) bool) (Factory[T, Option[T]], Factory[Option[T], Option[T]], Reducer[Option[T], Option[T]]) {
	return Max[T](func(a, b T) bool { return less(key(a), key(b)) })
}

// Combine builds the reducer set for spec's combine(f): a binary
// associative reduction whose result is None iff the stream was empty.
func Combine[T any](f func(a, b T) T) (Factory[T, Option[T]], Factory[Option[T], Option[T]], Reducer[Option[T], Option[T]]) {
	return MonoidReducers[T, Option[T]](
		Monoid[Option[T]]{Identity: None[T](), Combine: optionCombine(f)},
		Some[T],
	)
}

// All and Any build the conjunction and disjunction reducers for spec's
// all(p)/any(p). They do not short-circuit at any tier: foldReducer.Forward
// drains its source to completion regardless of the accumulator's value,
// so a false (All) or true (Any) partway through a stream does not stop
// the remaining items from being read. The result is still correct, just
// not early-exiting.
func All[T any](p func(T) bool) (Factory[T, bool], Factory[bool, bool], Reducer[bool, bool]) {
	return MonoidReducers[T, bool](
		Monoid[bool]{Identity: true, Combine: func(a, b bool) bool { return a && b }},
		p,
	)
}

func Any[T any](p func(T) bool) (Factory[T, bool], Factory[bool, bool], Reducer[bool, bool]) {
	return MonoidReducers[T, bool](
		Monoid[bool]{Identity: false, Combine: func(a, b bool) bool { return a || b }},
		p,
	)
}

// CollectSlice builds the reducer set for spec's collect::<Vec<_>>():
// leaf reducers accumulate their share into a slice, and slices are
// concatenated between tiers. Order across partitions is not
// guaranteed (spec §5); the result is a multiset of the input, as
// spec's testable property 6 / scenario E3 require.
func CollectSlice[T any]() (Factory[T, []T], Factory[[]T, []T], Reducer[[]T, []T]) {
	return MonoidReducers[T, []T](
		Monoid[[]T]{Identity: nil, Combine: func(a, b []T) []T { return append(append([]T{}, a...), b...) }},
		func(t T) []T { return []T{t} },
	)
}
