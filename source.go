package linkpager

import "context"

// Source is an offset-addressable dataset.
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	FetchPage(ctx context.Context, offset int, limit int) ([]T, error)
}

// KeyedSource can additionally fetch primary keys alone and rows by key. It
// backs the OptimizeOn fetch strategy.
type KeyedSource[T any] interface {
	Source[T]
	// FetchKeys returns the keys of the rows FetchPage would return, in the
	// same order.
	FetchKeys(ctx context.Context, offset int, limit int) ([]any, error)
	// FetchByKeys returns the rows for keys in the dataset order.
	FetchByKeys(ctx context.Context, keys []any) ([]T, error)
}

// SliceSource serves an in-memory slice. Keys are the item positions.
type SliceSource[T any] []T

func (s SliceSource[T]) Count(_ context.Context) (int64, error) {
	return int64(len(s)), nil
}

func (s SliceSource[T]) FetchPage(_ context.Context, offset int, limit int) ([]T, error) {
	lo, hi := s.bounds(offset, limit)
	return append([]T(nil), s[lo:hi]...), nil
}

func (s SliceSource[T]) FetchKeys(_ context.Context, offset int, limit int) ([]any, error) {
	lo, hi := s.bounds(offset, limit)

	keys := make([]any, 0, hi-lo)
	for i := lo; i < hi; i++ {
		keys = append(keys, i)
	}

	return keys, nil
}

func (s SliceSource[T]) FetchByKeys(_ context.Context, keys []any) ([]T, error) {
	ret := make([]T, 0, len(keys))
	for _, k := range keys {
		i, ok := k.(int)
		if !ok || i < 0 || i >= len(s) {
			continue
		}
		ret = append(ret, s[i])
	}

	return ret, nil
}

func (s SliceSource[T]) bounds(offset int, limit int) (int, int) {
	lo := min(max(offset, 0), len(s))
	hi := min(lo+max(limit, 0), len(s))

	return lo, hi
}

var _ KeyedSource[int] = SliceSource[int](nil)
