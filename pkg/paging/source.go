package paging

import "context"

// LoadParams describes a page request. Key is nil for the first page.
type LoadParams[K comparable] struct {
	Key      *K
	LoadSize int
}

// LoadResult is a loaded page. A nil NextKey marks the last page.
type LoadResult[K comparable, T any] struct {
	Items   []T
	NextKey *K
}

// Source loads pages of items.
type Source[K comparable, T any] interface {
	Load(ctx context.Context, params LoadParams[K]) (LoadResult[K, T], error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[K comparable, T any] func(ctx context.Context, params LoadParams[K]) (LoadResult[K, T], error)

// Load calls f(ctx, params).
func (f SourceFunc[K, T]) Load(ctx context.Context, params LoadParams[K]) (LoadResult[K, T], error) {
	return f(ctx, params)
}

// SliceSource pages over an in-memory slice with integer offsets as keys.
type SliceSource[T any] struct {
	items []T
}

// NewSliceSource creates a source over items. The slice is not copied.
func NewSliceSource[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Load returns up to LoadSize items starting at the key offset.
func (s *SliceSource[T]) Load(ctx context.Context, params LoadParams[int]) (LoadResult[int, T], error) {
	if err := ctx.Err(); err != nil {
		return LoadResult[int, T]{}, err
	}
	start := 0
	if params.Key != nil {
		start = *params.Key
	}
	start = min(max(start, 0), len(s.items))
	end := min(start+max(params.LoadSize, 1), len(s.items))

	res := LoadResult[int, T]{Items: s.items[start:end:end]}
	if end < len(s.items) {
		res.NextKey = &end
	}
	return res, nil
}
