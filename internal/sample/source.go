package sample

import (
	"context"
	"time"

	"github.com/vango-dev/listkit/pkg/paging"
)

// Source generates demo pages keyed by the first id of the page.
type Source struct {
	// Limit is the number of items in the list. Zero means endless.
	Limit int

	// Latency is slept before every page, honoring ctx.
	Latency time.Duration
}

// Load implements paging.Source.
func (s Source) Load(ctx context.Context, params paging.LoadParams[int]) (paging.LoadResult[int, Item], error) {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return paging.LoadResult[int, Item]{}, ctx.Err()
		}
	}
	from := 0
	if params.Key != nil {
		from = *params.Key
	}
	to := from + max(params.LoadSize, 1)
	if s.Limit > 0 {
		to = min(to, s.Limit)
	}

	res := paging.LoadResult[int, Item]{Items: Build(from, to)}
	if s.Limit <= 0 || to < s.Limit {
		res.NextKey = &to
	}
	return res, nil
}
