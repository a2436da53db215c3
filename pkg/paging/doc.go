// Package paging loads lists incrementally from a paged source.
//
// A Source answers one question: given a key, return the next page and the
// key after it. A Pager accumulates pages into a single list snapshot,
// optionally padded with nil placeholder rows while more pages remain, and
// notifies listeners whenever the snapshot changes.
//
//	src := paging.SourceFunc[int, Item](func(ctx context.Context, p paging.LoadParams[int]) (paging.LoadResult[int, Item], error) {
//	    ...
//	})
//	pager, err := paging.NewPager(src, paging.Config{PageSize: 30})
//	if err := pager.Refresh(ctx); err != nil { ... }
//	items := pager.Snapshot()
package paging
