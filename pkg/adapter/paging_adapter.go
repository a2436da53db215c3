package adapter

import (
	"context"
	"sync"

	"github.com/vango-dev/listkit/pkg/paging"
)

// PageLoader is the part of a paging.Pager a PagingAdapter drives.
type PageLoader[T any] interface {
	Snapshot() []T
	State() paging.LoadState
	OnSnapshot(fn func([]T))
	Refresh(ctx context.Context) error
	LoadNext(ctx context.Context) error
	Retry(ctx context.Context) error
	Config() paging.Config
}

// PagingAdapter renders a list loaded page by page. It shares dispatch,
// binding and diffing with Adapter; only the data feed differs.
type PagingAdapter[T any] struct {
	*core[T]

	mu     sync.Mutex
	ctx    context.Context
	loader PageLoader[T]
}

// NewPagingAdapter builds a paging adapter from a configuration block.
// Nil rows from the pager render with the placeholder declaration.
func NewPagingAdapter[T any](block func(*Scope[T]), opts ...Option) (*PagingAdapter[T], error) {
	c, err := newCore(block, opts)
	if err != nil {
		return nil, err
	}
	return &PagingAdapter[T]{core: c, ctx: context.Background()}, nil
}

// Submit connects the adapter to loader. Every snapshot the loader
// publishes is diffed against the displayed list. If the loader has not
// loaded anything yet, its first page is requested in the background.
// Loads triggered by the adapter use ctx.
func (a *PagingAdapter[T]) Submit(ctx context.Context, loader PageLoader[T]) {
	a.mu.Lock()
	a.ctx = ctx
	a.loader = loader
	a.mu.Unlock()

	loader.OnSnapshot(func(items []T) {
		if a.current() != loader {
			return
		}
		a.differ.Submit(items, nil)
	})

	a.differ.Submit(loader.Snapshot(), nil)
	if loader.State() == paging.NotLoaded {
		go a.run(func(ctx context.Context) error { return loader.Refresh(ctx) })
	}
}

// LoadState returns the state of the connected loader.
func (a *PagingAdapter[T]) LoadState() paging.LoadState {
	loader := a.current()
	if loader == nil {
		return paging.NotLoaded
	}
	return loader.State()
}

// Refresh reloads the connected loader from its first page.
func (a *PagingAdapter[T]) Refresh(ctx context.Context) error {
	loader := a.current()
	if loader == nil {
		return nil
	}
	return loader.Refresh(ctx)
}

// Retry repeats the connected loader's failed load.
func (a *PagingAdapter[T]) Retry(ctx context.Context) error {
	loader := a.current()
	if loader == nil {
		return nil
	}
	return loader.Retry(ctx)
}

// Peek returns the item at position without triggering a load.
func (a *PagingAdapter[T]) Peek(position int) (T, error) {
	return a.peek(position)
}

// Item returns the item at position. Accessing a position within the
// prefetch distance of the end loads the next page in the background.
func (a *PagingAdapter[T]) Item(position int) (T, error) {
	item, err := a.peek(position)
	if err != nil {
		return item, err
	}
	if loader := a.current(); loader != nil {
		if position >= a.ItemCount()-1-loader.Config().PrefetchDistance {
			go a.run(loader.LoadNext)
		}
	}
	return item, nil
}

// BindUnit fully binds the row at position into u.
func (a *PagingAdapter[T]) BindUnit(u *Unit, position int) error {
	return a.BindUnitPayload(u, position, nil)
}

// BindUnitPayload binds the row at position into u, like Adapter.BindUnitPayload.
// Binding may trigger a page load, as Item does.
func (a *PagingAdapter[T]) BindUnitPayload(u *Unit, position int, payload any) error {
	item, err := a.Item(position)
	if err != nil {
		return err
	}
	a.bind(u, item, position, payload)
	return nil
}

func (a *PagingAdapter[T]) current() PageLoader[T] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loader
}

func (a *PagingAdapter[T]) run(load func(context.Context) error) {
	a.mu.Lock()
	ctx := a.ctx
	a.mu.Unlock()
	if err := load(ctx); err != nil {
		a.logger.Warn("page load failed", "error", err)
	}
}
