package paging

import (
	"context"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/vango-dev/listkit/internal/errors"
)

// LoadState is the state of a Pager.
type LoadState int

const (
	NotLoaded LoadState = iota // Nothing requested yet
	Idle                       // Last load succeeded and more pages remain
	Loading                    // A load is in flight
	Error                      // Last load failed; Retry repeats it
	Done                       // Every page is loaded
)

// String returns the string representation of the LoadState.
func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Config configures a Pager.
type Config struct {
	// PageSize is the number of items requested per page.
	PageSize int

	// InitialLoadSize is the size of the first page. Default: 3 * PageSize.
	InitialLoadSize int

	// PrefetchDistance is how close to the end an access must be to load
	// the next page. Default: PageSize.
	PrefetchDistance int

	// EnablePlaceholders pads the snapshot with PageSize nil rows while
	// more pages remain. The item type must have a nil zero value
	// (interface, pointer, map, slice, chan or func).
	EnablePlaceholders bool
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return errors.New("E131").WithDetailf("page size %d", c.PageSize)
	}
	if c.PrefetchDistance < 0 || c.InitialLoadSize < 0 {
		return errors.New("E131").WithDetailf("prefetch distance %d, initial load size %d", c.PrefetchDistance, c.InitialLoadSize)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.InitialLoadSize == 0 {
		c.InitialLoadSize = 3 * c.PageSize
	}
	if c.PrefetchDistance == 0 {
		c.PrefetchDistance = c.PageSize
	}
	return c
}

// Observer is notified after every page load.
type Observer interface {
	PageLoaded(items int, err error)
}

type nopObserver struct{}

func (nopObserver) PageLoaded(int, error) {}

// Option configures a Pager.
type Option func(*pagerOptions)

type pagerOptions struct {
	logger   *slog.Logger
	observer Observer
}

// WithLogger sets the pager's logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *pagerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the page load observer.
func WithObserver(obs Observer) Option {
	return func(o *pagerOptions) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// Pager accumulates pages from a Source. It is safe for concurrent use;
// concurrent LoadNext calls coalesce into one request.
type Pager[K comparable, T any] struct {
	src      Source[K, T]
	cfg      Config
	logger   *slog.Logger
	observer Observer

	mu         sync.Mutex
	items      []T
	nextKey    *K
	state      LoadState
	err        error
	failedKey  *K
	generation uint64
	listeners  []func([]T)
}

// NewPager creates a pager over src.
func NewPager[K comparable, T any](src Source[K, T], cfg Config, opts ...Option) (*Pager[K, T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t := reflect.TypeFor[T](); cfg.EnablePlaceholders && !nilable(t) {
		return nil, errors.New("E131").
			WithDetailf("placeholders need a nilable item type, got %s", t).
			WithSuggestion("Use a pointer or interface item type, or disable placeholders")
	}
	o := pagerOptions{logger: slog.Default(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pager[K, T]{
		src:      src,
		cfg:      cfg.withDefaults(),
		logger:   o.logger,
		observer: o.observer,
	}, nil
}

// nilable reports whether the zero value of t is nil.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// Config returns the effective configuration.
func (p *Pager[K, T]) Config() Config {
	return p.cfg
}

// OnSnapshot registers fn to receive every new snapshot.
// fn runs on the goroutine that completed the load.
func (p *Pager[K, T]) OnSnapshot(fn func([]T)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

// State returns the current load state.
func (p *Pager[K, T]) State() LoadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the error of the last failed load, if the pager is in Error.
func (p *Pager[K, T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Snapshot returns the loaded items, followed by PageSize nil rows when
// placeholders are enabled and more pages remain.
func (p *Pager[K, T]) Snapshot() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pager[K, T]) snapshotLocked() []T {
	out := slices.Clone(p.items)
	if p.cfg.EnablePlaceholders && p.state != Done && p.state != NotLoaded {
		out = append(out, make([]T, p.cfg.PageSize)...)
	}
	return out
}

// Refresh drops every loaded page and loads the first one again.
// In-flight loads from before the refresh are discarded.
func (p *Pager[K, T]) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.generation++
	p.items = nil
	p.nextKey = nil
	p.err = nil
	p.failedKey = nil
	p.state = Loading
	gen := p.generation
	p.mu.Unlock()

	return p.load(ctx, gen, nil, p.cfg.InitialLoadSize)
}

// LoadNext loads the page after the last loaded one. It returns nil
// without loading when a load is in flight, the pager is in Error, or
// every page is loaded.
func (p *Pager[K, T]) LoadNext(ctx context.Context) error {
	p.mu.Lock()
	switch p.state {
	case NotLoaded:
		p.mu.Unlock()
		return p.Refresh(ctx)
	case Loading, Error, Done:
		p.mu.Unlock()
		return nil
	}
	p.state = Loading
	gen := p.generation
	key := p.nextKey
	p.mu.Unlock()

	return p.load(ctx, gen, key, p.cfg.PageSize)
}

// Retry repeats the load that failed. It returns nil if the pager is not in Error.
func (p *Pager[K, T]) Retry(ctx context.Context) error {
	p.mu.Lock()
	if p.state != Error {
		p.mu.Unlock()
		return nil
	}
	if len(p.items) == 0 && p.failedKey == nil {
		p.mu.Unlock()
		return p.Refresh(ctx)
	}
	p.state = Loading
	p.err = nil
	gen := p.generation
	key := p.failedKey
	p.mu.Unlock()

	return p.load(ctx, gen, key, p.cfg.PageSize)
}

func (p *Pager[K, T]) load(ctx context.Context, gen uint64, key *K, size int) error {
	res, err := p.src.Load(ctx, LoadParams[K]{Key: key, LoadSize: size})
	p.observer.PageLoaded(len(res.Items), err)

	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		p.logger.Debug("discarding page from before refresh")
		return nil
	}
	if err != nil {
		p.state = Error
		p.err = errors.New("E130").Wrap(err)
		p.failedKey = key
		err = p.err
		p.mu.Unlock()
		p.logger.Error("page load failed", "error", err)
		return err
	}

	p.items = append(p.items, res.Items...)
	p.nextKey = res.NextKey
	p.failedKey = nil
	if res.NextKey == nil {
		p.state = Done
	} else {
		p.state = Idle
	}
	snapshot := p.snapshotLocked()
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
	return nil
}
