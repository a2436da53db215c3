package adapter

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/listkit/internal/errors"
	"github.com/vango-dev/listkit/pkg/differ"
)

// BindObserver is notified after every bind that ran callbacks.
// Implementations must be safe for concurrent use.
type BindObserver interface {
	Bound(viewType int, kind ChangeKind)
}

type nopBindObserver struct{}

func (nopBindObserver) Bound(int, ChangeKind) {}

// Option configures an adapter.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	bindObserver BindObserver
	differOpts   []differ.Option
}

// WithLogger sets the adapter's logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
			o.differOpts = append(o.differOpts, differ.WithLogger(l))
		}
	}
}

// WithExecutor sets the executor that applies list updates on the render
// context. Default: differ.Immediate.
func WithExecutor(e differ.Executor) Option {
	return func(o *options) {
		o.differOpts = append(o.differOpts, differ.WithExecutor(e))
	}
}

// WithDiffObserver sets the observer of diff activity.
func WithDiffObserver(obs differ.Observer) Option {
	return func(o *options) {
		o.differOpts = append(o.differOpts, differ.WithObserver(obs))
	}
}

// WithBindObserver sets the observer of bind activity.
func WithBindObserver(obs BindObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.bindObserver = obs
		}
	}
}

// WithTracer sets the tracer for diff spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.differOpts = append(o.differOpts, differ.WithTracer(t))
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:       slog.Default(),
		bindObserver: nopBindObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// core is the dispatch and bind machinery shared by Adapter and PagingAdapter.
type core[T any] struct {
	registry *Registry[T]
	differ   *differ.Differ[T]
	logger   *slog.Logger
	observer BindObserver
}

func newCore[T any](block func(*Scope[T]), opts []Option) (*core[T], error) {
	registry, err := Configure(block)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &core[T]{
		registry: registry,
		differ:   differ.New[T](diffCallback[T]{registry.Callback()}, o.differOpts...),
		logger:   o.logger,
		observer: o.bindObserver,
	}, nil
}

// Registry returns the adapter's frozen dispatch table.
func (c *core[T]) Registry() *Registry[T] {
	return c.registry
}

// Attach sets the host that receives list updates.
func (c *core[T]) Attach(h differ.ListHost) {
	c.differ.Attach(h)
}

// ItemCount returns the number of rows currently displayed.
func (c *core[T]) ItemCount() int {
	return c.differ.Len()
}

// Items returns the list currently displayed. Callers must not modify it.
func (c *core[T]) Items() []T {
	return c.differ.Current()
}

// ItemViewType returns the view type of the row at position.
func (c *core[T]) ItemViewType(position int) (int, error) {
	item, err := c.peek(position)
	if err != nil {
		return 0, err
	}
	return c.registry.ViewTypeOf(item)
}

// SpanOf evaluates the span of a view type.
func (c *core[T]) SpanOf(viewType, total int) (int, error) {
	return c.registry.SpanOf(viewType, total)
}

// SpanSizeLookup returns a lookup from position to span for a grid with
// total columns. Positions that fail to resolve occupy one column.
func (c *core[T]) SpanSizeLookup(total int) func(position int) int {
	return func(position int) int {
		vt, err := c.ItemViewType(position)
		if err != nil {
			c.logger.Error("span lookup failed", "position", position, "error", err)
			return 1
		}
		span, err := c.registry.SpanOf(vt, total)
		if err != nil {
			return 1
		}
		return span
	}
}

// CreateUnit creates an unbound unit for a view type.
func (c *core[T]) CreateUnit(ctx context.Context, viewType int) (*Unit, error) {
	return c.registry.CreateUnit(ctx, viewType)
}

func (c *core[T]) peek(position int) (T, error) {
	items := c.differ.Current()
	if position < 0 || position >= len(items) {
		var zero T
		return zero, errors.New("E113").WithDetailf("position %d of %d", position, len(items))
	}
	return items[position], nil
}

func (c *core[T]) bind(u *Unit, item T, position int, payload any) {
	change := All
	if payload != nil {
		ch, ok := payload.(Change)
		if !ok {
			return
		}
		change = ch
	}
	if isNil(any(item)) && !u.placeholder {
		c.logger.Debug("skipping bind of nil item", "position", position)
		return
	}
	if u.Bind(any(item), position, change) {
		c.observer.Bound(u.viewType, change.kind)
	}
}

// Adapter renders an in-memory list.
type Adapter[T any] struct {
	*core[T]
}

// NewAdapter builds an adapter from a configuration block.
//
//	a, err := adapter.NewAdapter(func(s *adapter.Scope[Item]) {
//	    adapter.Item(s, newTitleView, func(it *adapter.ItemScope[*TitleView, Title]) { ... })
//	    adapter.Item(s, newContentView, func(it *adapter.ItemScope[*ContentView, Content]) { ... })
//	})
func NewAdapter[T any](block func(*Scope[T]), opts ...Option) (*Adapter[T], error) {
	c, err := newCore(block, opts)
	if err != nil {
		return nil, err
	}
	return &Adapter[T]{core: c}, nil
}

// Submit replaces the list. The diff runs in the background and the most
// recent submission wins.
func (a *Adapter[T]) Submit(items []T) {
	a.differ.Submit(items, nil)
}

// SubmitWithCallback is Submit with a function that runs once items are
// displayed. done never runs if a later submission supersedes this one.
func (a *Adapter[T]) SubmitWithCallback(items []T, done func()) {
	a.differ.Submit(items, done)
}

// BindUnit fully binds the row at position into u.
func (a *Adapter[T]) BindUnit(u *Unit, position int) error {
	return a.BindUnitPayload(u, position, nil)
}

// BindUnitPayload binds the row at position into u. A nil payload binds
// everything; a Change payload selects the rebind; other payloads are ignored.
func (a *Adapter[T]) BindUnitPayload(u *Unit, position int, payload any) error {
	item, err := a.peek(position)
	if err != nil {
		return err
	}
	a.bind(u, item, position, payload)
	return nil
}
