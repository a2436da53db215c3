package differ

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default OpenTelemetry tracer name.
const TracerName = "listkit"

// Observer is notified about diff activity. Implementations must be safe
// for concurrent use.
type Observer interface {
	DiffComputed(oldLen, newLen int, updates []Update, elapsed time.Duration)
	DiffApplied(updates []Update)
	DiffSuperseded()
}

type nopObserver struct{}

func (nopObserver) DiffComputed(int, int, []Update, time.Duration) {}
func (nopObserver) DiffApplied([]Update)                           {}
func (nopObserver) DiffSuperseded()                                {}

// Option configures a Differ.
type Option func(*options)

type options struct {
	executor Executor
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
}

// WithExecutor sets the executor that applies results. Default: Immediate.
func WithExecutor(e Executor) Option {
	return func(o *options) {
		if e != nil {
			o.executor = e
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the diff observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithTracer sets the tracer used for diff spans.
// Default: otel.Tracer(TracerName) from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// Differ holds the displayed list and applies the latest submission.
type Differ[T any] struct {
	cb       Callback[T]
	executor Executor
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer

	// applyMu orders the generation check, the swap and host.Apply, so
	// batches reach the host one at a time and in submission order.
	applyMu sync.Mutex

	mu         sync.Mutex
	host       ListHost
	current    []T
	generation uint64
}

// New creates a Differ with an empty current list.
func New[T any](cb Callback[T], opts ...Option) *Differ[T] {
	o := options{
		executor: Immediate,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(TracerName)
	}
	return &Differ[T]{
		cb:       cb,
		executor: o.executor,
		logger:   o.logger,
		observer: o.observer,
		tracer:   o.tracer,
	}
}

// Attach sets the host that receives updates. Attaching replaces any
// previous host; the new host should already reflect Current.
func (d *Differ[T]) Attach(h ListHost) {
	d.mu.Lock()
	d.host = h
	d.mu.Unlock()
}

// Current returns the list the host currently displays.
// Callers must not modify it.
func (d *Differ[T]) Current() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Len returns the length of the current list.
func (d *Differ[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.current)
}

// Submit replaces the displayed list with next. done, if non-nil, runs on
// the executor after next has been applied. It never runs if a later
// Submit supersedes this one.
//
// Callers must not modify next after submitting it. Host.Apply must not
// call Submit synchronously when the executor is Immediate.
func (d *Differ[T]) Submit(next []T, done func()) {
	d.mu.Lock()
	d.generation++
	gen := d.generation
	old := d.current
	d.mu.Unlock()

	if sameList(old, next) {
		if done != nil {
			d.executor.Post(done)
		}
		return
	}

	// Trivial transitions skip the background diff.
	if len(old) == 0 || len(next) == 0 {
		updates := Compute(old, next, d.cb)
		d.executor.Post(func() { d.apply(gen, next, updates, done) })
		return
	}

	go func() {
		updates := d.compute(gen, old, next)
		d.executor.Post(func() { d.apply(gen, next, updates, done) })
	}()
}

func (d *Differ[T]) compute(gen uint64, old, next []T) []Update {
	_, span := d.tracer.Start(context.Background(), "listkit.diff",
		trace.WithAttributes(
			attribute.Int("listkit.old_size", len(old)),
			attribute.Int("listkit.new_size", len(next)),
			attribute.Int64("listkit.generation", int64(gen)),
		),
	)
	defer span.End()

	start := time.Now()
	updates := Compute(old, next, d.cb)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("listkit.updates", len(updates)))
	d.observer.DiffComputed(len(old), len(next), updates, elapsed)
	return updates
}

func (d *Differ[T]) apply(gen uint64, next []T, updates []Update, done func()) {
	if !d.applyLocked(gen, next, updates) {
		return
	}
	if done != nil {
		done()
	}
}

// applyLocked hands updates to the host unless gen was superseded.
// Host calls never overlap. done runs outside the lock so it may Submit.
func (d *Differ[T]) applyLocked(gen uint64, next []T, updates []Update) bool {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		d.logger.Debug("diff superseded", "generation", gen)
		d.observer.DiffSuperseded()
		return false
	}
	d.current = next
	host := d.host
	d.mu.Unlock()

	if host != nil && len(updates) > 0 {
		host.Apply(updates)
	}
	d.observer.DiffApplied(updates)
	return true
}

// sameList reports whether two slices share the same backing array and length.
func sameList[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
