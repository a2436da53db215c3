package adapter

import (
	"context"
	"reflect"

	"github.com/vango-dev/listkit/internal/errors"
)

// Scope is the root configuration scope passed to an adapter block.
// It declares item variants with Item and the loading row with Placeholder.
//
// A Scope is only valid while the block runs.
type Scope[T any] struct {
	builder *Builder[T]
	closed  bool
}

func newScope[T any](b *Builder[T]) *Scope[T] {
	return &Scope[T]{builder: b}
}

func (s *Scope[T]) usable(what string) bool {
	if s.closed {
		s.builder.fail(errors.New("E104").WithDetailf("%s called after the adapter block returned", what))
		return false
	}
	return true
}

// Configure runs block against a fresh builder and returns the frozen registry.
func Configure[T any](block func(*Scope[T])) (*Registry[T], error) {
	b := NewBuilder[T]()
	s := newScope(b)
	if block != nil {
		block(s)
	}
	s.closed = true
	return b.Build()
}

// Item declares the variant for data type D, rendered by views from create.
//
//	adapter.Item(s, newTitleView, func(it *adapter.ItemScope[*TitleView, Title]) {
//	    it.Key(func(t Title) any { return t.ID })
//	    it.Span(adapter.SpanFull)
//	    adapter.PayloadOf(it, func(t Title) string { return t.Text }, func(b *adapter.BindScope[*TitleView, Title]) {
//	        b.View().SetText(b.Data().Text)
//	    })
//	})
func Item[T, D, V any](s *Scope[T], create ViewFactory[V], block func(*ItemScope[V, D])) {
	if !s.usable("Item") {
		return
	}
	dataType := reflect.TypeFor[D]()
	if create == nil {
		s.builder.fail(errors.New("E105").WithDetailf("item %s", typeName(dataType)))
		return
	}

	is := &ItemScope[V, D]{owner: s.builder.fail, span: defaultSpan}
	if block != nil {
		block(is)
	}
	is.closed = true

	s.builder.addVariant(is.build(dataType, create))
}

// PlaceholderOption configures a placeholder declaration.
type PlaceholderOption func(*placeholder)

// PlaceholderTypeID overrides the placeholder's view type.
func PlaceholderTypeID(id int) PlaceholderOption {
	return func(p *placeholder) {
		p.typeID = id
	}
}

// PlaceholderSpan sets the placeholder's span. The default is one column.
func PlaceholderSpan(span Span) PlaceholderOption {
	return func(p *placeholder) {
		if span != nil {
			p.span = span
		}
	}
}

// Placeholder declares the row rendered for nil items, such as pages that
// have not loaded yet. setup runs once per placeholder unit.
func Placeholder[T, V any](s *Scope[T], create ViewFactory[V], setup func(V), opts ...PlaceholderOption) {
	if !s.usable("Placeholder") {
		return
	}
	if create == nil {
		s.builder.fail(errors.New("E105").WithDetail("placeholder"))
		return
	}
	p := &placeholder{
		typeID: DefaultPlaceholderTypeID,
		create: func(ctx context.Context) any { return create(ctx) },
		binder: &placeholderBinder[V]{setupFn: setup},
		span:   defaultSpan,
	}
	for _, opt := range opts {
		opt(p)
	}
	s.builder.setPlaceholder(p)
}

// ItemScope configures one variant. It is only valid inside its Item block.
type ItemScope[V, D any] struct {
	owner  func(error)
	closed bool

	key      func(D) any
	span     Span
	setup    func(V)
	before   func(*BindScope[V, D])
	full     func(*BindScope[V, D])
	after    func(*BindScope[V, D])
	payloads []payloadRule[V, D]
}

func (s *ItemScope[V, D]) usable(what string) bool {
	if s.closed {
		s.owner(errors.New("E104").WithDetailf("%s called after the item block returned", what))
		return false
	}
	return true
}

// Key sets the identity key extractor. Keys must be stable for the life of
// a row and unique within one list. The default key is the item itself.
func (s *ItemScope[V, D]) Key(fn func(D) any) {
	if s.usable("Key") {
		s.key = fn
	}
}

// Span sets how many grid columns the item occupies.
func (s *ItemScope[V, D]) Span(span Span) {
	if s.usable("Span") && span != nil {
		s.span = span
	}
}

// Setup runs once per unit, before its first bind.
func (s *ItemScope[V, D]) Setup(fn func(V)) {
	if s.usable("Setup") {
		s.setup = fn
	}
}

// BeforeBind runs before every full or partial bind.
func (s *ItemScope[V, D]) BeforeBind(fn func(*BindScope[V, D])) {
	if s.usable("BeforeBind") {
		s.before = fn
	}
}

// Bind sets the full bind. Without it, a full bind runs every payload
// bind in declaration order.
func (s *ItemScope[V, D]) Bind(fn func(*BindScope[V, D])) {
	if s.usable("Bind") {
		s.full = fn
	}
}

// AfterBind runs after every full or partial bind.
func (s *ItemScope[V, D]) AfterBind(fn func(*BindScope[V, D])) {
	if s.usable("AfterBind") {
		s.after = fn
	}
}

// Payload appends a payload rule. When compare reports two versions of an
// item unequal, only bind runs for that aspect instead of a full rebind.
func (s *ItemScope[V, D]) Payload(compare func(old, new D) bool, bind func(*BindScope[V, D])) {
	if !s.usable("Payload") || compare == nil || bind == nil {
		return
	}
	s.payloads = append(s.payloads, payloadRule[V, D]{compare: compare, bind: bind})
}

// PayloadOf appends a payload rule that compares the result of get like
// identity keys: with == when comparable, reflect.DeepEqual otherwise.
func PayloadOf[V, D any, C comparable](s *ItemScope[V, D], get func(D) C, bind func(*BindScope[V, D])) {
	if get == nil {
		return
	}
	s.Payload(func(old, new D) bool { return keysEqual(get(old), get(new)) }, bind)
}

func (s *ItemScope[V, D]) build(dataType reflect.Type, create ViewFactory[V]) *variant {
	key := s.key
	if key == nil {
		key = func(d D) any { return d }
	}
	b := &itemBinder[V, D]{
		setupFn: s.setup,
		before:  s.before,
		full:    s.full,
		after:   s.after,
	}
	c := &itemComparer[D]{key: key}
	for _, p := range s.payloads {
		b.payloads = append(b.payloads, p.bind)
		c.compares = append(c.compares, p.compare)
	}
	return &variant{
		dataType: dataType,
		create:   func(ctx context.Context) any { return create(ctx) },
		binder:   b,
		span:     s.span,
		diff:     c,
	}
}
