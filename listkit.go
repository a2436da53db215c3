// Package listkit provides the public API for declarative list adapters.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/listkit"
//
// Usage:
//
//	a, err := listkit.NewAdapter(func(s *adapter.Scope[Item]) {
//	    listkit.Item(s, newTitleView, func(it *adapter.ItemScope[*TitleView, Title]) {
//	        it.Key(func(t Title) any { return t.ID })
//	        it.Span(listkit.SpanFull)
//	        listkit.PayloadOf(it, func(t Title) string { return t.Text }, func(b *adapter.BindScope[*TitleView, Title]) {
//	            b.View().SetText(b.Data().Text)
//	        })
//	    })
//	})
//	a.Attach(host)
//	a.Submit(items)
package listkit

import (
	"github.com/vango-dev/listkit/pkg/adapter"
)

// =============================================================================
// Adapters
// =============================================================================

// Option configures an adapter.
type Option = adapter.Option

// Unit is a view bound to list rows by an adapter.
type Unit = adapter.Unit

// NewAdapter builds an adapter over an in-memory list.
func NewAdapter[T any](block func(*adapter.Scope[T]), opts ...Option) (*adapter.Adapter[T], error) {
	return adapter.NewAdapter(block, opts...)
}

// MustNewAdapter is NewAdapter, panicking on a configuration error.
// Use it for adapters declared at package level.
func MustNewAdapter[T any](block func(*adapter.Scope[T]), opts ...Option) *adapter.Adapter[T] {
	a, err := adapter.NewAdapter(block, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// NewPagingAdapter builds an adapter over a paging.Pager.
func NewPagingAdapter[T any](block func(*adapter.Scope[T]), opts ...Option) (*adapter.PagingAdapter[T], error) {
	return adapter.NewPagingAdapter(block, opts...)
}

// =============================================================================
// Declarations
// =============================================================================

// Item declares the variant for data type D. See adapter.Item.
func Item[T, D, V any](s *adapter.Scope[T], create adapter.ViewFactory[V], block func(*adapter.ItemScope[V, D])) {
	adapter.Item(s, create, block)
}

// Placeholder declares the row shown for nil items. See adapter.Placeholder.
func Placeholder[T, V any](s *adapter.Scope[T], create adapter.ViewFactory[V], setup func(V), opts ...adapter.PlaceholderOption) {
	adapter.Placeholder(s, create, setup, opts...)
}

// PayloadOf declares a partial rebind keyed on one field. See adapter.PayloadOf.
func PayloadOf[V, D any, C comparable](s *adapter.ItemScope[V, D], get func(D) C, bind func(*adapter.BindScope[V, D])) {
	adapter.PayloadOf(s, get, bind)
}

// =============================================================================
// Spans and changes
// =============================================================================

// Span decides how many columns a row occupies.
type Span = adapter.Span

// SpanFull occupies the whole row.
var SpanFull = adapter.SpanFull

// SpanSize occupies n columns, clamped to the row.
func SpanSize(n int) Span { return adapter.SpanSize(n) }

// Change describes what a bind must refresh.
type Change = adapter.Change

// ChangeKind is the kind of a Change.
type ChangeKind = adapter.ChangeKind

// None skips the bind; All rebinds everything.
var (
	None = adapter.None
	All  = adapter.All
)

// Part selects the payload binds at the given declaration indices.
func Part(indices ...int) Change { return adapter.Part(indices...) }
