package sample

import (
	"github.com/vango-dev/listkit/pkg/adapter"
)

// Declare configures the Title and Content variants and the loading row.
func Declare(s *adapter.Scope[Item]) {
	adapter.Item(s, NewTitleView, func(it *adapter.ItemScope[*TextView, Title]) {
		it.Key(func(t Title) any { return t.ID })
		it.Span(adapter.SpanFull)
		adapter.PayloadOf(it, func(t Title) string { return t.Text }, func(b *adapter.BindScope[*TextView, Title]) {
			b.View().SetText(b.Data().Text)
		})
	})
	adapter.Item(s, NewContentView, func(it *adapter.ItemScope[*TextView, Content]) {
		it.Key(func(c Content) any { return c.ID })
		adapter.PayloadOf(it, func(c Content) string { return c.Text }, func(b *adapter.BindScope[*TextView, Content]) {
			b.View().SetText(b.Data().Text)
		})
	})
	adapter.Placeholder(s, NewLoadingView, func(v *TextView) {
		v.SetText("loading…")
	}, adapter.PlaceholderSpan(adapter.SpanFull))
}

// NewAdapter creates the in-memory demo adapter.
func NewAdapter(opts ...adapter.Option) (*adapter.Adapter[Item], error) {
	return adapter.NewAdapter(Declare, opts...)
}

// NewPagingAdapter creates the paged demo adapter.
func NewPagingAdapter(opts ...adapter.Option) (*adapter.PagingAdapter[Item], error) {
	return adapter.NewPagingAdapter(Declare, opts...)
}
