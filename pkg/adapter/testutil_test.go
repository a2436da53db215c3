package adapter

import (
	"context"
	"strings"
	"testing"
)

// row is the item type of the test adapters.
type row interface {
	rowID() int
}

type textRow struct {
	ID    int
	Text  string
	Color string
	Size  int
	Flag  bool
}

func (r textRow) rowID() int { return r.ID }

type imageRow struct {
	ID  int
	URL string
}

func (r imageRow) rowID() int { return r.ID }

type orphanRow struct{ ID int }

func (r orphanRow) rowID() int { return r.ID }

// recorder collects bind callbacks in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

func (r *recorder) String() string { return strings.Join(r.calls, ",") }

func (r *recorder) reset() { r.calls = nil }

type testView struct {
	kind string
	text string
}

func newTextView(context.Context) *testView  { return &testView{kind: "text"} }
func newImageView(context.Context) *testView { return &testView{kind: "image"} }
func newLoadingView(context.Context) *testView {
	return &testView{kind: "loading"}
}

// declareRows declares textRow with four payload rules and imageRow with a
// full bind, logging into rec.
func declareRows(rec *recorder) func(*Scope[row]) {
	return func(s *Scope[row]) {
		Item(s, newTextView, func(it *ItemScope[*testView, textRow]) {
			it.Key(func(r textRow) any { return r.ID })
			it.Setup(func(v *testView) { rec.add("setup") })
			it.BeforeBind(func(b *BindScope[*testView, textRow]) { rec.add("before") })
			PayloadOf(it, func(r textRow) string { return r.Text }, func(b *BindScope[*testView, textRow]) {
				b.View().text = b.Data().Text
				rec.add("p0")
			})
			PayloadOf(it, func(r textRow) string { return r.Color }, func(b *BindScope[*testView, textRow]) {
				rec.add("p1")
			})
			PayloadOf(it, func(r textRow) int { return r.Size }, func(b *BindScope[*testView, textRow]) {
				rec.add("p2")
			})
			it.Payload(func(o, n textRow) bool { return o.Flag == n.Flag }, func(b *BindScope[*testView, textRow]) {
				rec.add("p3")
			})
			it.AfterBind(func(b *BindScope[*testView, textRow]) { rec.add("after") })
		})
		Item(s, newImageView, func(it *ItemScope[*testView, imageRow]) {
			it.Key(func(r imageRow) any { return r.ID })
			it.Span(SpanFull)
			it.Bind(func(b *BindScope[*testView, imageRow]) {
				b.View().text = b.Data().URL
				rec.add("full")
			})
			PayloadOf(it, func(r imageRow) string { return r.URL }, func(b *BindScope[*testView, imageRow]) {
				rec.add("url")
			})
		})
	}
}

func mustRegistry(t *testing.T, block func(*Scope[row])) *Registry[row] {
	t.Helper()
	r, err := Configure(block)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	return r
}
