package sample

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/listkit/pkg/adapter"
	"github.com/vango-dev/listkit/pkg/host/term"
	"github.com/vango-dev/listkit/pkg/paging"
)

func TestBuild(t *testing.T) {
	items := Build(0, 42)
	if len(items) != 42 {
		t.Fatalf("len = %d, want 42", len(items))
	}
	for i, it := range items {
		if it.ItemID() != i {
			t.Errorf("items[%d].ItemID() = %d", i, it.ItemID())
		}
		_, isTitle := it.(Title)
		if want := i%TitleEvery == 0; isTitle != want {
			t.Errorf("items[%d] is title = %v, want %v", i, isTitle, want)
		}
	}
	if got := len(Build(5, 3)); got != 0 {
		t.Errorf("len(Build(5, 3)) = %d, want 0", got)
	}
}

func TestRetitle(t *testing.T) {
	items := Build(0, 21)
	next := Retitle(items, 7)

	if got := next[0].(Title).Text; got != "this is title 0 [7]" {
		t.Errorf("title = %q", got)
	}
	if next[1] != items[1] {
		t.Error("content row changed")
	}
	if items[0].(Title).Text != "this is title 0" {
		t.Error("Retitle modified its input")
	}
}

func TestSource(t *testing.T) {
	ctx := context.Background()
	src := Source{Limit: 25}

	first, err := src.Load(ctx, paging.LoadParams[int]{LoadSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Items) != 20 || first.NextKey == nil || *first.NextKey != 20 {
		t.Fatalf("first page = %d items, next %v", len(first.Items), first.NextKey)
	}
	last, err := src.Load(ctx, paging.LoadParams[int]{Key: first.NextKey, LoadSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(last.Items) != 5 || last.NextKey != nil {
		t.Errorf("last page = %d items, next %v; want 5, nil", len(last.Items), last.NextKey)
	}
	if _, ok := last.Items[0].(Title); !ok {
		t.Errorf("item 20 = %T, want Title", last.Items[0])
	}
}

func TestSourceEndless(t *testing.T) {
	key := 1000
	res, err := Source{}.Load(context.Background(), paging.LoadParams[int]{Key: &key, LoadSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.NextKey == nil || *res.NextKey != 1010 {
		t.Errorf("NextKey = %v, want 1010", res.NextKey)
	}
}

func TestSourceLatencyHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Source{Latency: time.Hour}.Load(ctx, paging.LoadParams[int]{LoadSize: 1})
	if err == nil {
		t.Error("Load() with cancelled context should fail")
	}
}

func TestDeclare(t *testing.T) {
	r, err := adapter.Configure(Declare)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if r.Len() != 2 || !r.HasPlaceholder() {
		t.Errorf("Len() = %d, HasPlaceholder() = %v; want 2, true", r.Len(), r.HasPlaceholder())
	}

	titleType, _ := r.ViewTypeOf(Title{ID: 0})
	contentType, _ := r.ViewTypeOf(Content{ID: 1})
	if span, _ := r.SpanOf(titleType, 8); span != 8 {
		t.Errorf("title span = %d, want 8", span)
	}
	if span, _ := r.SpanOf(contentType, 8); span != 1 {
		t.Errorf("content span = %d, want 1", span)
	}

	cb := r.Callback()
	old, next := Title{ID: 0, Text: "a"}, Title{ID: 0, Text: "b"}
	if !cb.AreItemsTheSame(old, next) {
		t.Error("titles with the same id should be the same item")
	}
	if got := cb.ChangePayload(old, next); !got.Equal(adapter.Part(0)) {
		t.Errorf("ChangePayload() = %v, want part(0)", got)
	}
}

func TestAdapterWithGrid(t *testing.T) {
	a, err := NewAdapter()
	if err != nil {
		t.Fatal(err)
	}
	g := term.NewGrid(a, term.Config{SpanCount: 4, Width: 80, Renderer: term.NewRenderer(io.Discard)})
	a.Attach(g)

	done := make(chan struct{})
	a.SubmitWithCallback(Build(0, 5), func() { close(done) })
	<-done

	out := g.Render()
	if !strings.Contains(out, "this is title 0") {
		t.Errorf("Render() = %q, want the title", out)
	}
	if !strings.Contains(out, "this is") {
		t.Errorf("Render() = %q, want content", out)
	}
	units := g.Units()
	if got := units[0].View().(*TextView).Text(); got != "this is title 0" {
		t.Errorf("title view text = %q", got)
	}
}

func TestPagingAdapterShowsPlaceholders(t *testing.T) {
	a, err := NewPagingAdapter()
	if err != nil {
		t.Fatal(err)
	}
	p, err := paging.NewPager[int, Item](Source{Limit: 40}, paging.Config{PageSize: 10, EnablePlaceholders: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	a.Submit(context.Background(), p)

	// 30 loaded rows plus one page of placeholders.
	if got := a.ItemCount(); got != 40 {
		t.Fatalf("ItemCount() = %d, want 40", got)
	}
	vt, err := a.ItemViewType(35)
	if err != nil {
		t.Fatal(err)
	}
	if vt != adapter.DefaultPlaceholderTypeID {
		t.Errorf("ItemViewType(35) = %d, want placeholder", vt)
	}
	u, err := a.CreateUnit(context.Background(), vt)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.BindUnit(u, 35); err != nil {
		t.Fatal(err)
	}
	if got := u.View().(*TextView).Text(); got != "loading…" {
		t.Errorf("placeholder text = %q", got)
	}
}
