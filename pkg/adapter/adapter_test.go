package adapter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/listkit/pkg/differ"
)

type recordingHost struct {
	mu      sync.Mutex
	batches [][]differ.Update
}

func (h *recordingHost) Apply(updates []differ.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches = append(h.batches, updates)
}

func (h *recordingHost) last() []differ.Update {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.batches) == 0 {
		return nil
	}
	return h.batches[len(h.batches)-1]
}

type countingBinds struct {
	mu    sync.Mutex
	kinds map[ChangeKind]int
}

func (c *countingBinds) Bound(_ int, kind ChangeKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kinds == nil {
		c.kinds = make(map[ChangeKind]int)
	}
	c.kinds[kind]++
}

func submitAndWait(t *testing.T, a *Adapter[row], items []row) {
	t.Helper()
	done := make(chan struct{})
	a.SubmitWithCallback(items, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("submission was not applied")
	}
}

func TestAdapterSubmitAndBind(t *testing.T) {
	rec := &recorder{}
	binds := &countingBinds{}
	a, err := NewAdapter(declareRows(rec), WithBindObserver(binds))
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	host := &recordingHost{}
	a.Attach(host)

	first := []row{textRow{ID: 1, Text: "x"}, imageRow{ID: 2, URL: "a"}}
	submitAndWait(t, a, first)

	if got := a.ItemCount(); got != 2 {
		t.Fatalf("ItemCount() = %d, want 2", got)
	}
	if got := host.last(); len(got) != 1 || got[0].Op != differ.OpInsert || got[0].Count != 2 {
		t.Fatalf("first updates = %v, want insert(0,2)", got)
	}

	vt, err := a.ItemViewType(1)
	if err != nil || vt != 1 {
		t.Fatalf("ItemViewType(1) = %d, %v; want 1", vt, err)
	}
	unit, err := a.CreateUnit(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.BindUnit(unit, 0); err != nil {
		t.Fatalf("BindUnit() error = %v", err)
	}
	rec.reset()

	second := []row{textRow{ID: 1, Text: "y"}, imageRow{ID: 2, URL: "a"}}
	submitAndWait(t, a, second)

	updates := host.last()
	if len(updates) != 1 {
		t.Fatalf("second updates = %v, want one change", updates)
	}
	u := updates[0]
	if u.Op != differ.OpChange || u.Pos != 0 || u.Count != 1 {
		t.Fatalf("update = %v, want change(0,1)", u)
	}
	if !u.Payload.(Change).Equal(Part(0)) {
		t.Fatalf("payload = %v, want part(0)", u.Payload)
	}

	if err := a.BindUnitPayload(unit, u.Pos, u.Payload); err != nil {
		t.Fatalf("BindUnitPayload() error = %v", err)
	}
	if got := rec.String(); got != "before,p0,after" {
		t.Errorf("calls = %q, want before,p0,after", got)
	}
	if got := unit.View().(*testView).text; got != "y" {
		t.Errorf("view text = %q, want y", got)
	}

	binds.mu.Lock()
	defer binds.mu.Unlock()
	if binds.kinds[ChangeAll] != 1 || binds.kinds[ChangePart] != 1 {
		t.Errorf("bind kinds = %v, want one all and one part", binds.kinds)
	}
}

func TestAdapterCrossVariantIsRemoveInsert(t *testing.T) {
	a, err := NewAdapter(declareRows(&recorder{}))
	if err != nil {
		t.Fatal(err)
	}
	host := &recordingHost{}
	a.Attach(host)

	submitAndWait(t, a, []row{textRow{ID: 1}, textRow{ID: 2}})
	submitAndWait(t, a, []row{imageRow{ID: 1}, textRow{ID: 2}})

	var ops []differ.Op
	for _, u := range host.last() {
		ops = append(ops, u.Op)
		if u.Op == differ.OpChange {
			t.Errorf("cross-variant transition produced %v", u)
		}
	}
	if len(ops) != 2 {
		t.Errorf("updates = %v, want one remove and one insert", host.last())
	}
}

func TestAdapterSpanSizeLookup(t *testing.T) {
	a, err := NewAdapter(declareRows(&recorder{}))
	if err != nil {
		t.Fatal(err)
	}
	submitAndWait(t, a, []row{textRow{ID: 1}, imageRow{ID: 2}, orphanRow{ID: 3}})

	lookup := a.SpanSizeLookup(3)
	for pos, want := range []int{1, 3, 1} {
		if got := lookup(pos); got != want {
			t.Errorf("lookup(%d) = %d, want %d", pos, got, want)
		}
	}
	if _, err := a.ItemViewType(2); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("ItemViewType(2) error = %v, want ErrUnknownVariant", err)
	}
}

func TestAdapterPositionOutOfRange(t *testing.T) {
	a, err := NewAdapter(declareRows(&recorder{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.ItemViewType(0); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("ItemViewType(0) error = %v, want ErrPositionOutOfRange", err)
	}
	unit, _ := a.CreateUnit(context.Background(), 0)
	if err := a.BindUnit(unit, 5); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("BindUnit(5) error = %v, want ErrPositionOutOfRange", err)
	}
}

func TestAdapterBuildError(t *testing.T) {
	_, err := NewAdapter(func(s *Scope[row]) {
		Item(s, newTextView, func(*ItemScope[*testView, textRow]) {})
		Item(s, newTextView, func(*ItemScope[*testView, textRow]) {})
	})
	if !errors.Is(err, ErrDuplicateVariant) {
		t.Errorf("NewAdapter() error = %v, want ErrDuplicateVariant", err)
	}
}

func TestAdapterIgnoresForeignPayload(t *testing.T) {
	rec := &recorder{}
	a, err := NewAdapter(declareRows(rec))
	if err != nil {
		t.Fatal(err)
	}
	submitAndWait(t, a, []row{textRow{ID: 1}})
	unit, _ := a.CreateUnit(context.Background(), 0)

	if err := a.BindUnitPayload(unit, 0, "not a change"); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %q, want none", rec.String())
	}
}
