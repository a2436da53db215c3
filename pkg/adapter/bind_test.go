package adapter

import (
	"context"
	"testing"
)

func unitFor(t *testing.T, r *Registry[row], item row) *Unit {
	t.Helper()
	vt, err := r.ViewTypeOf(item)
	if err != nil {
		t.Fatalf("ViewTypeOf() error = %v", err)
	}
	u, err := r.CreateUnit(context.Background(), vt)
	if err != nil {
		t.Fatalf("CreateUnit() error = %v", err)
	}
	return u
}

func TestBindAllRunsEveryPayloadInOrder(t *testing.T) {
	rec := &recorder{}
	r := mustRegistry(t, declareRows(rec))
	u := unitFor(t, r, textRow{ID: 1})

	if !u.Bind(textRow{ID: 1, Text: "hello"}, 3, All) {
		t.Fatal("Bind(All) reported nothing ran")
	}

	want := "setup,before,p0,p1,p2,p3,after"
	if got := rec.String(); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
	if got := u.View().(*testView).text; got != "hello" {
		t.Errorf("view text = %q, want hello", got)
	}
	if u.Position() != 3 {
		t.Errorf("Position() = %d, want 3", u.Position())
	}
}

func TestBindAllUsesExplicitFullBind(t *testing.T) {
	rec := &recorder{}
	r := mustRegistry(t, declareRows(rec))
	u := unitFor(t, r, imageRow{ID: 1})

	u.Bind(imageRow{ID: 1, URL: "a.png"}, 0, All)

	if got := rec.String(); got != "full" {
		t.Errorf("calls = %q, want full", got)
	}
}

func TestBindPartRunsSelectedPayloads(t *testing.T) {
	rec := &recorder{}
	r := mustRegistry(t, declareRows(rec))
	u := unitFor(t, r, textRow{ID: 1})
	u.Bind(textRow{ID: 1}, 0, All)
	rec.reset()

	u.Bind(textRow{ID: 1}, 0, Part(1, 3))

	want := "before,p1,p3,after"
	if got := rec.String(); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestBindPartIgnoresOutOfRangeIndices(t *testing.T) {
	rec := &recorder{}
	r := mustRegistry(t, declareRows(rec))
	u := unitFor(t, r, textRow{ID: 1})
	u.Bind(textRow{ID: 1}, 0, All)
	rec.reset()

	u.Bind(textRow{ID: 1}, 0, Part(2, 9, -1))

	if got := rec.String(); got != "before,p2,after" {
		t.Errorf("calls = %q", got)
	}
}

func TestBindNoneIsNoop(t *testing.T) {
	rec := &recorder{}
	r := mustRegistry(t, declareRows(rec))
	u := unitFor(t, r, textRow{ID: 1})

	if u.Bind(textRow{ID: 1}, 0, None) {
		t.Error("Bind(None) reported work")
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %q, want none", rec.String())
	}
}

func TestSetupRunsOnce(t *testing.T) {
	rec := &recorder{}
	r := mustRegistry(t, declareRows(rec))
	u := unitFor(t, r, textRow{ID: 1})

	changes := []Change{All, Part(0), None, All, Part(2, 3), All}
	for i, c := range changes {
		u.Bind(textRow{ID: i}, i, c)
	}

	setups := 0
	for _, c := range rec.calls {
		if c == "setup" {
			setups++
		}
	}
	if setups != 1 {
		t.Errorf("setup ran %d times, want 1", setups)
	}
}

func TestBindNilIntoItemUnitIsSkipped(t *testing.T) {
	rec := &recorder{}
	r := mustRegistry(t, declareRows(rec))
	u := unitFor(t, r, textRow{ID: 1})

	if u.Bind(nil, 0, All) {
		t.Error("Bind(nil) reported work")
	}
	var typedNil *textRow
	if u.Bind(typedNil, 0, All) {
		t.Error("Bind(typed nil) reported work")
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %q, want none", rec.String())
	}
}

func TestPlaceholderRunsOnlySetup(t *testing.T) {
	setups := 0
	r := mustRegistry(t, func(s *Scope[row]) {
		declareRows(&recorder{})(s)
		Placeholder(s, newLoadingView, func(v *testView) {
			setups++
			v.text = "loading..."
		})
	})
	u := unitFor(t, r, nil)

	for i := 0; i < 3; i++ {
		if !u.Bind(nil, i, All) {
			t.Errorf("Bind #%d on placeholder reported nothing ran", i)
		}
	}
	if setups != 1 {
		t.Errorf("placeholder setup ran %d times, want 1", setups)
	}
	if got := u.View().(*testView).text; got != "loading..." {
		t.Errorf("placeholder text = %q", got)
	}
}

func TestBindScopeExposesContext(t *testing.T) {
	type ctxKey struct{}
	var got any
	r := mustRegistry(t, func(s *Scope[row]) {
		Item(s, newTextView, func(it *ItemScope[*testView, textRow]) {
			it.Bind(func(b *BindScope[*testView, textRow]) {
				got = b.Context().Value(ctxKey{})
			})
		})
	})
	ctx := context.WithValue(context.Background(), ctxKey{}, "host")
	u, err := r.CreateUnit(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	u.Bind(textRow{ID: 1}, 0, All)
	if got != "host" {
		t.Errorf("Context value = %v, want host", got)
	}
}
