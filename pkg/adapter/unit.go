package adapter

import (
	"context"
	"reflect"
)

// ViewFactory materializes a fresh, unbound view.
// The context carries whatever the host exposes to factories.
type ViewFactory[V any] func(ctx context.Context) V

// BindScope is the read-only view of a bind callback.
type BindScope[V, D any] struct {
	ctx      context.Context
	view     V
	data     D
	position int
}

// View returns the unit's view.
func (s *BindScope[V, D]) View() V { return s.view }

// Data returns the item being bound.
func (s *BindScope[V, D]) Data() D { return s.data }

// Position returns the adapter position of the item.
func (s *BindScope[V, D]) Position() int { return s.position }

// Context returns the context the unit was created with.
func (s *BindScope[V, D]) Context() context.Context { return s.ctx }

// binder runs the bind lifecycle of one variant with type-erased inputs.
type binder interface {
	setup(view any)
	bind(u *Unit, data any, change Change)
}

// Unit is a materialized view paired with its variant's binder.
// Hosts recycle units; a unit may be bound many times over its life.
//
// Units are not safe for concurrent use; bind them on the render context.
type Unit struct {
	ctx         context.Context
	viewType    int
	view        any
	binder      binder
	placeholder bool
	setupDone   bool
	position    int
}

// View returns the unit's view.
func (u *Unit) View() any { return u.view }

// ViewType returns the view type the unit was created for.
func (u *Unit) ViewType() int { return u.viewType }

// Position returns the position of the last bind, or -1 if never bound.
func (u *Unit) Position() int { return u.position }

// IsPlaceholder reports whether the unit renders the placeholder row.
func (u *Unit) IsPlaceholder() bool { return u.placeholder }

// Bind binds data into the unit according to change and reports whether
// any callback ran.
//
// None is a no-op. Setup runs once, before the first bind that is not None.
// Nil data is skipped for item units; placeholder units only run setup.
func (u *Unit) Bind(data any, position int, change Change) bool {
	if change.IsNone() {
		return false
	}
	if isNil(data) && !u.placeholder {
		return false
	}
	u.position = position
	if !u.setupDone {
		u.setupDone = true
		u.binder.setup(u.view)
	}
	u.binder.bind(u, data, change)
	return true
}

// isNil reports whether v is nil or a typed nil pointer, map, slice, func,
// channel or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
