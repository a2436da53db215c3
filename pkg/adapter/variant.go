package adapter

import (
	"context"
	"reflect"
)

// payloadRule pairs a comparison with the bind that refreshes what it compares.
type payloadRule[V, D any] struct {
	compare func(old, new D) bool
	bind    func(*BindScope[V, D])
}

// variant is the frozen descriptor of one declared data type.
type variant struct {
	dataType reflect.Type
	create   func(ctx context.Context) any
	binder   binder
	span     Span
	diff     itemDiff
}

// itemDiff answers identity and payload questions for one variant.
type itemDiff interface {
	sameItem(old, new any) bool
	changePayload(old, new any) Change
}

type itemBinder[V, D any] struct {
	setupFn  func(V)
	before   func(*BindScope[V, D])
	full     func(*BindScope[V, D])
	payloads []func(*BindScope[V, D])
	after    func(*BindScope[V, D])
}

func (b *itemBinder[V, D]) setup(view any) {
	if b.setupFn != nil {
		b.setupFn(view.(V))
	}
}

func (b *itemBinder[V, D]) bind(u *Unit, data any, change Change) {
	d, ok := data.(D)
	if !ok {
		return
	}
	scope := &BindScope[V, D]{ctx: u.ctx, view: u.view.(V), data: d, position: u.position}

	if b.before != nil {
		b.before(scope)
	}
	switch change.kind {
	case ChangeAll:
		if b.full != nil {
			b.full(scope)
		} else {
			for _, bind := range b.payloads {
				bind(scope)
			}
		}
	case ChangePart:
		for _, idx := range change.indices {
			if idx >= 0 && idx < len(b.payloads) {
				b.payloads[idx](scope)
			}
		}
	}
	if b.after != nil {
		b.after(scope)
	}
}

type itemComparer[D any] struct {
	key      func(D) any
	compares []func(old, new D) bool
}

func (c *itemComparer[D]) sameItem(old, new any) bool {
	o, ok1 := old.(D)
	n, ok2 := new.(D)
	if !ok1 || !ok2 {
		return false
	}
	return keysEqual(c.key(o), c.key(n))
}

func (c *itemComparer[D]) changePayload(old, new any) Change {
	o, ok1 := old.(D)
	n, ok2 := new.(D)
	if !ok1 || !ok2 {
		return None
	}
	var changed []int
	for i, compare := range c.compares {
		if !compare(o, n) {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return None
	}
	return Change{kind: ChangePart, indices: changed}
}

// placeholderBinder only runs the placeholder's setup.
type placeholderBinder[V any] struct {
	setupFn func(V)
}

func (b *placeholderBinder[V]) setup(view any) {
	if b.setupFn != nil {
		b.setupFn(view.(V))
	}
}

func (b *placeholderBinder[V]) bind(*Unit, any, Change) {}

// keysEqual compares identity keys with == when the dynamic values are
// comparable and falls back to reflect.DeepEqual otherwise.
func keysEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
