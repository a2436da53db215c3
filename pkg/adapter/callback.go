package adapter

import "reflect"

// ItemCallback answers the three questions a sequence differ asks about a
// pair of items from the old and new lists.
//
// Each call resolves the variant in O(1) and costs O(payload rules).
type ItemCallback[T any] struct {
	registry *Registry[T]
}

// AreItemsTheSame reports whether two items are the same logical row.
// Items of different dynamic types never are.
func (c *ItemCallback[T]) AreItemsTheSame(old, new T) bool {
	o, n := any(old), any(new)
	oNil, nNil := isNil(o), isNil(n)
	if oNil || nNil {
		return oNil && nNil
	}
	t := reflect.TypeOf(o)
	if reflect.TypeOf(n) != t {
		return false
	}
	v := c.registry.variantOf(t)
	if v == nil {
		return keysEqual(o, n)
	}
	return v.diff.sameItem(o, n)
}

// AreContentsTheSame reports whether ChangePayload would return None.
func (c *ItemCallback[T]) AreContentsTheSame(old, new T) bool {
	return c.ChangePayload(old, new).IsNone()
}

// ChangePayload returns Part with the indices of every payload rule whose
// comparison reports a difference, or None when all rules agree.
func (c *ItemCallback[T]) ChangePayload(old, new T) Change {
	o, n := any(old), any(new)
	if isNil(o) || isNil(n) {
		return None
	}
	t := reflect.TypeOf(o)
	if reflect.TypeOf(n) != t {
		return None
	}
	v := c.registry.variantOf(t)
	if v == nil {
		return None
	}
	return v.diff.changePayload(o, n)
}

// diffCallback adapts ItemCallback to the differ's payload-agnostic contract.
type diffCallback[T any] struct {
	*ItemCallback[T]
}

func (c diffCallback[T]) ChangePayload(old, new T) any {
	return c.ItemCallback.ChangePayload(old, new)
}
