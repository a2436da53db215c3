package adapter

import (
	"slices"
	"strconv"
	"strings"
)

// ChangeKind classifies a Change.
type ChangeKind uint8

const (
	ChangeNone ChangeKind = iota // Nothing to rebind
	ChangeAll                    // Full rebind
	ChangePart                   // Rebind selected payload rules only
)

// String returns the string representation of the ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeNone:
		return "none"
	case ChangeAll:
		return "all"
	case ChangePart:
		return "part"
	default:
		return "unknown"
	}
}

// Change describes what must be rebound on a unit.
//
// The zero value is None. Indices of a Part change refer to the payload
// rules of the variant that produced it, in declaration order.
type Change struct {
	kind    ChangeKind
	indices []int
}

var (
	// None leaves the unit untouched.
	None = Change{}

	// All runs the full bind lifecycle.
	All = Change{kind: ChangeAll}
)

// Part returns a change that rebinds only the given payload rules.
// Part with no indices is None.
func Part(indices ...int) Change {
	if len(indices) == 0 {
		return None
	}
	return Change{kind: ChangePart, indices: slices.Clone(indices)}
}

// Kind returns the change kind.
func (c Change) Kind() ChangeKind {
	return c.kind
}

// Indices returns a copy of the payload rule indices of a Part change.
func (c Change) Indices() []int {
	return slices.Clone(c.indices)
}

// IsNone reports whether the change is None.
func (c Change) IsNone() bool {
	return c.kind == ChangeNone
}

// Equal reports whether two changes describe the same rebind.
func (c Change) Equal(o Change) bool {
	return c.kind == o.kind && slices.Equal(c.indices, o.indices)
}

func (c Change) String() string {
	if c.kind != ChangePart {
		return c.kind.String()
	}
	parts := make([]string, len(c.indices))
	for i, idx := range c.indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "part(" + strings.Join(parts, ",") + ")"
}
