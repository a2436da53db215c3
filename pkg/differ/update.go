package differ

import "fmt"

// Op is the type of an update operation.
type Op uint8

const (
	OpInsert Op = iota + 1 // Rows inserted at Pos
	OpRemove               // Rows removed at Pos
	OpChange               // Rows at Pos changed in place
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpChange:
		return "change"
	default:
		return "unknown"
	}
}

// Update is a single position-based list operation.
type Update struct {
	Op      Op
	Pos     int
	Count   int
	Payload any // For OpChange; nil means rebind everything
}

func (u Update) String() string {
	if u.Payload != nil {
		return fmt.Sprintf("%s(%d,%d,%v)", u.Op, u.Pos, u.Count, u.Payload)
	}
	return fmt.Sprintf("%s(%d,%d)", u.Op, u.Pos, u.Count)
}

// ListHost receives updates on the render context.
type ListHost interface {
	Apply(updates []Update)
}

// ListHostFunc adapts a function to ListHost.
type ListHostFunc func(updates []Update)

// Apply calls f(updates).
func (f ListHostFunc) Apply(updates []Update) { f(updates) }

// Hosts fans updates out to several hosts in order.
func Hosts(hosts ...ListHost) ListHost {
	return ListHostFunc(func(updates []Update) {
		for _, h := range hosts {
			if h != nil {
				h.Apply(updates)
			}
		}
	})
}

// batcher coalesces consecutive operations of the same kind.
type batcher struct {
	updates []Update
}

func (b *batcher) add(op Op, pos int, payload any) {
	if n := len(b.updates); n > 0 {
		last := &b.updates[n-1]
		if last.Op == op {
			switch op {
			case OpInsert:
				if pos == last.Pos+last.Count {
					last.Count++
					return
				}
			case OpRemove:
				if pos == last.Pos {
					last.Count++
					return
				}
			case OpChange:
				if payload == nil && last.Payload == nil && pos == last.Pos+last.Count {
					last.Count++
					return
				}
			}
		}
	}
	b.updates = append(b.updates, Update{Op: op, Pos: pos, Count: 1, Payload: payload})
}
