package differ

import "znkr.io/diff"

// Callback answers identity and content questions about item pairs.
type Callback[T any] interface {
	// AreItemsTheSame reports whether two items are the same logical row.
	AreItemsTheSame(old, new T) bool
	// AreContentsTheSame reports whether a matched row looks the same.
	AreContentsTheSame(old, new T) bool
	// ChangePayload describes what changed in a matched row.
	ChangePayload(old, new T) any
}

// Compute returns the updates that transform old into next.
func Compute[T any](old, next []T, cb Callback[T]) []Update {
	if len(old) == 0 && len(next) == 0 {
		return nil
	}
	if len(old) == 0 {
		return []Update{{Op: OpInsert, Pos: 0, Count: len(next)}}
	}
	if len(next) == 0 {
		return []Update{{Op: OpRemove, Pos: 0, Count: len(old)}}
	}

	var b batcher
	pos := 0
	for _, e := range diff.EditsFunc(old, next, cb.AreItemsTheSame) {
		switch e.Op {
		case diff.Match:
			if !cb.AreContentsTheSame(e.X, e.Y) {
				b.add(OpChange, pos, cb.ChangePayload(e.X, e.Y))
			}
			pos++
		case diff.Delete:
			b.add(OpRemove, pos, nil)
		case diff.Insert:
			b.add(OpInsert, pos, nil)
			pos++
		}
	}
	return b.updates
}
