// Package differ keeps a list host in step with the latest submitted list.
//
// A Differ owns the currently displayed list. Submit computes the edit
// script between the current list and a new one on a background goroutine,
// then posts the result to an Executor, which runs it on the render
// context. Only the most recent submission is ever applied: results of
// superseded submissions are dropped.
//
// # Updates
//
// The host receives position-based updates that, applied in order to the
// old list, produce the new one:
//
//	Update{Op: OpRemove, Pos: 2, Count: 1}
//	Update{Op: OpInsert, Pos: 4, Count: 3}
//	Update{Op: OpChange, Pos: 0, Count: 1, Payload: adapter.Part(1)}
//
// Matching uses the callback's AreItemsTheSame; matched pairs whose contents
// differ become OpChange updates carrying the callback's payload.
package differ
