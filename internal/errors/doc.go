// Package errors provides structured, coded errors for listkit.
//
// Every error carries a code (e.g. "E110") that maps to a registered
// template with a category, a short message and a longer explanation.
// Callers add context with the With* builders:
//
//	err := errors.New("E111").
//	    WithDetail("no variant declared for sample.Banner").
//	    WithSuggestion("Declare it with adapter.Item[T, sample.Banner](...)")
//
// Two errors with the same code match under errors.Is, so exported
// sentinels such as adapter.ErrUnknownVariant can be compared against
// errors returned at dispatch time.
//
// # Error Categories
//
//   - config: invalid adapter declarations, caught at Build
//   - dispatch: a data instance or view type could not be resolved
//   - paging: a paged source failed to load
//   - file: listkit.json could not be read or parsed
package errors
