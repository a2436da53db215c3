package adapter

// Span decides how many grid columns a row occupies.
type Span interface {
	// Of evaluates the span against the grid's total span count.
	Of(total int) int
}

type sizeSpan int

func (s sizeSpan) Of(total int) int {
	if total < 1 {
		return 1
	}
	return min(max(int(s), 1), total)
}

type fullSpan struct{}

func (fullSpan) Of(total int) int {
	return max(total, 1)
}

// SpanSize occupies n columns, clamped to [1, total].
func SpanSize(n int) Span {
	return sizeSpan(n)
}

// SpanFull always occupies the whole row.
var SpanFull Span = fullSpan{}

// defaultSpan is used when an item declares no span.
var defaultSpan = SpanSize(1)
