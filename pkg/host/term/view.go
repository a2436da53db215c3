// Package term hosts a listkit adapter in a terminal.
//
// Grid keeps one render unit per row, recycles units by view type, and lays
// rows out on a fixed number of columns with lipgloss.
package term

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// View is a terminal view created by an adapter's view factory.
type View interface {
	// Render returns the view's content laid out for width columns.
	Render(width int) string
}

type rendererKey struct{}

// WithRenderer returns a context carrying r for view factories.
func WithRenderer(ctx context.Context, r *lipgloss.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// RendererFrom returns the renderer stored in ctx, or the default one.
func RendererFrom(ctx context.Context) *lipgloss.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*lipgloss.Renderer); ok && r != nil {
		return r
	}
	return lipgloss.DefaultRenderer()
}

// NewRenderer creates a renderer detecting the color profile of w.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w)
}

func renderView(view any, width int) string {
	switch v := view.(type) {
	case View:
		return v.Render(width)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
