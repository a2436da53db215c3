package sample

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/listkit/pkg/host/term"
)

// TextView renders a single styled text.
type TextView struct {
	style lipgloss.Style
	text  string
}

// SetText replaces the displayed text.
func (v *TextView) SetText(text string) { v.text = text }

// Text returns the displayed text.
func (v *TextView) Text() string { return v.text }

// Render implements term.View.
func (v *TextView) Render(width int) string {
	return v.style.Width(width).MaxWidth(width).Render(v.text)
}

// NewTitleView creates the view for Title rows.
func NewTitleView(ctx context.Context) *TextView {
	r := term.RendererFrom(ctx)
	return &TextView{style: r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)}
}

// NewContentView creates the view for Content rows.
func NewContentView(ctx context.Context) *TextView {
	r := term.RendererFrom(ctx)
	return &TextView{style: r.NewStyle().
		PaddingRight(1).
		MaxHeight(2)}
}

// NewLoadingView creates the placeholder view.
func NewLoadingView(ctx context.Context) *TextView {
	r := term.RendererFrom(ctx)
	return &TextView{style: r.NewStyle().
		Faint(true).
		Italic(true)}
}
