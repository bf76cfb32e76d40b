package formatter

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Renderer turns Markdown into styled terminal output.
type Renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
}

// NewRenderer builds a renderer for a glamour style ("dark", "light", "notty", "auto", ...)
// wrapping at width columns; 0 disables wrapping.
func NewRenderer(style string, width int) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{style: style, width: width, term: term}, nil
}

// Render styles md. Output falls back to the raw Markdown when rendering fails.
func (r *Renderer) Render(md []byte) string {
	out, err := r.term.RenderBytes(md)
	if err != nil {
		return string(md)
	}
	return string(out)
}

// Resize rebuilds the renderer when the wrap width changes.
func (r *Renderer) Resize(width int) error {
	if width == r.width {
		return nil
	}
	next, err := NewRenderer(r.style, width)
	if err != nil {
		return err
	}
	*r = *next
	return nil
}

func (r *Renderer) Width() int { return r.width }
