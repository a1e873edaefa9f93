package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pdfsearch/internal/domain"
)

// ResultOptions toggles the optional parts of a result entry
type ResultOptions struct {
	ShowURLs         bool
	ShowSnippets     bool
	HighlightMatches bool
}

// ResultRenderer handles rendering of individual search hits
type ResultRenderer struct {
	styles   *Styles
	snippets *SnippetRenderer
	opts     ResultOptions
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles, opts ResultOptions) *ResultRenderer {
	return &ResultRenderer{
		styles:   styles,
		snippets: NewSnippetRenderer(styles.Highlight),
		opts:     opts,
	}
}

// RenderResult renders one hit: numbered filename line, then snippet and url indented below
func (r *ResultRenderer) RenderResult(item domain.ResultItem, number int, isSelected bool, width int) string {
	cursor := "  "
	if isSelected {
		cursor = r.styles.Cursor.Render("> ")
	}

	name := item.Filename
	if name == "" {
		name = "(untitled)"
	}
	filename := r.styles.Filename
	if isSelected {
		filename = filename.Inherit(r.styles.SelectionBg)
	}

	lines := []string{fmt.Sprintf("%s%d. %s", cursor, number, filename.Render(name))}

	indent := "     "
	bodyWidth := width - len(indent) - 4 // main container padding
	if bodyWidth < 20 {
		bodyWidth = 20
	}

	if r.opts.ShowSnippets {
		snippet := r.snippets.Render(item.Snippet, r.opts.HighlightMatches)
		wrapped := r.styles.Snippet.Width(bodyWidth).Render(snippet)
		for _, l := range strings.Split(wrapped, "\n") {
			lines = append(lines, indent+l)
		}
	}

	if r.opts.ShowURLs && item.URL != "" {
		lines = append(lines, indent+r.styles.URL.Render(truncate(item.URL, bodyWidth)))
	}

	return strings.Join(lines, "\n")
}

// PlainResult renders a hit without styling, for the pager
func (r *ResultRenderer) PlainResult(item domain.ResultItem) string {
	var b strings.Builder
	b.WriteString(item.Filename)
	b.WriteString("\n\n")
	b.WriteString(r.snippets.Plain(item.Snippet))
	b.WriteString("\n")
	if item.URL != "" {
		b.WriteString("\n")
		b.WriteString(item.URL)
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width || width < 2 {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		runes = runes[:width-1]
	}
	return string(runes) + "…"
}
