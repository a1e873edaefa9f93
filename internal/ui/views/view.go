package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"pdfsearch/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Search         domain.ViewState
	MinQueryLength int
	InputView      string // rendered text input
	InputMode      string
	Spinner        string // current spinner frame
	Summary        string // "Showing x of y results (Page a of b)", empty when hidden
	PageDots       string // paginator view, empty when there is a single page
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	StatusMessage  string
	ShowHelp       bool
	HelpModel      help.Model
	Keys           help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	resultRender *ResultRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(opts ResultOptions) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		resultRender: NewResultRenderer(styles, opts),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Results exposes the result renderer for the pager
func (r *Renderer) Results() *ResultRenderer {
	return r.resultRender
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		return r.popupRender.RenderPopup(r.renderHelpContent(state), state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	// Title with loading indicator on the right
	logo := r.styles.Title.Render("pdfsearch")
	titleLine := logo
	if state.Search.Loading {
		indicator := r.styles.StatusLoading.Render(fmt.Sprintf("%s Searching", state.Spinner))
		termWidth := state.Width
		if termWidth <= 0 {
			termWidth = 80 // Default terminal width
		}
		padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + indicator
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	content.WriteString(state.InputView)
	content.WriteString("\n\n")

	content.WriteString(r.renderBody(state))

	if footer := r.renderPagination(state); footer != "" {
		content.WriteString("\n\n")
		content.WriteString(footer)
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	// Push the key hints to the bottom
	helpText := r.styles.Help.Render("Press ? for help")
	if state.Keys != nil {
		helpText = r.styles.Help.Render(state.HelpModel.View(state.Keys))
	}
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2 // container padding
	if availableLines <= 0 {
		availableLines = 22
	}
	if pad := availableLines - currentLines - 1; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderBody picks exactly one of error, loading, empty, idle or the result list
func (r *Renderer) renderBody(state ViewState) string {
	vs := state.Search
	switch {
	case vs.HasError():
		return r.styles.StatusError.Render(vs.Error) + "\n" + r.styles.Dim.Render("Press r to retry")
	case vs.Loading && len(vs.Results) == 0:
		return r.styles.StatusLoading.Render(fmt.Sprintf("%s Searching for %q...", state.Spinner, vs.Query))
	case vs.Empty():
		return r.styles.Dim.Render(fmt.Sprintf("No results for %q", vs.Query))
	case len(vs.Results) == 0:
		minLen := state.MinQueryLength
		if minLen <= 0 {
			minLen = 1
		}
		return r.styles.Dim.Render(fmt.Sprintf("Type at least %d characters to search", minLen))
	default:
		return r.renderResultList(state)
	}
}

// renderResultList renders the visible window of the current page
func (r *Renderer) renderResultList(state ViewState) string {
	results := state.Search.Results
	height := state.ViewportHeight
	if height <= 0 || height > len(results) {
		height = len(results)
	}
	offset := state.ViewportOffset
	if offset < 0 || offset > len(results)-height {
		offset = 0
	}

	var lines []string
	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}
	for i := offset; i < offset+height; i++ {
		lines = append(lines, r.resultRender.RenderResult(results[i], i+1, i == state.SelectedIndex, state.Width))
	}
	if below := len(results) - (offset + height); below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

// renderPagination renders "← Prev  summary  Next →" with disabled controls dimmed
func (r *Renderer) renderPagination(state ViewState) string {
	p := state.Search.Pagination
	if state.Summary == "" || p == nil {
		return ""
	}

	prev := r.styles.PageDisabled.Render("← Prev")
	if p.HasPrev {
		prev = r.styles.PageEnabled.Render("← Prev")
	}
	next := r.styles.PageDisabled.Render("Next →")
	if p.HasNext {
		next = r.styles.PageEnabled.Render("Next →")
	}

	line := fmt.Sprintf("%s  %s  %s", prev, r.styles.Dim.Render(state.Summary), next)
	if state.PageDots != "" {
		line += "\n" + state.PageDots
	}
	return line
}

// renderHelpContent renders the key reference shown in the help popup
func (r *Renderer) renderHelpContent(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("pdfsearch Help"))
	b.WriteString("\n")
	if state.Keys != nil {
		full := state.HelpModel
		full.ShowAll = true
		b.WriteString(full.View(state.Keys))
		b.WriteString("\n\n")
	}
	b.WriteString(r.styles.Dim.Render("Type to search. Results update as you type."))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("Press ? or esc to close"))
	return b.String()
}
