package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsearch/internal/config"
	"pdfsearch/internal/domain"
	"pdfsearch/internal/search"
	inputtypes "pdfsearch/internal/ui/input/types"
	"pdfsearch/internal/ui/views"
)

// pagedBackend returns pages results for every query, two hits per page
type pagedBackend struct {
	mu    sync.Mutex
	pages int
	err   error
	calls []domain.SearchRequest
}

func (b *pagedBackend) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, req)
	if b.err != nil {
		return nil, b.err
	}
	pg := domain.NewPagination(req.Page, b.pages, b.pages*2)
	return &domain.SearchResponse{
		Results: []domain.ResultItem{
			{Filename: fmt.Sprintf("%s-p%d-1.pdf", req.Query, req.Page), Snippet: "about <em>" + req.Query + "</em>", URL: "https://cdn.example.com/1.pdf"},
			{Filename: fmt.Sprintf("%s-p%d-2.pdf", req.Query, req.Page)},
		},
		Pagination: &pg,
	}, nil
}

func newTestModel(t *testing.T, b *pagedBackend) *Model {
	t.Helper()
	ctrl := search.NewController(b)
	m := NewModel(ctrl, config.DefaultConfig())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// drain runs cmd like the runtime would and collects every message produced
// quickly; timer based commands such as cursor blink are abandoned.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func responses(msgs []tea.Msg) []search.ResponseMsg {
	var out []search.ResponseMsg
	for _, msg := range msgs {
		if r, ok := msg.(search.ResponseMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

func press(m *Model, msg tea.KeyMsg) []tea.Msg {
	_, cmd := m.Update(msg)
	return drain(cmd)
}

func typeText(m *Model, text string) []search.ResponseMsg {
	var out []search.ResponseMsg
	for _, r := range text {
		out = append(out, responses(press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))...)
	}
	return out
}

func deliver(m *Model, msgs ...search.ResponseMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func plainView(m *Model) string {
	return views.StripANSI(m.View())
}

func TestModelShortQueryDoesNotSearch(t *testing.T) {
	b := &pagedBackend{pages: 1}
	m := newTestModel(t, b)

	assert.Empty(t, typeText(m, "g"))
	assert.Empty(t, b.calls)
	assert.Contains(t, plainView(m), "Type at least 2 characters to search")
}

func TestModelTypingShowsFirstPage(t *testing.T) {
	b := &pagedBackend{pages: 3}
	m := newTestModel(t, b)

	resps := typeText(m, "go")
	require.Len(t, resps, 1)
	assert.Equal(t, 1, resps[0].Request.Page)

	deliver(m, resps...)

	out := plainView(m)
	assert.Contains(t, out, "go-p1-1.pdf")
	assert.Contains(t, out, "about go")
	assert.Contains(t, out, "Showing 2 of 6 results (Page 1 of 3)")
}

func TestModelLatestKeystrokeWins(t *testing.T) {
	b := &pagedBackend{pages: 1}
	m := newTestModel(t, b)

	resps := typeText(m, "gol")
	require.Len(t, resps, 2)

	// The answer for "gol" lands before the older one for "go"
	deliver(m, resps[1], resps[0])

	out := plainView(m)
	assert.Contains(t, out, "gol-p1-1.pdf")
	assert.NotContains(t, out, "go-p1-1.pdf")
}

func TestModelBrowseNextPage(t *testing.T) {
	b := &pagedBackend{pages: 3}
	m := newTestModel(t, b)
	deliver(m, typeText(m, "go")...)

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, inputtypes.ModeBrowse, m.inputHandler.CurrentMode())

	resps := responses(press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}))
	require.Len(t, resps, 1)
	assert.Equal(t, 2, resps[0].Request.Page)
	assert.Equal(t, "go", resps[0].Request.Query)

	deliver(m, resps...)
	assert.Equal(t, 2, m.ctrl.ViewState().Pagination.CurrentPage)
	assert.Contains(t, plainView(m), "Page 2 of 3")
}

func TestModelPrevPageDisabledOnFirstPage(t *testing.T) {
	b := &pagedBackend{pages: 3}
	m := newTestModel(t, b)
	deliver(m, typeText(m, "go")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})

	calls := len(b.calls)
	assert.Empty(t, responses(press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})))
	assert.Len(t, b.calls, calls)
}

func TestModelBrowseMovesSelection(t *testing.T) {
	b := &pagedBackend{pages: 1}
	m := newTestModel(t, b)
	deliver(m, typeText(m, "go")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, m.state.SelectedIndex)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, m.state.SelectedIndex)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, m.state.SelectedIndex)

	// Moving up from the top returns to the search box
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, inputtypes.ModeQuery, m.inputHandler.CurrentMode())
}

func TestModelShowsBackendError(t *testing.T) {
	b := &pagedBackend{pages: 1, err: &domain.BackendError{StatusCode: 500}}
	m := newTestModel(t, b)
	deliver(m, typeText(m, "go")...)

	out := plainView(m)
	assert.Contains(t, out, "Search request failed: API error: 500")
	assert.NotContains(t, out, "Showing")

	// A retry that succeeds clears the error
	b.err = nil
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, inputtypes.ModeQuery, m.inputHandler.CurrentMode())
	resps := responses(drain(m.cmdExecutor.ExecuteRetry()))
	require.Len(t, resps, 1)
	deliver(m, resps...)
	assert.NotContains(t, plainView(m), "Search request failed")
}

func TestModelEscClearsQuery(t *testing.T) {
	b := &pagedBackend{pages: 1}
	m := newTestModel(t, b)
	deliver(m, typeText(m, "go")...)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "", m.inputHandler.Value())
	assert.Equal(t, "", m.ctrl.Query())
	out := plainView(m)
	assert.NotContains(t, out, "go-p1-1.pdf")
	assert.Contains(t, out, "Type at least 2 characters to search")
}

func TestModelCopyURL(t *testing.T) {
	b := &pagedBackend{pages: 1}
	m := newTestModel(t, b)
	var copied string
	m.resultOps.copy = func(s string) error {
		copied = s
		return nil
	}
	deliver(m, typeText(m, "go")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})

	msgs := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.Len(t, msgs, 1)
	m.Update(msgs[0])

	assert.Equal(t, "https://cdn.example.com/1.pdf", copied)
	assert.Contains(t, plainView(m), "Copied https://cdn.example.com/1.pdf")

	// Second hit has no url
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Equal(t, "No URL for this result", m.state.StatusMessage)
}

func TestModelOpenWithoutProgramReportsError(t *testing.T) {
	b := &pagedBackend{pages: 1}
	m := newTestModel(t, b)
	deliver(m, typeText(m, "go")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})

	msgs := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, msgs, 1)
	m.Update(msgs[0])

	assert.Contains(t, m.state.StatusMessage, "Could not open go-p1-1.pdf")
}

func TestModelHelpToggle(t *testing.T) {
	b := &pagedBackend{pages: 1}
	m := newTestModel(t, b)
	deliver(m, typeText(m, "go")...)
	press(m, tea.KeyMsg{Type: tea.KeyTab})

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	require.True(t, m.state.ShowHelp)
	assert.Contains(t, plainView(m), "pdfsearch Help")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.state.ShowHelp)
}
