package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pdfsearch/internal/ui/input/types"
)

// QueryMode edits the search box. Every edit becomes an UpdateQueryAction in the handler.
type QueryMode struct {
	TextInputMode
}

func NewQueryMode(ti *textinput.Model) *QueryMode {
	return &QueryMode{
		TextInputMode: NewTextInputMode(types.ModeQuery, "query", ti),
	}
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		if ctx.Query() == "" {
			return nil, true
		}
		return []types.Action{types.ClearQueryAction{}}, true

	case tea.KeyTab, tea.KeyEnter, tea.KeyDown:
		if ctx.ResultCount() == 0 {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true

	case tea.KeyPgDown:
		if !ctx.HasNextPage() {
			return nil, true
		}
		return []types.Action{types.NextPageAction{}}, true

	case tea.KeyPgUp:
		if !ctx.HasPrevPage() {
			return nil, true
		}
		return []types.Action{types.PrevPageAction{}}, true
	}

	return m.TextInputMode.HandleKey(msg, ctx)
}
