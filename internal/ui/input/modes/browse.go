package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pdfsearch/internal/ui/input/types"
)

// BrowseMode moves through the result list and pages
type BrowseMode struct {
	keys *types.KeyMap
}

func NewBrowseMode(keys *types.KeyMap) *BrowseMode {
	return &BrowseMode{keys: keys}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Clear):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery}}, true

	case key.Matches(msg, m.keys.Up):
		if ctx.CurrentIndex() == 0 {
			// Moving past the top hands focus back to the search box
			return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery}}, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.NextPage):
		if ctx.HasNextPage() {
			return []types.Action{types.NextPageAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.PrevPage):
		if ctx.HasPrevPage() {
			return []types.Action{types.PrevPageAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.FirstPage):
		return []types.Action{types.FirstPageAction{}}, true

	case key.Matches(msg, m.keys.LastPage):
		return []types.Action{types.LastPageAction{}}, true

	case key.Matches(msg, m.keys.Open):
		if ctx.ResultCount() == 0 {
			return nil, true
		}
		return []types.Action{types.OpenResultAction{Index: ctx.CurrentIndex()}}, true

	case key.Matches(msg, m.keys.CopyURL):
		return []types.Action{types.CopyURLAction{URL: ctx.CurrentURL()}}, true

	case key.Matches(msg, m.keys.Retry):
		return []types.Action{types.RetryAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
