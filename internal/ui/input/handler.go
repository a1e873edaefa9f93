package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pdfsearch/internal/ui/input/modes"
	"pdfsearch/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Search box, shared with the query mode
	keys        *types.KeyMap
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = "Search PDFs..."
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	h := &Handler{
		currentMode: types.ModeQuery,
		textInput:   &ti,
		keys:        types.NewKeyMap(),
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeQuery] = modes.NewQueryMode(h.textInput)
	h.modes[types.ModeBrowse] = modes.NewBrowseMode(h.keys)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
			h.currentMode = changeMode.Mode
			allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
			if h.currentMode == types.ModeQuery {
				cmd = textinput.Blink
			}
			allActions = append(allActions, action)
		} else {
			allActions = append(allActions, action)
		}
	}

	// Unhandled keys in query mode edit the search box
	if !consumed && h.currentMode == types.ModeQuery {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateQueryAction{Text: after})
		}
	}

	return allActions, cmd
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeQuery {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}

// ChangeMode switches modes without going through a key press
func (h *Handler) ChangeMode(mode types.Mode) {
	if mode == h.currentMode {
		return
	}
	h.currentMode = mode
	if mode == types.ModeQuery {
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeQuery
	}
	return h.currentMode
}

// SetQuery replaces the search box contents and moves the cursor to the end
func (h *Handler) SetQuery(text string) {
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

func (h *Handler) Value() string {
	return h.textInput.Value()
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) Keys() *types.KeyMap {
	return h.keys
}
