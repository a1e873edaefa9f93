package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfsearch/internal/config"
	"pdfsearch/internal/search"
	"pdfsearch/internal/ui/commands"
	"pdfsearch/internal/ui/input"
	inputtypes "pdfsearch/internal/ui/input/types"
	"pdfsearch/internal/ui/state"
	"pdfsearch/internal/ui/viewmodels"
	"pdfsearch/internal/ui/views"
)

// Lines one result entry takes on screen, used to size the viewport
const linesPerResult = 4

// Model represents the UI state
type Model struct {
	config *config.Config
	state  *state.AppState // UI-only state
	ctrl   *search.Controller
	pages  *search.Coordinator

	width   int
	height  int
	help    help.Model
	spinner spinner.Model

	initialQuery string
	inPagerMode  bool // tracks if we're currently in pager mode

	renderer     *views.Renderer       // view renderer
	viewModel    *viewmodels.ViewModel // view model for rendering
	cmdExecutor  *commands.Executor    // command executor
	inputHandler *input.Handler        // input handling
	resultOps    *ResultOps            // pager and clipboard

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model around a search controller
func NewModel(ctrl *search.Controller, cfg *config.Config) *Model {
	appState := state.NewAppState()
	pages := search.NewCoordinator(ctrl)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	m := &Model{
		config:       cfg,
		state:        appState,
		ctrl:         ctrl,
		pages:        pages,
		help:         help.New(),
		spinner:      sp,
		inputHandler: input.New(),
		resultOps:    NewResultOps(),
		renderer: views.NewRenderer(views.ResultOptions{
			ShowURLs:         cfg.UISettings.ShowURLs,
			ShowSnippets:     cfg.UISettings.ShowSnippets,
			HighlightMatches: cfg.UISettings.HighlightMatches,
		}),
	}

	m.cmdExecutor = commands.NewExecutor(appState, ctrl, pages)
	m.viewModel = viewmodels.NewViewModel(appState, ctrl, pages)
	m.viewModel.SetHelp(m.help, m.inputHandler.Keys())
	m.syncKeys()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.resultOps.SetProgram(p)
}

// SetInitialQuery fills the search box and searches as soon as the program starts
func (m *Model) SetInitialQuery(q string) {
	m.initialQuery = q
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.inputHandler.Init(), m.spinner.Tick}
	if m.initialQuery != "" {
		m.inputHandler.SetQuery(m.initialQuery)
		cmds = append(cmds, m.cmdExecutor.ExecuteUpdateQuery(m.initialQuery))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case search.ResponseMsg:
		m.handleResponse(msg)
		return m, nil

	case tea.KeyMsg:
		// Help popup swallows keys until closed
		if m.state.ShowHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.state.ShowHelp = false
			case "ctrl+c":
				return m, m.quit()
			}
			return m, nil
		}

		ctx := &input.ModelContext{
			State: m.state,
			View:  m.ctrl.ViewState(),
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		m.syncKeys()

		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the screen
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetInputMode(m.inputHandler.CurrentMode())
	m.viewModel.UpdateTextInput(*m.inputHandler.TextInput())
	m.viewModel.UpdateSpinner(m.spinner)

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// handleResponse routes a backend answer through the controller
func (m *Model) handleResponse(msg search.ResponseMsg) {
	switch m.ctrl.HandleResponse(msg) {
	case search.OutcomeAccepted:
		m.state.ResetSelection()
		m.state.StatusMessage = ""
		if len(m.ctrl.ViewState().Results) == 0 {
			m.inputHandler.ChangeMode(inputtypes.ModeQuery)
		}
	case search.OutcomeFailed:
		m.state.ResetSelection()
		m.inputHandler.ChangeMode(inputtypes.ModeQuery)
	case search.OutcomeDiscarded:
		// Superseded; nothing on screen changes
	}
	m.syncKeys()
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		count := len(m.ctrl.ViewState().Results)
		switch a.Direction {
		case "up":
			m.state.MoveSelection(-1, count)
		case "down":
			m.state.MoveSelection(1, count)
		}
		return nil

	case inputtypes.ChangeModeAction:
		// The handler already switched modes
		return nil

	case inputtypes.UpdateQueryAction:
		m.state.ResetSelection()
		return m.cmdExecutor.ExecuteUpdateQuery(a.Text)

	case inputtypes.ClearQueryAction:
		m.inputHandler.SetQuery("")
		return m.cmdExecutor.ExecuteClearQuery()

	case inputtypes.RetryAction:
		return m.cmdExecutor.ExecuteRetry()

	case inputtypes.NextPageAction:
		return m.cmdExecutor.ExecutePage(commands.PageNext)

	case inputtypes.PrevPageAction:
		return m.cmdExecutor.ExecutePage(commands.PagePrev)

	case inputtypes.FirstPageAction:
		return m.cmdExecutor.ExecutePage(commands.PageFirst)

	case inputtypes.LastPageAction:
		return m.cmdExecutor.ExecutePage(commands.PageLast)

	case inputtypes.OpenResultAction:
		return m.openResult(a.Index)

	case inputtypes.CopyURLAction:
		return m.copyURL(a.URL)

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		return nil

	case inputtypes.QuitAction:
		return m.quit()
	}

	log.Printf("Unhandled action: %s", action.Type())
	return nil
}

// openResult returns a command that shows the result in the ov pager
func (m *Model) openResult(index int) tea.Cmd {
	results := m.ctrl.ViewState().Results
	if index < 0 || index >= len(results) {
		return nil
	}
	item := results[index]
	content := m.renderer.Results().PlainResult(item)

	return func() tea.Msg {
		if m.program != nil {
			m.program.Send(pauseRenderingMsg{})
		}

		err := m.resultOps.ShowInPager(content)

		if m.program != nil {
			m.program.Send(resumeRenderingMsg{})
		}
		return pagerDoneMsg{filename: item.Filename, err: err}
	}
}

// copyURL returns a command that copies url to the clipboard
func (m *Model) copyURL(url string) tea.Cmd {
	if url == "" {
		m.state.StatusMessage = "No URL for this result"
		return clearStatusAfter(3 * time.Second)
	}
	return func() tea.Msg {
		return clipboardMsg{url: url, err: m.resultOps.CopyURL(url)}
	}
}

func (m *Model) quit() tea.Cmd {
	m.ctrl.Close()
	return tea.Quit
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		// Let the tick loop lapse while the pager owns the terminal
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerDoneMsg:
		if msg.err != nil {
			log.Printf("Pager failed for %s: %v", msg.filename, msg.err)
			m.state.StatusMessage = fmt.Sprintf("Could not open %s: %v", msg.filename, msg.err)
			return m, clearStatusAfter(5 * time.Second)
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			log.Printf("Copy failed for %s: %v", msg.url, msg.err)
			m.state.StatusMessage = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.state.StatusMessage = "Copied " + msg.url
		}
		return m, clearStatusAfter(3 * time.Second)

	case pauseRenderingMsg:
		m.inPagerMode = true
		m.state.InPager = true
		return m, nil

	case resumeRenderingMsg:
		// RestoreTerminal() handles the actual repaint
		m.inPagerMode = false
		m.state.InPager = false
		return m, m.spinner.Tick

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	default:
		// Cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// syncKeys enables only the page bindings the current window allows
func (m *Model) syncKeys() {
	w := m.pages.Window()
	m.inputHandler.Keys().SyncPagination(w.HasPrev, w.HasNext)
}

// updateViewportHeight fits as many result entries as the terminal allows
func (m *Model) updateViewportHeight() {
	// title, input, pagination, status, key hints and container padding
	const chrome = 12
	available := m.height - chrome
	rows := available / linesPerResult
	if rows < 1 {
		rows = 1
	}
	m.state.ViewportHeight = rows
	m.state.EnsureVisible()
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
