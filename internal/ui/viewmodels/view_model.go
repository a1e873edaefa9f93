package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"pdfsearch/internal/search"
	"pdfsearch/internal/ui/input/types"
	"pdfsearch/internal/ui/state"
	"pdfsearch/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	ctrl      *search.Controller
	pages     *search.Coordinator
	width     int
	height    int
	help      help.Model
	keys      help.KeyMap
	textInput textinput.Model
	spinner   spinner.Model
	dots      paginator.Model
	mode      types.Mode
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, ctrl *search.Controller, pages *search.Coordinator) *ViewModel {
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = "•"
	dots.InactiveDot = "·"

	return &ViewModel{
		state: appState,
		ctrl:  ctrl,
		pages: pages,
		help:  help.New(),
		dots:  dots,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetHelp sets the help model and the bindings it renders
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode types.Mode) {
	vm.mode = mode
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.textInput = textInput
}

// UpdateSpinner updates the spinner model
func (vm *ViewModel) UpdateSpinner(s spinner.Model) {
	vm.spinner = s
}

// pageDots renders one dot per page, up to a readable limit
func (vm *ViewModel) pageDots(w search.Window) string {
	const maxDots = 20
	if !w.Visible || w.TotalPages <= 1 || w.TotalPages > maxDots {
		return ""
	}
	vm.dots.PerPage = 1
	vm.dots.SetTotalPages(w.TotalPages)
	vm.dots.Page = w.Page - 1
	return vm.dots.View()
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	w := vm.pages.Window()
	return views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Search:         vm.ctrl.ViewState(),
		MinQueryLength: vm.ctrl.MinQueryLength(),
		InputView:      vm.textInput.View(),
		InputMode:      vm.mode.String(),
		Spinner:        vm.spinner.View(),
		Summary:        vm.pages.Summary(),
		PageDots:       vm.pageDots(w),
		SelectedIndex:  vm.state.SelectedIndex,
		ViewportOffset: vm.state.ViewportOffset,
		ViewportHeight: vm.state.ViewportHeight,
		StatusMessage:  vm.state.StatusMessage,
		ShowHelp:       vm.state.ShowHelp,
		HelpModel:      vm.help,
		Keys:           vm.keys,
	}
}
