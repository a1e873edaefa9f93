package state

// AppState holds UI-only state. Search state lives in the controller.
type AppState struct {
	// Selection state
	SelectedIndex int // currently selected result on the page

	// UI state
	ViewportOffset   int // offset for scrolling
	ViewportHeight   int // available height for the result list
	ShowHelp         bool
	HelpScrollOffset int    // scroll offset for help popup
	StatusMessage    string // status bar message
	InPager          bool   // the terminal is handed to the pager
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		ViewportHeight: 10, // Default
	}
}

// ResetSelection moves the cursor back to the first result
func (s *AppState) ResetSelection() {
	s.SelectedIndex = 0
	s.ViewportOffset = 0
}

// MoveSelection moves the cursor by delta, clamped to [0, count)
func (s *AppState) MoveSelection(delta, count int) {
	if count <= 0 {
		s.ResetSelection()
		return
	}
	s.SelectedIndex += delta
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= count {
		s.SelectedIndex = count - 1
	}
	s.EnsureVisible()
}

// EnsureVisible scrolls the viewport so the selection is on screen
func (s *AppState) EnsureVisible() {
	if s.ViewportHeight <= 0 {
		return
	}
	if s.SelectedIndex < s.ViewportOffset {
		s.ViewportOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ViewportOffset+s.ViewportHeight {
		s.ViewportOffset = s.SelectedIndex - s.ViewportHeight + 1
	}
}
