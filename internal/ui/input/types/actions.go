package types

// Navigation inside the result list
type NavigateAction struct {
	Direction string // "up", "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Query actions
type UpdateQueryAction struct {
	Text string
}

func (a UpdateQueryAction) Type() string { return "update_query" }

type ClearQueryAction struct{}

func (a ClearQueryAction) Type() string { return "clear_query" }

type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

// Page navigation actions
type NextPageAction struct{}

func (a NextPageAction) Type() string { return "next_page" }

type PrevPageAction struct{}

func (a PrevPageAction) Type() string { return "prev_page" }

type FirstPageAction struct{}

func (a FirstPageAction) Type() string { return "first_page" }

type LastPageAction struct{}

func (a LastPageAction) Type() string { return "last_page" }

// Result actions
type OpenResultAction struct {
	Index int
}

func (a OpenResultAction) Type() string { return "open_result" }

type CopyURLAction struct {
	URL string
}

func (a CopyURLAction) Type() string { return "copy_url" }

// UI actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
