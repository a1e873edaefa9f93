package ui

// pagerDoneMsg contains the result of showing a document in the pager
type pagerDoneMsg struct {
	filename string
	err      error
}

// clipboardMsg contains the result of copying a result url
type clipboardMsg struct {
	url string
	err error
}

// clearStatusMsg clears the status bar
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
