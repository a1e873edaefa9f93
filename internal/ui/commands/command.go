package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"pdfsearch/internal/search"
	"pdfsearch/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State      *state.AppState
	Controller *search.Controller
	Pages      *search.Coordinator
}

// UpdateQueryCommand forwards an edit of the search box
type UpdateQueryCommand struct {
	ctx  *CommandContext
	text string
}

// NewUpdateQueryCommand creates a new update query command
func NewUpdateQueryCommand(ctx *CommandContext, text string) *UpdateQueryCommand {
	return &UpdateQueryCommand{
		ctx:  ctx,
		text: text,
	}
}

// Execute records the query and starts a search when it is long enough
func (c *UpdateQueryCommand) Execute() tea.Cmd {
	return c.ctx.Controller.SetQuery(c.text)
}

// ClearQueryCommand empties the search box and the result list
type ClearQueryCommand struct {
	ctx *CommandContext
}

// NewClearQueryCommand creates a new clear query command
func NewClearQueryCommand(ctx *CommandContext) *ClearQueryCommand {
	return &ClearQueryCommand{ctx: ctx}
}

// Execute clears the query. Any in-flight response becomes stale.
func (c *ClearQueryCommand) Execute() tea.Cmd {
	c.ctx.State.ResetSelection()
	return c.ctx.Controller.SetQuery("")
}

// PageTarget names a pagination intent
type PageTarget int

const (
	PageNext PageTarget = iota
	PagePrev
	PageFirst
	PageLast
)

// PageCommand moves to another page of the current query
type PageCommand struct {
	ctx    *CommandContext
	target PageTarget
}

// NewPageCommand creates a new page command
func NewPageCommand(ctx *CommandContext, target PageTarget) *PageCommand {
	return &PageCommand{
		ctx:    ctx,
		target: target,
	}
}

// Execute returns nil when the target page is not reachable
func (c *PageCommand) Execute() tea.Cmd {
	switch c.target {
	case PageNext:
		return c.ctx.Pages.GoNext()
	case PagePrev:
		return c.ctx.Pages.GoPrev()
	case PageFirst:
		return c.ctx.Pages.GoFirst()
	case PageLast:
		return c.ctx.Pages.GoLast()
	}
	return nil
}

// RetryCommand reissues the last failed request
type RetryCommand struct {
	ctx *CommandContext
}

// NewRetryCommand creates a new retry command
func NewRetryCommand(ctx *CommandContext) *RetryCommand {
	return &RetryCommand{ctx: ctx}
}

// Execute performs the retry
func (c *RetryCommand) Execute() tea.Cmd {
	return c.ctx.Controller.Retry()
}
