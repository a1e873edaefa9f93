package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"pdfsearch/internal/search"
	"pdfsearch/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, ctrl *search.Controller, pages *search.Coordinator) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State:      state,
			Controller: ctrl,
			Pages:      pages,
		},
	}
}

// ExecuteUpdateQuery creates and executes an update query command
func (e *Executor) ExecuteUpdateQuery(text string) tea.Cmd {
	cmd := NewUpdateQueryCommand(e.ctx, text)
	return cmd.Execute()
}

// ExecuteClearQuery creates and executes a clear query command
func (e *Executor) ExecuteClearQuery() tea.Cmd {
	cmd := NewClearQueryCommand(e.ctx)
	return cmd.Execute()
}

// ExecutePage creates and executes a page command
func (e *Executor) ExecutePage(target PageTarget) tea.Cmd {
	cmd := NewPageCommand(e.ctx, target)
	return cmd.Execute()
}

// ExecuteRetry creates and executes a retry command
func (e *Executor) ExecuteRetry() tea.Cmd {
	cmd := NewRetryCommand(e.ctx)
	return cmd.Execute()
}
