package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// ResultOps handles actions on a single result that leave the main screen
type ResultOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
	copy    func(string) error
}

// NewResultOps creates a new ResultOps instance
func NewResultOps() *ResultOps {
	ops := &ResultOps{copy: clipboard.WriteAll}
	if clipboard.Unsupported {
		ops.copy = func(string) error { return fmt.Errorf("clipboard not supported") }
	}
	return ops
}

// SetProgram sets the program reference for terminal management
func (r *ResultOps) SetProgram(p *tea.Program) {
	r.program = p
}

// ShowInPager shows content using the ov pager
func (r *ResultOps) ShowInPager(content string) error {
	if r.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := r.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = r.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// CopyURL puts url on the system clipboard
func (r *ResultOps) CopyURL(url string) error {
	if url == "" {
		return fmt.Errorf("result has no url")
	}
	return r.copy(url)
}
