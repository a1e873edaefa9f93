package search

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// Window is the page state shown to the user. It is recomputed from the
// controller on every call and never stored.
type Window struct {
	Visible      bool // false when there is no pagination block
	Page         int
	TotalPages   int
	TotalResults int
	Shown        int // results on the current page
	HasNext      bool
	HasPrev      bool
}

// Coordinator turns navigation intents into searches for the controller's current query
type Coordinator struct {
	ctrl *Controller
}

// NewCoordinator creates a coordinator reading page state from ctrl
func NewCoordinator(ctrl *Controller) *Coordinator {
	return &Coordinator{ctrl: ctrl}
}

// Window projects the last accepted pagination block
func (p *Coordinator) Window() Window {
	vs := p.ctrl.ViewState()
	if vs.Pagination == nil {
		return Window{}
	}
	pg := vs.Pagination
	return Window{
		Visible:      true,
		Page:         pg.CurrentPage,
		TotalPages:   pg.TotalPages,
		TotalResults: pg.TotalResults,
		Shown:        len(vs.Results),
		HasNext:      pg.HasNext,
		HasPrev:      pg.HasPrev,
	}
}

// Summary renders the page indicator, or "" when no pagination is shown
func (p *Coordinator) Summary() string {
	w := p.Window()
	if !w.Visible {
		return ""
	}
	return fmt.Sprintf("Showing %d of %d results (Page %d of %d)", w.Shown, w.TotalResults, w.Page, w.TotalPages)
}

// GoNext requests the following page. It is a no-op unless has_next is set.
func (p *Coordinator) GoNext() tea.Cmd {
	w := p.Window()
	if !w.Visible || !w.HasNext {
		return nil
	}
	return p.ctrl.Search(p.ctrl.Query(), w.Page+1)
}

// GoPrev requests the preceding page. It is a no-op unless has_prev is set.
func (p *Coordinator) GoPrev() tea.Cmd {
	w := p.Window()
	if !w.Visible || !w.HasPrev {
		return nil
	}
	return p.ctrl.Search(p.ctrl.Query(), w.Page-1)
}

// GoTo jumps to page. Pages outside the last accepted bounds, and the current
// page itself, are rejected rather than sent to the backend.
func (p *Coordinator) GoTo(page int) tea.Cmd {
	w := p.Window()
	if !w.Visible || page == w.Page {
		return nil
	}
	if page < 1 || page > w.TotalPages {
		log.Printf("Rejecting navigation to page %d of %d", page, w.TotalPages)
		return nil
	}
	return p.ctrl.Search(p.ctrl.Query(), page)
}

// GoFirst jumps to page 1
func (p *Coordinator) GoFirst() tea.Cmd {
	return p.GoTo(1)
}

// GoLast jumps to the last known page
func (p *Coordinator) GoLast() tea.Cmd {
	return p.GoTo(p.Window().TotalPages)
}
