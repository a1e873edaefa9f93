package input

import (
	"pdfsearch/internal/domain"
	"pdfsearch/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
	View  domain.ViewState
}

func (c *ModelContext) Query() string {
	return c.View.Query
}

func (c *ModelContext) ResultCount() int {
	return len(c.View.Results)
}

func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// CurrentURL returns the url of the selected result, if it has one
func (c *ModelContext) CurrentURL() string {
	i := c.State.SelectedIndex
	if i < 0 || i >= len(c.View.Results) {
		return ""
	}
	return c.View.Results[i].URL
}

func (c *ModelContext) HasNextPage() bool {
	return c.View.Pagination != nil && c.View.Pagination.HasNext
}

func (c *ModelContext) HasPrevPage() bool {
	return c.View.Pagination != nil && c.View.Pagination.HasPrev
}
