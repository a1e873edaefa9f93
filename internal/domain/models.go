package domain

// ResultItem is a single ranked hit returned by the search backend
type ResultItem struct {
	Filename string `json:"filename"`
	Snippet  string `json:"snippet,omitempty"` // pre-rendered markup, opaque to the client
	URL      string `json:"url,omitempty"`
}

// Pagination describes where a response sits inside a multi-page result set
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalResults int  `json:"total_results"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

// NewPagination builds a consistent block from page numbers alone
func NewPagination(currentPage, totalPages, totalResults int) Pagination {
	p := Pagination{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalResults: totalResults,
	}
	return p.Normalize()
}

// Normalize clamps page numbers into range and re-derives the navigation flags,
// so that has_prev <=> current_page > 1 and has_next <=> current_page < total_pages.
func (p Pagination) Normalize() Pagination {
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
	if p.TotalResults < 0 {
		p.TotalResults = 0
	}
	p.HasPrev = p.CurrentPage > 1
	p.HasNext = p.CurrentPage < p.TotalPages
	return p
}

// Consistent reports whether the block already satisfies the pagination invariants
func (p Pagination) Consistent() bool {
	return p == p.Normalize()
}

// SearchResponse is the decoded body of a successful backend call
type SearchResponse struct {
	Results    []ResultItem `json:"results"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

// SearchRequest identifies one call issued by the controller
type SearchRequest struct {
	Query     string
	Page      int
	Seq       uint64 // strictly increasing per controller
	RequestID string // sent as X-Request-ID
}

// ViewState is everything the presentation layer needs to draw the search screen.
// It is replaced wholesale on every transition.
type ViewState struct {
	Query      string
	Results    []ResultItem
	Pagination *Pagination // nil when no pagination should be shown
	Loading    bool
	Error      string // empty when there is no error
	Seq        uint64 // request whose outcome this state reflects
	Searched   bool   // an outcome for the current query has landed
}

// HasError reports whether an error message should be displayed
func (v ViewState) HasError() bool {
	return v.Error != ""
}

// Empty reports whether an accepted search produced no results
func (v ViewState) Empty() bool {
	return v.Searched && !v.Loading && v.Error == "" && len(v.Results) == 0
}
