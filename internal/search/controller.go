// Package search holds the client-side query/response state machine: the
// controller deciding which response may update the view, and the pagination
// coordinator projecting page state out of the last accepted response.
package search

import (
	"context"
	"fmt"
	"log"
	"slices"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"pdfsearch/internal/backend"
	"pdfsearch/internal/domain"
	"pdfsearch/internal/eventbus"
)

// DefaultMinQueryLength is the shortest query that is sent to the backend
const DefaultMinQueryLength = 2

// Outcome is what happened to a response when it reached the controller
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeFailed
	OutcomeDiscarded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeFailed:
		return "failed"
	case OutcomeDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// ResponseMsg is produced by the command returned from Search once the backend answers
type ResponseMsg struct {
	Request  domain.SearchRequest
	Response *domain.SearchResponse
	Err      error
}

// Controller owns the current query and the sequence counter. Only the response
// to the most recently issued, still authoritative request may change its ViewState.
// It is not safe for concurrent use; drive it from the bubbletea Update loop.
type Controller struct {
	backend backend.Backend
	bus     eventbus.EventBus
	baseCtx context.Context
	minLen  int
	newID   func() string

	query         string
	seq           uint64 // highest sequence number ever issued
	authoritative uint64 // seq allowed to land, 0 when nothing may
	latest        domain.SearchRequest
	acceptedQuery string
	cancel        context.CancelFunc
	state         domain.ViewState
}

// Option configures a Controller
type Option func(*Controller)

// WithBus publishes lifecycle events to bus
func WithBus(bus eventbus.EventBus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithMinQueryLength overrides the minimum query length
func WithMinQueryLength(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.minLen = n
		}
	}
}

// WithContext sets the parent context of every request
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.baseCtx = ctx
	}
}

// WithRequestIDs replaces the request id generator
func WithRequestIDs(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// NewController creates a controller issuing requests to b
func NewController(b backend.Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: b,
		baseCtx: context.Background(),
		minLen:  DefaultMinQueryLength,
		newID:   uuid.NewString,
		state:   domain.ViewState{Results: []domain.ResultItem{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetQuery records text as the current query. Short queries clear the view and
// invalidate whatever is in flight; longer ones start a search for page 1.
func (c *Controller) SetQuery(text string) tea.Cmd {
	c.query = text

	if utf8.RuneCountInString(text) < c.minLen {
		c.clear()
		return nil
	}

	return c.Search(text, 1)
}

// Search issues a request for query at page and returns the command that performs it.
// The caller is never blocked; the result arrives later as a ResponseMsg.
func (c *Controller) Search(query string, page int) tea.Cmd {
	if page < 1 {
		page = 1
	}

	c.seq++
	req := domain.SearchRequest{
		Query:     query,
		Page:      page,
		Seq:       c.seq,
		RequestID: c.newID(),
	}
	c.query = query
	c.latest = req
	c.authoritative = req.Seq

	c.state.Query = query
	c.state.Loading = true
	c.state.Error = ""
	if query != c.acceptedQuery {
		// Page state of another query must not drive navigation for this one
		c.state.Pagination = nil
	}

	c.cancelInFlight()
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancel = cancel

	c.publish(domain.SearchIssuedEvent{Request: req})

	b := c.backend
	return func() tea.Msg {
		resp, err := b.Search(ctx, req)
		return ResponseMsg{Request: req, Response: resp, Err: err}
	}
}

// Retry re-issues the current query at the page of the last request, accepted or not
func (c *Controller) Retry() tea.Cmd {
	if utf8.RuneCountInString(c.query) < c.minLen {
		return nil
	}
	page := 1
	if c.latest.Query == c.query {
		page = c.latest.Page
	}
	return c.Search(c.query, page)
}

// HandleResponse applies msg if it belongs to the authoritative request.
// Anything else is dropped without touching the view.
func (c *Controller) HandleResponse(msg ResponseMsg) Outcome {
	if msg.Request.Seq == 0 || msg.Request.Seq != c.authoritative {
		log.Printf("Discarding response for %q page %d (seq %d, latest %d)",
			msg.Request.Query, msg.Request.Page, msg.Request.Seq, c.seq)
		err := fmt.Errorf("%w: seq %d, latest %d", domain.ErrStaleResponse, msg.Request.Seq, c.seq)
		if msg.Err != nil {
			err = fmt.Errorf("%w: seq %d, latest %d: %w", domain.ErrStaleResponse, msg.Request.Seq, c.seq, msg.Err)
		}
		c.publish(domain.ResponseDiscardedEvent{
			Request:   msg.Request,
			LatestSeq: c.seq,
			Err:       err,
		})
		return OutcomeDiscarded
	}

	c.authoritative = 0
	c.cancelInFlight()

	if msg.Err != nil {
		c.state = domain.ViewState{
			Query:    c.query,
			Results:  []domain.ResultItem{},
			Error:    domain.FailureMessage(msg.Err),
			Seq:      msg.Request.Seq,
			Searched: true,
		}
		c.acceptedQuery = ""
		log.Printf("Search for %q page %d failed: %v", msg.Request.Query, msg.Request.Page, msg.Err)
		c.publish(domain.SearchFailedEvent{Request: msg.Request, Err: msg.Err})
		return OutcomeFailed
	}

	results := []domain.ResultItem{}
	var pagination *domain.Pagination
	if msg.Response != nil {
		if msg.Response.Results != nil {
			results = msg.Response.Results
		}
		if msg.Response.Pagination != nil {
			p := msg.Response.Pagination.Normalize()
			if p != *msg.Response.Pagination {
				log.Printf("Normalized inconsistent pagination for %q: %+v -> %+v",
					msg.Request.Query, *msg.Response.Pagination, p)
			}
			pagination = &p
		}
	}

	c.state = domain.ViewState{
		Query:      c.query,
		Results:    results,
		Pagination: pagination,
		Seq:        msg.Request.Seq,
		Searched:   true,
	}
	c.acceptedQuery = msg.Request.Query
	c.publish(domain.SearchAcceptedEvent{
		Request:     msg.Request,
		ResultCount: len(results),
		Pagination:  pagination,
	})
	return OutcomeAccepted
}

// Query returns the current query text
func (c *Controller) Query() string {
	return c.query
}

// MinQueryLength returns the shortest query that triggers a request
func (c *Controller) MinQueryLength() int {
	return c.minLen
}

// LatestSeq returns the highest sequence number issued so far
func (c *Controller) LatestSeq() uint64 {
	return c.seq
}

// Pending reports whether a request may still update the view
func (c *Controller) Pending() bool {
	return c.authoritative != 0
}

// ViewState returns a copy of the current view state
func (c *Controller) ViewState() domain.ViewState {
	vs := c.state
	vs.Results = slices.Clone(c.state.Results)
	if vs.Results == nil {
		vs.Results = []domain.ResultItem{}
	}
	if c.state.Pagination != nil {
		p := *c.state.Pagination
		vs.Pagination = &p
	}
	return vs
}

// Pagination returns the last accepted pagination block for the current query, or nil
func (c *Controller) Pagination() *domain.Pagination {
	if c.state.Pagination == nil {
		return nil
	}
	p := *c.state.Pagination
	return &p
}

// Close cancels anything still in flight
func (c *Controller) Close() {
	c.authoritative = 0
	c.cancelInFlight()
}

func (c *Controller) clear() {
	c.authoritative = 0
	c.cancelInFlight()
	c.acceptedQuery = ""
	c.state = domain.ViewState{
		Query:   c.query,
		Results: []domain.ResultItem{},
		Seq:     c.seq,
	}
	c.publish(domain.QueryClearedEvent{
		Query:  c.query,
		Reason: fmt.Errorf("%w: %d of %d characters", domain.ErrQueryTooShort, utf8.RuneCountInString(c.query), c.minLen),
	})
}

func (c *Controller) cancelInFlight() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
