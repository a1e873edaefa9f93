package search

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"pdfsearch/internal/domain"
	"pdfsearch/internal/eventbus"
)

// fakeBackend answers from a table keyed by "query/page"; unknown keys get one
// result named after the query and page.
type fakeBackend struct {
	mu        sync.Mutex
	responses map[string]*domain.SearchResponse
	errs      map[string]error
	calls     []domain.SearchRequest
	ctxErrs   []error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		responses: make(map[string]*domain.SearchResponse),
		errs:      make(map[string]error),
	}
}

func key(query string, page int) string {
	return fmt.Sprintf("%s/%d", query, page)
}

func (b *fakeBackend) respond(query string, page int, resp *domain.SearchResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[key(query, page)] = resp
}

func (b *fakeBackend) fail(query string, page int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs[key(query, page)] = err
}

func (b *fakeBackend) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, req)
	b.ctxErrs = append(b.ctxErrs, ctx.Err())

	if err := b.errs[key(req.Query, req.Page)]; err != nil {
		return nil, err
	}
	if resp, ok := b.responses[key(req.Query, req.Page)]; ok {
		return resp, nil
	}
	return &domain.SearchResponse{
		Results: []domain.ResultItem{{Filename: key(req.Query, req.Page) + ".pdf"}},
	}, nil
}

// run executes a command the way the bubbletea runtime would and returns its message
func run(cmd tea.Cmd) ResponseMsg {
	if cmd == nil {
		panic("nil command")
	}
	return cmd().(ResponseMsg)
}

type recordingBus struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (b *recordingBus) Publish(e domain.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(domain.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) ofType(t domain.EventType) []domain.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("req-%d", n)
	}
}
