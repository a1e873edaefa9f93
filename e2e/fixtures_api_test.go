//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
)

// CreateTestWorkspace creates an isolated HOME for the app under test
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	workspace, err := os.MkdirTemp("", "pdfsearch-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = workspace
	return workspace, nil
}

type apiResult struct {
	Filename string `json:"filename"`
	Snippet  string `json:"snippet,omitempty"`
	URL      string `json:"url,omitempty"`
}

type apiPagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalResults int  `json:"total_results"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

type apiResponse struct {
	Results    []apiResult    `json:"results"`
	Pagination *apiPagination `json:"pagination,omitempty"`
}

// FakeSearchAPI serves /search with perPage hits on each of pages pages
type FakeSearchAPI struct {
	*httptest.Server

	pages   int
	perPage int
	status  int

	mu      sync.Mutex
	queries []string
}

// APIOption configures a FakeSearchAPI
type APIOption func(*FakeSearchAPI)

// WithPages sets how many pages every query yields
func WithPages(n int) APIOption {
	return func(api *FakeSearchAPI) { api.pages = n }
}

// WithStatus makes every request fail with the given HTTP status
func WithStatus(code int) APIOption {
	return func(api *FakeSearchAPI) { api.status = code }
}

// StartSearchAPI starts a fake search backend that lives for the test
func StartSearchAPI(t *testing.T, opts ...APIOption) *FakeSearchAPI {
	t.Helper()
	api := &FakeSearchAPI{pages: 1, perPage: 3}
	for _, opt := range opts {
		opt(api)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", api.handleSearch)
	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

// Queries returns the q parameters seen so far, in arrival order
func (api *FakeSearchAPI) Queries() []string {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]string(nil), api.queries...)
}

func (api *FakeSearchAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	api.mu.Lock()
	api.queries = append(api.queries, q)
	api.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if api.status != 0 {
		w.WriteHeader(api.status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "index unavailable"})
		return
	}

	resp := apiResponse{Results: []apiResult{}}
	if page <= api.pages {
		for i := 1; i <= api.perPage; i++ {
			name := fmt.Sprintf("%s-page%d-hit%d.pdf", q, page, i)
			resp.Results = append(resp.Results, apiResult{
				Filename: name,
				Snippet:  "a document about <em>" + q + "</em>",
				URL:      "https://cdn.example.com/" + name,
			})
		}
	}
	resp.Pagination = &apiPagination{
		CurrentPage:  page,
		TotalPages:   api.pages,
		TotalResults: api.pages * api.perPage,
		HasNext:      page < api.pages,
		HasPrev:      page > 1,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
