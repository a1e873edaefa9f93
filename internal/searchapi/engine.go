package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

// Hit is one matching document
type Hit struct {
	Filename string
	Snippet  string // first highlight fragment, may be empty
}

// Hits is one page of matches plus the total match count
type Hits struct {
	Total int
	Items []Hit
}

// Engine runs full-text queries against the document index
type Engine interface {
	Search(ctx context.Context, query string, from, size int) (*Hits, error)
	Ping(ctx context.Context) error
}

// ESEngine queries an Elasticsearch index
type ESEngine struct {
	client *elasticsearch.Client
	index  string
}

// NewESEngine creates an engine for index on the cluster at host
func NewESEngine(host, index string) (*ESEngine, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return nil, fmt.Errorf("creating elasticsearch client: %w", err)
	}
	return &ESEngine{client: client, index: index}, nil
}

type esResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source struct {
				Filename string `json:"filename"`
			} `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
}

// buildQuery matches query against the content field with one 150 character highlight fragment
func buildQuery(query string, from, size int) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"content"},
			},
		},
		"highlight": map[string]interface{}{
			"fields": map[string]interface{}{
				"content": map[string]interface{}{
					"fragment_size":       150,
					"number_of_fragments": 1,
				},
			},
		},
		"_source": []string{"filename"},
		"from":    from,
		"size":    size,
	}
}

func (e *ESEngine) Search(ctx context.Context, query string, from, size int) (*Hits, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(query, from, size)); err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(&buf),
		e.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch returned %s", res.Status())
	}

	var raw esResponse
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	hits := &Hits{
		Total: raw.Hits.Total.Value,
		Items: make([]Hit, 0, len(raw.Hits.Hits)),
	}
	for _, h := range raw.Hits.Hits {
		hit := Hit{Filename: h.Source.Filename}
		if hit.Filename == "" {
			hit.Filename = "unknown.pdf"
		}
		if frags := h.Highlight["content"]; len(frags) > 0 {
			hit.Snippet = frags[0]
		}
		hits.Items = append(hits.Items, hit)
	}
	return hits, nil
}

// Ping reports whether the cluster answers
func (e *ESEngine) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch returned %s", res.Status())
	}
	return nil
}
