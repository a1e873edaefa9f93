package searchapi

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pdfsearch/internal/domain"
)

// MaxResultWindow is Elasticsearch's default index.max_result_window; from+size may not exceed it
const MaxResultWindow = 10000

// Server answers GET /search in the shape the client decodes
type Server struct {
	engine Engine
	cache  Cache // nil disables caching
	cfg    Config
}

// NewServer creates a server. cache may be nil.
func NewServer(engine Engine, cache Cache, cfg Config) *Server {
	return &Server{engine: engine, cache: cache, cfg: cfg}
}

// Router builds the gin engine with every route and middleware installed
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors())

	r.GET("/search", s.handleSearch)
	r.GET("/healthz", s.handleHealth)
	return r
}

// cors sets the headers the browser frontend relied on
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, errorBody("Missing query parameter q"))
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			c.JSON(http.StatusBadRequest, errorBody("Invalid page parameter: "+raw))
			return
		}
		page = p
	}

	ctx := c.Request.Context()
	requestID := c.GetHeader("X-Request-ID")

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, query, page)
		if err != nil {
			log.Printf("[Search %s] cache read failed: %v", requestID, err)
		} else if cached != nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	resp, err := s.search(ctx, query, page)
	if err != nil {
		log.Printf("[Search %s] %q page %d failed: %v", requestID, query, page, err)
		c.JSON(http.StatusInternalServerError, errorBody("Search request failed: "+err.Error()))
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, page, resp); err != nil {
			log.Printf("[Search %s] cache write failed: %v", requestID, err)
		}
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, resp)
}

// search runs the query and shapes hits into a response with pagination.
// A page past the end yields no results and a block clamped to the last page.
func (s *Server) search(ctx context.Context, query string, page int) (*domain.SearchResponse, error) {
	timeout := s.cfg.UpstreamTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	size := s.cfg.PageSize
	// Pages that would end past the index window only need the hit count
	lastReachable := MaxResultWindow / size
	from, fetch := 0, 0
	if page <= lastReachable {
		from, fetch = (page-1)*size, size
	}

	hits, err := s.engine.Search(ctx, query, from, fetch)
	if err != nil {
		return nil, err
	}

	totalPages := (hits.Total + size - 1) / size
	if totalPages > lastReachable {
		totalPages = lastReachable
	}
	results := make([]domain.ResultItem, 0, len(hits.Items))
	if fetch > 0 && page <= totalPages {
		for _, h := range hits.Items {
			results = append(results, domain.ResultItem{
				Filename: h.Filename,
				Snippet:  h.Snippet,
				URL:      s.documentURL(h.Filename),
			})
		}
	}

	pg := domain.NewPagination(page, totalPages, hits.Total)
	return &domain.SearchResponse{
		Results:    results,
		Pagination: &pg,
	}, nil
}

// documentURL escapes the whole filename, slashes included
func (s *Server) documentURL(filename string) string {
	if s.cfg.CloudFrontDomain == "" {
		return ""
	}
	return "https://" + s.cfg.CloudFrontDomain + "/" + url.PathEscape(filename)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.engine.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
