package search

import (
	"context"
	"sync"

	"github.com/stayely/pitia-assistente/core"
)

// CachedLinks memoizes a LinkBackend per query. Errors are not cached,
// so transient failures retry on the next call.
type CachedLinks struct {
	backend LinkBackend

	mu    sync.Mutex
	cache map[string][]string
}

var _ LinkBackend = (*CachedLinks)(nil)

// NewCachedLinks wraps backend with an in-memory query cache.
func NewCachedLinks(backend LinkBackend) *CachedLinks {
	return &CachedLinks{
		backend: backend,
		cache:   make(map[string][]string),
	}
}

// Links returns cached URLs when available, delegating otherwise.
func (c *CachedLinks) Links(ctx context.Context, query string, max int) ([]string, error) {
	c.mu.Lock()
	if links, ok := c.cache[query]; ok {
		c.mu.Unlock()
		if len(links) > max {
			links = links[:max]
		}
		return links, nil
	}
	c.mu.Unlock()

	links, err := c.backend.Links(ctx, query, max)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[query] = links
	c.mu.Unlock()
	return links, nil
}

// CachedResults memoizes a SnippetBackend per query.
type CachedResults struct {
	backend SnippetBackend

	mu    sync.Mutex
	cache map[string][]core.SearchResult
}

var _ SnippetBackend = (*CachedResults)(nil)

// NewCachedResults wraps backend with an in-memory query cache.
func NewCachedResults(backend SnippetBackend) *CachedResults {
	return &CachedResults{
		backend: backend,
		cache:   make(map[string][]core.SearchResult),
	}
}

// Results returns cached results when available, delegating otherwise.
func (c *CachedResults) Results(ctx context.Context, query string) ([]core.SearchResult, error) {
	c.mu.Lock()
	if results, ok := c.cache[query]; ok {
		c.mu.Unlock()
		return results, nil
	}
	c.mu.Unlock()

	results, err := c.backend.Results(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[query] = results
	c.mu.Unlock()
	return results, nil
}
