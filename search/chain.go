package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Chain tries LinkBackends in order, returning the first non-empty
// result set. Backend errors are logged and treated as empty results so
// a failing backend never takes the whole chain down.
type Chain struct {
	backends []LinkBackend
	logger   *slog.Logger
}

var _ LinkBackend = (*Chain)(nil)

// NewChain creates a Chain over backends.
func NewChain(logger *slog.Logger, backends ...LinkBackend) (*Chain, error) {
	if len(backends) == 0 {
		return nil, ErrBackendRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{backends: backends, logger: logger}, nil
}

// Links tries each backend in order.
func (c *Chain) Links(ctx context.Context, query string, max int) ([]string, error) {
	var lastErr error
	for i, backend := range c.backends {
		links, err := backend.Links(ctx, query, max)
		if err != nil {
			c.logger.Warn("search backend failed",
				slog.Int("backend", i),
				slog.String("query", query),
				slog.Any("err", err))
			lastErr = err
			continue
		}
		if len(links) > 0 {
			return links, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// SiteFilter restricts queries to a set of domains by appending
// DuckDuckGo "site:" operators before delegating.
type SiteFilter struct {
	backend LinkBackend
	domains []string
}

var _ LinkBackend = (*SiteFilter)(nil)

// NewSiteFilter wraps backend so every query is restricted to domains.
func NewSiteFilter(backend LinkBackend, domains []string) *SiteFilter {
	return &SiteFilter{backend: backend, domains: domains}
}

// Links delegates with the filtered query.
func (f *SiteFilter) Links(ctx context.Context, query string, max int) ([]string, error) {
	if len(f.domains) == 0 {
		return f.backend.Links(ctx, query, max)
	}
	sites := make([]string, len(f.domains))
	for i, domain := range f.domains {
		sites[i] = "site:" + domain
	}
	filtered := fmt.Sprintf("%s (%s)", query, strings.Join(sites, " OR "))
	return f.backend.Links(ctx, filtered, max)
}
