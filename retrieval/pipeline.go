// Copyright 2025 Stayely
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package retrieval turns a query into ranked page contents: search for
// links, fetch the most trusted candidates concurrently, score each page
// by query-term relevance weighted by domain trust.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/panjf2000/ants/v2"
	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/search"
	"github.com/stayely/pitia-assistente/text"
	"github.com/stayely/pitia-assistente/trust"
)

const (
	defaultPoolSize  = 5
	defaultMaxBatch  = 5
	defaultExitTrust = 3
	defaultExitRel   = 0.5
)

// PageFetcher downloads one page. fetch.Fetcher implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*core.PageContent, error)
}

// Pipeline orchestrates search, concurrent fetching and ranking.
type Pipeline struct {
	searcher search.LinkBackend
	fetcher  PageFetcher
	trust    *trust.Table
	pool     *ants.Pool

	maxBatch      int
	exitTrust     int
	exitRelevance float64
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent fetching.
// Default is 5.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithMaxBatch caps how many search results are fetched per query.
func WithMaxBatch(n int) Option {
	return func(p *Pipeline) error {
		if n > 0 {
			p.maxBatch = n
		}
		return nil
	}
}

// WithEarlyExit sets the trust level and relevance a page must reach for
// the pipeline to return it alone without waiting for the rest.
func WithEarlyExit(trustLevel int, relevance float64) Option {
	return func(p *Pipeline) error {
		p.exitTrust = trustLevel
		p.exitRelevance = relevance
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a retrieval pipeline.
func NewPipeline(searcher search.LinkBackend, fetcher PageFetcher, table *trust.Table, opts ...Option) (*Pipeline, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if table == nil {
		table = trust.NewDefault()
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		searcher:      searcher,
		fetcher:       fetcher,
		trust:         table,
		pool:          pool,
		maxBatch:      defaultMaxBatch,
		exitTrust:     defaultExitTrust,
		exitRelevance: defaultExitRel,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Release frees the worker pool. The pipeline must not be used after.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Retrieve searches for query and returns scored pages, best first.
func (p *Pipeline) Retrieve(ctx context.Context, query string) ([]*core.PageContent, error) {
	return p.RetrieveWithMonitor(ctx, query, nil)
}

// RetrieveWithMonitor is Retrieve with observation hooks. The monitor
// receives callbacks at each stage of the retrieval process.
func (p *Pipeline) RetrieveWithMonitor(ctx context.Context, query string, monitor Monitor) ([]*core.PageContent, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	links, err := p.searcher.Links(ctx, query, p.maxBatch)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	if len(links) == 0 {
		return nil, ErrNoResults
	}

	// Most trusted domains are fetched first, preserving search order
	// within a level.
	p.trust.SortByLevel(links)
	if len(links) > p.maxBatch {
		links = links[:p.maxBatch]
	}
	monitor.AfterSearch(links)

	// Buffered so workers never block after an early exit abandons the
	// collection loop.
	pages := make(chan *core.PageContent, len(links))
	for _, link := range links {
		link := link
		submitErr := p.pool.Submit(func() {
			page, err := p.fetcher.Fetch(ctx, link)
			if err != nil {
				pages <- nil
				return
			}
			pages <- page
		})
		if submitErr != nil {
			p.logger.Warn("failed to submit fetch task",
				slog.String("url", link),
				slog.Any("err", submitErr))
			pages <- nil
		}
	}

	terms := text.Terms(query)
	var scored []*core.PageContent
	for range links {
		page := <-pages
		if page == nil {
			continue
		}
		if page.Text == "" {
			// Fallback pages carry no text; the monitor still sees them.
			monitor.PageFetched(page)
			continue
		}

		page.Relevance = relevance(page.Text, terms)
		page.Score = page.Relevance * float64(page.TrustScore)
		if err := core.ValidatePageContent(page); err != nil {
			p.logger.Warn("discarding page with invalid score",
				slog.String("url", page.URL),
				slog.Any("err", err))
			continue
		}
		monitor.PageFetched(page)

		if page.TrustScore >= p.exitTrust && page.Relevance >= p.exitRelevance {
			p.logger.Debug("early exit on trusted relevant page",
				slog.String("url", page.URL),
				slog.Float64("relevance", page.Relevance))
			monitor.EarlyExit(page)
			return []*core.PageContent{page}, nil
		}
		scored = append(scored, page)
	}

	if len(scored) == 0 {
		return nil, ErrNoContent
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].TrustScore > scored[j].TrustScore
	})
	monitor.Finish(scored)
	return scored, nil
}

// relevance is the fraction of distinct query terms found in content.
func relevance(content string, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	found := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}
