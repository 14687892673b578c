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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/stayely/pitia-assistente/core"
)

const (
	defaultEndpoint = "https://html.duckduckgo.com/html/"
	defaultLanguage = "pt-BR"
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	// maxSnippetResults caps the snippet path at the top results.
	maxSnippetResults = 3
)

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. It implements both
// LinkBackend and SnippetBackend.
type DuckDuckGo struct {
	client   *http.Client
	endpoint string
	language string
	logger   *slog.Logger
}

var (
	_ LinkBackend    = (*DuckDuckGo)(nil)
	_ SnippetBackend = (*DuckDuckGo)(nil)
)

// DuckDuckGoOption configures a DuckDuckGo backend.
type DuckDuckGoOption func(*DuckDuckGo)

// WithHTTPClient sets the HTTP client used for search requests.
func WithHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if client != nil {
			d.client = client
		}
	}
}

// WithEndpoint overrides the search endpoint. Used by tests.
func WithEndpoint(endpoint string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if endpoint != "" {
			d.endpoint = endpoint
		}
	}
}

// WithLanguage sets the Accept-Language header sent on searches.
func WithLanguage(lang string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if lang != "" {
			d.language = lang
		}
	}
}

// WithDuckDuckGoLogger sets the backend's logger.
func WithDuckDuckGoLogger(logger *slog.Logger) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDuckDuckGo creates a DuckDuckGo backend.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		client:   http.DefaultClient,
		endpoint: defaultEndpoint,
		language: defaultLanguage,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Links returns up to max result URLs for query.
func (d *DuckDuckGo) Links(ctx context.Context, query string, max int) ([]string, error) {
	doc, err := d.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if link := unwrapRedirect(href); link != "" {
			links = append(links, link)
		}
		return len(links) < max
	})

	d.logger.Debug("search links",
		slog.String("query", query),
		slog.Int("count", len(links)))
	return links, nil
}

// Results returns the top results with title, URL and snippet.
func (d *DuckDuckGo) Results(ctx context.Context, query string) ([]core.SearchResult, error) {
	doc, err := d.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	var results []core.SearchResult
	doc.Find(".result__body").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find(".result__title").Text())
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())
		href, _ := s.Find("a.result__a").Attr("href")
		link := unwrapRedirect(href)
		if title == "" || link == "" {
			return true
		}
		results = append(results, core.SearchResult{
			Title:   title,
			URL:     link,
			Snippet: snippet,
		})
		return len(results) < maxSnippetResults
	})

	d.logger.Debug("search results",
		slog.String("query", query),
		slog.Int("count", len(results)))
	return results, nil
}

func (d *DuckDuckGo) fetch(ctx context.Context, query string) (*goquery.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	searchURL := fmt.Sprintf("%s?q=%s", d.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", d.language)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return doc, nil
}

// unwrapRedirect extracts the destination from DuckDuckGo's redirect
// links (the uddg query parameter). Direct links pass through.
func unwrapRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if actual := parsed.Query().Get("uddg"); actual != "" {
		return actual
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}
