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


// Package fetch downloads web pages and extracts their readable text.
package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/trust"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	defaultLanguage  = "pt-BR"

	// maxRetries bounds retry attempts for retryable server errors.
	maxRetries = 3
)

// ErrBadStatus is returned when a page answers with a non-success status.
var ErrBadStatus = errors.New("unexpected response status")

// Fetcher downloads pages, extracts their content and caches results
// per URL. Safe for concurrent use.
type Fetcher struct {
	client         *http.Client
	insecureClient *http.Client
	trust          *trust.Table
	maxContentLen  int
	userAgent      string
	language       string
	logger         *slog.Logger

	mu    sync.Mutex
	cache map[string]*core.PageContent
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client used for fetches. The insecure
// fallback client is unaffected.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithMaxContentLen caps extracted content length in bytes.
func WithMaxContentLen(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxContentLen = n
		}
	}
}

// WithUserAgent overrides the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithLanguage sets the Accept-Language header value.
func WithLanguage(lang string) Option {
	return func(f *Fetcher) {
		if lang != "" {
			f.language = lang
		}
	}
}

// WithLogger sets the fetcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a Fetcher. Certificate verification failures are retried
// without verification only for domains present in table with a
// positive trust level.
func New(table *trust.Table, timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	insecureTransport := http.DefaultTransport.(*http.Transport).Clone()
	insecureTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	f := &Fetcher{
		client:         &http.Client{Timeout: timeout},
		insecureClient: &http.Client{Timeout: timeout, Transport: insecureTransport},
		trust:          table,
		maxContentLen:  5000,
		userAgent:      defaultUserAgent,
		language:       defaultLanguage,
		logger:         slog.Default(),
		cache:          make(map[string]*core.PageContent),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads pageURL and extracts its content. Results are cached
// per URL. On failure the returned PageContent carries an explanatory
// title and empty text alongside the error, so callers can degrade
// instead of aborting.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*core.PageContent, error) {
	f.mu.Lock()
	if page, ok := f.cache[pageURL]; ok {
		f.mu.Unlock()
		return page, nil
	}
	f.mu.Unlock()

	start := time.Now()
	page, err := f.fetch(ctx, pageURL)
	page.FetchDuration = time.Since(start)

	if err != nil {
		f.logger.Warn("page fetch failed",
			slog.String("url", pageURL),
			slog.Any("err", err))
		return page, err
	}

	f.mu.Lock()
	f.cache[pageURL] = page
	f.mu.Unlock()
	return page, nil
}

func (f *Fetcher) fetch(ctx context.Context, pageURL string) (*core.PageContent, error) {
	page := f.fallback(pageURL)

	resp, insecure, err := f.get(ctx, pageURL)
	if err != nil {
		return page, err
	}
	defer resp.Body.Close()

	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return page, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return page, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	page.Title, page.Text = extract(doc, f.maxContentLen)
	page.Insecure = insecure
	return page, nil
}

// get performs the request with retry on transient server errors. When
// certificate verification fails for a trusted domain, the request is
// retried once without verification.
func (f *Fetcher) get(ctx context.Context, pageURL string) (resp *http.Response, insecure bool, err error) {
	resp, err = f.getWithRetry(ctx, f.client, pageURL)
	if err == nil {
		return resp, false, nil
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) && f.trust.Level(pageURL) > 0 {
		f.logger.Warn("certificate verification failed for trusted domain, retrying without verification",
			slog.String("url", pageURL))
		resp, err = f.getWithRetry(ctx, f.insecureClient, pageURL)
		if err == nil {
			return resp, true, nil
		}
	}
	return nil, false, err
}

func (f *Fetcher) getWithRetry(ctx context.Context, client *http.Client, pageURL string) (*http.Response, error) {
	var resp *http.Response
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", f.userAgent)
		req.Header.Set("Accept-Language", f.language)

		r, err := client.Do(req)
		if err != nil {
			return backoff.Permanent(err)
		}

		if retryableStatus(r.StatusCode) {
			r.Body.Close()
			return fmt.Errorf("%w: %d", ErrBadStatus, r.StatusCode)
		}
		if r.StatusCode < 200 || r.StatusCode > 299 {
			r.Body.Close()
			return backoff.Permanent(fmt.Errorf("%w: %d", ErrBadStatus, r.StatusCode))
		}

		resp = r
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// fallback builds the PageContent returned when a page cannot be read.
func (f *Fetcher) fallback(pageURL string) *core.PageContent {
	title := "Erro ao acessar conteúdo"
	if parsed, err := url.Parse(pageURL); err == nil && parsed.Host != "" {
		title = fmt.Sprintf("Não foi possível acessar o conteúdo de %s", parsed.Host)
	}
	return &core.PageContent{
		URL:        pageURL,
		Title:      title,
		TrustScore: f.trust.Level(pageURL),
	}
}
