package mock

import (
	"context"

	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/search"
)

// LinkBackend is a test double for search.LinkBackend.
// It allows custom behavior injection via function fields.
type LinkBackend struct {
	// LinksFunc is called by Links if set. If nil, returns no results.
	LinksFunc func(ctx context.Context, query string, max int) ([]string, error)

	callCount int
}

var _ search.LinkBackend = (*LinkBackend)(nil)

// NewLinkBackend creates a mock link backend.
func NewLinkBackend() *LinkBackend {
	return &LinkBackend{}
}

// Links delegates to LinksFunc or returns no results.
func (m *LinkBackend) Links(ctx context.Context, query string, max int) ([]string, error) {
	m.callCount++
	if m.LinksFunc != nil {
		return m.LinksFunc(ctx, query, max)
	}
	return nil, nil
}

// CallCount returns the number of Links calls.
func (m *LinkBackend) CallCount() int {
	return m.callCount
}

// SnippetBackend is a test double for search.SnippetBackend.
type SnippetBackend struct {
	// ResultsFunc is called by Results if set. If nil, returns no results.
	ResultsFunc func(ctx context.Context, query string) ([]core.SearchResult, error)

	callCount int
}

var _ search.SnippetBackend = (*SnippetBackend)(nil)

// NewSnippetBackend creates a mock snippet backend.
func NewSnippetBackend() *SnippetBackend {
	return &SnippetBackend{}
}

// Results delegates to ResultsFunc or returns no results.
func (m *SnippetBackend) Results(ctx context.Context, query string) ([]core.SearchResult, error) {
	m.callCount++
	if m.ResultsFunc != nil {
		return m.ResultsFunc(ctx, query)
	}
	return nil, nil
}

// CallCount returns the number of Results calls.
func (m *SnippetBackend) CallCount() int {
	return m.callCount
}
