package search

import (
	"context"

	"github.com/stayely/pitia-assistente/core"
)

// LinkBackend returns result URLs for a query, most relevant first.
type LinkBackend interface {
	Links(ctx context.Context, query string, max int) ([]string, error)
}

// SnippetBackend returns full search results including snippets.
type SnippetBackend interface {
	Results(ctx context.Context, query string) ([]core.SearchResult, error)
}
