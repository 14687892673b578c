package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stayely/pitia-assistente/search"
	"github.com/stayely/pitia-assistente/search/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_RequiresBackend(t *testing.T) {
	_, err := search.NewChain(nil)
	assert.ErrorIs(t, err, search.ErrBackendRequired)
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	first := mock.NewLinkBackend()
	first.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
		return []string{"https://a.com"}, nil
	}
	second := mock.NewLinkBackend()

	chain, err := search.NewChain(nil, first, second)
	require.NoError(t, err)

	links, err := chain.Links(context.Background(), "pergunta", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com"}, links)
	assert.Equal(t, 0, second.CallCount())
}

func TestChain_FallsThroughEmpty(t *testing.T) {
	first := mock.NewLinkBackend()
	second := mock.NewLinkBackend()
	second.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
		return []string{"https://b.com"}, nil
	}

	chain, err := search.NewChain(nil, first, second)
	require.NoError(t, err)

	links, err := chain.Links(context.Background(), "pergunta", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://b.com"}, links)
}

func TestChain_FallsThroughError(t *testing.T) {
	broken := mock.NewLinkBackend()
	broken.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
		return nil, errors.New("boom")
	}
	working := mock.NewLinkBackend()
	working.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
		return []string{"https://c.com"}, nil
	}

	chain, err := search.NewChain(nil, broken, working)
	require.NoError(t, err)

	links, err := chain.Links(context.Background(), "pergunta", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://c.com"}, links)
}

func TestChain_AllFail(t *testing.T) {
	broken := mock.NewLinkBackend()
	broken.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
		return nil, errors.New("boom")
	}

	chain, err := search.NewChain(nil, broken)
	require.NoError(t, err)

	_, err = chain.Links(context.Background(), "pergunta", 5)
	assert.Error(t, err)
}

func TestChain_AllEmpty(t *testing.T) {
	chain, err := search.NewChain(nil, mock.NewLinkBackend(), mock.NewLinkBackend())
	require.NoError(t, err)

	links, err := chain.Links(context.Background(), "pergunta", 5)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestSiteFilter_AppendsSites(t *testing.T) {
	var gotQuery string
	backend := mock.NewLinkBackend()
	backend.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
		gotQuery = query
		return nil, nil
	}

	filter := search.NewSiteFilter(backend, []string{"wikipedia.org", "gov.br"})
	_, err := filter.Links(context.Background(), "mitologia grega", 5)
	require.NoError(t, err)

	assert.Equal(t, "mitologia grega (site:wikipedia.org OR site:gov.br)", gotQuery)
}

func TestSiteFilter_NoDomains(t *testing.T) {
	var gotQuery string
	backend := mock.NewLinkBackend()
	backend.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
		gotQuery = query
		return nil, nil
	}

	filter := search.NewSiteFilter(backend, nil)
	_, err := filter.Links(context.Background(), "mitologia grega", 5)
	require.NoError(t, err)
	assert.Equal(t, "mitologia grega", gotQuery)
}
