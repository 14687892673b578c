package assistant

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/retrieval"
	"github.com/stayely/pitia-assistente/search"
	"github.com/stayely/pitia-assistente/search/mock"
	"github.com/stayely/pitia-assistente/storage"
	"github.com/stayely/pitia-assistente/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retrieverFunc func(ctx context.Context, query string) ([]*core.PageContent, error)

func (f retrieverFunc) Retrieve(ctx context.Context, query string) ([]*core.PageContent, error) {
	return f(ctx, query)
}

type confirmerFunc func(question, candidate string) bool

func (f confirmerFunc) ConfirmParaphrase(question, candidate string) bool {
	return f(question, candidate)
}

func newAssistant(t *testing.T, snippets *mock.SnippetBackend, retriever Retriever, opts ...Option) (*Assistant, storage.LearnedRepository, storage.KnowledgeRepository) {
	t.Helper()
	learned, knowledge, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	var backendIface search.SnippetBackend
	if snippets != nil {
		backendIface = snippets
	}

	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	a, err := New(learned, knowledge, nil, backendIface, retriever, opts...)
	require.NoError(t, err)
	return a, learned, knowledge
}

func TestRespond_CannedGreeting(t *testing.T) {
	a, _, _ := newAssistant(t, nil, nil)

	answer, err := a.Respond(context.Background(), "oi")
	require.NoError(t, err)
	assert.Equal(t, "Olá! Como posso ajudar?", answer.Response)
	assert.Equal(t, core.SourceNone, answer.Source.Kind)
}

func TestRespond_ShortQueryAsksElaboration(t *testing.T) {
	a, _, _ := newAssistant(t, nil, nil)
	ctx := context.Background()

	for _, query := range []string{"a", "deus grego", ""} {
		answer, err := a.Respond(ctx, query)
		require.NoError(t, err)
		assert.Contains(t, answer.Response, "elaborar", "query %q", query)
		assert.Equal(t, core.SourceNone, answer.Source.Kind)
	}
}

func TestRespond_TeachThenAsk(t *testing.T) {
	a, _, _ := newAssistant(t, nil, nil)
	ctx := context.Background()

	answer, err := a.Respond(ctx, "aprenda que pitia é legal")
	require.NoError(t, err)
	assert.Contains(t, answer.Response, "pitia")
	assert.Equal(t, core.SourceNone, answer.Source.Kind)

	answer, err = a.Respond(ctx, "pitia é legal")
	require.NoError(t, err)
	assert.Equal(t, "é legal", answer.Response)
	assert.Equal(t, core.SourceMemory, answer.Source.Kind)
}

func TestRespond_MalformedTeachFallsThrough(t *testing.T) {
	a, _, _ := newAssistant(t, nil, nil)

	// Only a topic, no answer: falls through and (with no backends)
	// reaches the not-found terminal.
	answer, err := a.Respond(context.Background(), "aprenda que solidão")
	require.NoError(t, err)
	assert.Equal(t, notFoundResponse, answer.Response)
	assert.Equal(t, core.SourceNone, answer.Source.Kind)
}

func TestRespond_BothBackendsEmpty(t *testing.T) {
	snippets := mock.NewSnippetBackend()
	retriever := retrieverFunc(func(ctx context.Context, query string) ([]*core.PageContent, error) {
		return nil, retrieval.ErrNoResults
	})
	a, _, _ := newAssistant(t, snippets, retriever)

	answer, err := a.Respond(context.Background(), "qual é a capital da frança")
	require.NoError(t, err)
	assert.Equal(t, notFoundResponse, answer.Response)
	assert.Equal(t, core.SourceNone, answer.Source.Kind)
}

func TestRespond_NoContentMessage(t *testing.T) {
	retriever := retrieverFunc(func(ctx context.Context, query string) ([]*core.PageContent, error) {
		return nil, retrieval.ErrNoContent
	})
	a, _, _ := newAssistant(t, nil, retriever)

	answer, err := a.Respond(context.Background(), "qual é a capital da frança")
	require.NoError(t, err)
	assert.Equal(t, noContentResponse, answer.Response)
	assert.Equal(t, core.SourceNone, answer.Source.Kind)
}

func TestRespond_KnowledgeBasePath(t *testing.T) {
	snippet := "A mitologia grega reúne as narrativas criadas pelos gregos antigos sobre seus deuses. " +
		"Texto curto. " +
		"Os poemas de Homero estão entre os registros mais antigos dessas histórias tradicionais conhecidas."
	snippets := mock.NewSnippetBackend()
	snippets.ResultsFunc = func(ctx context.Context, query string) ([]core.SearchResult, error) {
		return []core.SearchResult{{Title: "t", URL: "https://a.com", Snippet: snippet}}, nil
	}
	a, _, knowledge := newAssistant(t, snippets, nil)
	ctx := context.Background()

	answer, err := a.Respond(ctx, "o que é mitologia grega")
	require.NoError(t, err)
	assert.Equal(t, core.SourceKnowledgeBase, answer.Source.Kind)
	assert.NotEmpty(t, answer.Response)
	assert.NotContains(t, answer.Response, "Texto curto")

	// The paraphrased answer is persisted for the exact query.
	entry, err := knowledge.Get(ctx, "o que é mitologia grega")
	require.NoError(t, err)
	require.Len(t, entry.Answers, 1)

	// A repeat query answers from the bucket without searching again.
	before := snippets.CallCount()
	answer, err = a.Respond(ctx, "o que é mitologia grega")
	require.NoError(t, err)
	assert.Equal(t, core.SourceKnowledgeBase, answer.Source.Kind)
	assert.Equal(t, entry.Answers[0], answer.Response)
	assert.Equal(t, before, snippets.CallCount())
}

func TestRespond_WebPath(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("O sistema solar tem oito planetas conhecidos. ", 10))
	retriever := retrieverFunc(func(ctx context.Context, query string) ([]*core.PageContent, error) {
		return []*core.PageContent{{
			URL:        "https://pt.wikipedia.org/wiki/Sistema_Solar",
			Title:      "Sistema Solar",
			Text:       content,
			TrustScore: 2,
			Relevance:  0.8,
			Score:      1.6,
		}}, nil
	})
	a, learned, _ := newAssistant(t, nil, retriever)
	ctx := context.Background()

	answer, err := a.Respond(ctx, "como funciona o sistema solar")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(answer.Response, "Sobre Sistema Solar:"))
	assert.Equal(t, core.SourceWeb, answer.Source.Kind)
	assert.Equal(t, "Sistema Solar", answer.Source.Title)
	assert.Equal(t, "https://pt.wikipedia.org/wiki/Sistema_Solar", answer.Source.URL)

	// Long content is learned for the next time, keyed by the query.
	pair, err := learned.GetByQuestion(ctx, "como funciona o sistema solar")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Answer)
}

func TestRespond_LearnedAnswerWinsOverWeb(t *testing.T) {
	retriever := retrieverFunc(func(ctx context.Context, query string) ([]*core.PageContent, error) {
		t.Fatal("retriever must not be reached for a learned question")
		return nil, nil
	})
	a, learned, _ := newAssistant(t, nil, retriever)
	ctx := context.Background()

	require.NoError(t, learned.Put(ctx, &core.LearnedPair{
		Question: "qual é a capital da frança",
		Answer:   "Paris",
	}, true))

	answer, err := a.Respond(ctx, "qual é a capital da frança")
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer.Response)
	assert.Equal(t, core.SourceMemory, answer.Source.Kind)
}

func TestRespond_ParaphraseAliasing(t *testing.T) {
	var asked bool
	confirmer := confirmerFunc(func(question, candidate string) bool {
		asked = true
		assert.Equal(t, "qual é a capital da frança", candidate)
		return true
	})
	retriever := retrieverFunc(func(ctx context.Context, query string) ([]*core.PageContent, error) {
		return nil, retrieval.ErrNoResults
	})
	a, learned, _ := newAssistant(t, nil, retriever, WithConfirmer(confirmer))
	ctx := context.Background()

	require.NoError(t, learned.Put(ctx, &core.LearnedPair{
		Question: "qual é a capital da frança",
		Answer:   "Paris",
	}, true))

	// Similar but below the accept gates: triggers the confirmer.
	_, err := a.Respond(ctx, "qual seria mesmo a capital francesa atualmente")
	require.NoError(t, err)
	require.True(t, asked)

	pair, err := learned.GetByQuestion(ctx, "qual seria mesmo a capital francesa atualmente")
	require.NoError(t, err)
	assert.Equal(t, "Paris", pair.Answer)
}

func TestCorrect(t *testing.T) {
	retriever := retrieverFunc(func(ctx context.Context, query string) ([]*core.PageContent, error) {
		return nil, retrieval.ErrNoResults
	})
	a, learned, _ := newAssistant(t, nil, retriever)
	ctx := context.Background()

	assert.ErrorIs(t, a.Correct(ctx, "correção: tanto faz"), ErrNoPreviousQuestion)

	_, err := a.Respond(ctx, "qual é a capital da frança")
	require.NoError(t, err)

	require.NoError(t, a.Correct(ctx, "correção: Paris"))

	pair, err := learned.GetByQuestion(ctx, "qual é a capital da frança")
	require.NoError(t, err)
	assert.Equal(t, "Paris", pair.Answer)

	assert.ErrorIs(t, a.Correct(ctx, "correção:   "), ErrEmptyCorrection)
}
