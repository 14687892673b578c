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


// Package assistant implements the conversation orchestrator: it decides
// whether a question is answered from canned responses, learned pairs,
// the knowledge base or the web retrieval pipeline.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/retrieval"
	"github.com/stayely/pitia-assistente/search"
	"github.com/stayely/pitia-assistente/similarity"
	"github.com/stayely/pitia-assistente/storage"
	"github.com/stayely/pitia-assistente/summarize"
	"github.com/stayely/pitia-assistente/text"
)

// teachPrefixes start a teach command: "aprenda que <topic> <answer>".
var teachPrefixes = []string{"aprenda que ", "lembre que "}

const (
	// shortQueryWords is the word count at or below which the assistant
	// asks for elaboration instead of resolving.
	shortQueryWords = 2

	// learnThresholdWords is the minimum word count of retrieved content
	// before the answer is learned automatically.
	learnThresholdWords = 30

	// maxKeySentences caps the knowledge-base condensation.
	maxKeySentences = 3
)

// Retriever runs the web retrieval pipeline. retrieval.Pipeline
// implements it.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]*core.PageContent, error)
}

// Confirmer asks the interactive surface whether question should be
// treated as a paraphrase of candidate. A nil Confirmer never confirms.
type Confirmer interface {
	ConfirmParaphrase(question, candidate string) bool
}

// Assistant orchestrates question resolution.
type Assistant struct {
	learned    storage.LearnedRepository
	knowledge  storage.KnowledgeRepository
	matcher    *similarity.Matcher
	snippets   search.SnippetBackend
	retriever  Retriever
	summarizer *summarize.Summarizer
	confirmer  Confirmer
	rng        *rand.Rand

	maxPreviewLen int
	logger        *slog.Logger

	lastQuestion string
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithConfirmer sets the paraphrase confirmer.
func WithConfirmer(confirmer Confirmer) Option {
	return func(a *Assistant) {
		a.confirmer = confirmer
	}
}

// WithRand sets the random source used for knowledge-base answer
// selection and paraphrasing. Tests inject a seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(a *Assistant) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithMaxPreviewLen caps the content preview in web answers.
func WithMaxPreviewLen(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.maxPreviewLen = n
		}
	}
}

// WithLogger sets the assistant's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Assistant. The snippet backend and retriever may be nil,
// disabling the knowledge-base and web paths respectively.
func New(
	learned storage.LearnedRepository,
	knowledge storage.KnowledgeRepository,
	matcher *similarity.Matcher,
	snippets search.SnippetBackend,
	retriever Retriever,
	opts ...Option,
) (*Assistant, error) {
	if learned == nil {
		return nil, ErrLearnedStoreRequired
	}
	if knowledge == nil {
		return nil, ErrKnowledgeStoreRequired
	}
	if matcher == nil {
		matcher = similarity.NewMatcher()
	}

	a := &Assistant{
		learned:       learned,
		knowledge:     knowledge,
		matcher:       matcher,
		snippets:      snippets,
		retriever:     retriever,
		summarizer:    summarize.New(2),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		maxPreviewLen: 500,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Respond resolves a free-text question into an answer. It never
// returns an error for resolution misses, only for storage failures.
func (a *Assistant) Respond(ctx context.Context, question string) (*core.Answer, error) {
	normalized := core.NormalizeQuestion(question)
	if normalized == "" {
		return &core.Answer{Response: elaborateResponse}, nil
	}

	if canned, ok := cannedResponses[normalized]; ok {
		return &core.Answer{Response: canned}, nil
	}

	if text.WordCount(normalized) <= shortQueryWords {
		return &core.Answer{Response: elaborateResponse}, nil
	}

	if answer, ok, err := a.teach(ctx, normalized); err != nil {
		return nil, err
	} else if ok {
		return answer, nil
	}

	a.lastQuestion = normalized

	if answer, ok, err := a.fromMemory(ctx, normalized); err != nil {
		return nil, err
	} else if ok {
		return answer, nil
	}

	if answer, ok := a.fromKnowledge(ctx, normalized); ok {
		return answer, nil
	}

	return a.fromWeb(ctx, normalized)
}

// Correct records a user correction for the previous question,
// overwriting any learned answer. Accepts "correção: <text>" or bare
// correction text.
func (a *Assistant) Correct(ctx context.Context, correction string) error {
	if a.lastQuestion == "" {
		return ErrNoPreviousQuestion
	}
	if i := strings.Index(correction, ":"); i >= 0 {
		correction = correction[i+1:]
	}
	correction = strings.TrimSpace(correction)
	if correction == "" {
		return ErrEmptyCorrection
	}

	pair := &core.LearnedPair{Question: a.lastQuestion, Answer: correction}
	if err := a.learned.Put(ctx, pair, true); err != nil {
		return fmt.Errorf("storing correction: %w", err)
	}
	a.logger.Info("correction learned", slog.String("question", a.lastQuestion))
	return nil
}

// teach handles "aprenda que <topic> <answer>" commands. Malformed
// commands fall through to normal resolution.
func (a *Assistant) teach(ctx context.Context, query string) (*core.Answer, bool, error) {
	for _, prefix := range teachPrefixes {
		if !strings.HasPrefix(query, prefix) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(query, prefix))
		parts := strings.SplitN(rest, " ", 2)
		if len(parts) < 2 {
			return nil, false, nil
		}
		topic, answer := parts[0], strings.TrimSpace(parts[1])
		if topic == "" || answer == "" {
			return nil, false, nil
		}

		pair := &core.LearnedPair{Question: topic, Answer: answer}
		if err := a.learned.Put(ctx, pair, true); err != nil {
			return nil, false, fmt.Errorf("storing taught pair: %w", err)
		}
		a.logger.Info("pair taught", slog.String("topic", topic))
		return &core.Answer{
			Response: fmt.Sprintf("Entendido! Agora sei responder sobre '%s'.", topic),
		}, true, nil
	}
	return nil, false, nil
}

// fromMemory answers from the learned-pair store via the similarity
// matcher. On a near miss it may alias the question to an existing key
// after confirmation.
func (a *Assistant) fromMemory(ctx context.Context, query string) (*core.Answer, bool, error) {
	questions, err := a.learned.Questions(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("listing learned questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, false, nil
	}

	if key, ok := a.matcher.Match(query, questions); ok {
		pair, err := a.learned.GetByQuestion(ctx, key)
		if err != nil {
			return nil, false, fmt.Errorf("loading learned pair: %w", err)
		}
		return &core.Answer{
			Response: pair.Answer,
			Source:   core.Source{Kind: core.SourceMemory},
		}, true, nil
	}

	a.maybeAlias(ctx, query, questions)
	return nil, false, nil
}

// maybeAlias proposes the nearest stored question as a paraphrase; when
// the confirmer accepts, the query is stored with the same answer.
func (a *Assistant) maybeAlias(ctx context.Context, query string, questions []string) {
	if a.confirmer == nil {
		return
	}
	candidate, _, ok := a.matcher.Nearest(query, questions)
	if !ok || candidate == query {
		return
	}
	if !a.confirmer.ConfirmParaphrase(query, candidate) {
		return
	}

	pair, err := a.learned.GetByQuestion(ctx, candidate)
	if err != nil {
		a.logger.Warn("failed to load paraphrase candidate", slog.Any("err", err))
		return
	}
	alias := &core.LearnedPair{Question: query, Answer: pair.Answer}
	if err := a.learned.Put(ctx, alias, true); err != nil {
		a.logger.Warn("failed to store paraphrase alias", slog.Any("err", err))
	}
}

// fromKnowledge answers from the knowledge-entry store, fed by
// snippet-only search. Repeat queries pick a random stored answer.
func (a *Assistant) fromKnowledge(ctx context.Context, query string) (*core.Answer, bool) {
	entry, err := a.knowledge.Get(ctx, query)
	if err == nil && len(entry.Answers) > 0 {
		answer := entry.Answers[a.rng.Intn(len(entry.Answers))]
		return &core.Answer{
			Response: answer,
			Source:   core.Source{Kind: core.SourceKnowledgeBase},
		}, true
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		a.logger.Warn("knowledge lookup failed", slog.Any("err", err))
	}

	if a.snippets == nil {
		return nil, false
	}
	results, err := a.snippets.Results(ctx, query)
	if err != nil {
		a.logger.Warn("snippet search failed", slog.Any("err", err))
		return nil, false
	}
	if len(results) == 0 {
		return nil, false
	}

	snippets := make([]string, 0, len(results))
	for _, result := range results {
		snippets = append(snippets, result.Snippet)
	}
	combined := strings.Join(snippets, " ")

	key := strings.Join(text.KeySentences(combined, maxKeySentences), " ")
	if key == "" {
		return nil, false
	}

	answer := text.Paraphrase(key, a.rng)
	if _, err := a.knowledge.Append(ctx, query, answer); err != nil {
		a.logger.Warn("failed to persist knowledge answer", slog.Any("err", err))
	}
	return &core.Answer{
		Response: answer,
		Source:   core.Source{Kind: core.SourceKnowledgeBase},
	}, true
}

// fromWeb runs the retrieval pipeline and builds the final answer from
// the best page.
func (a *Assistant) fromWeb(ctx context.Context, query string) (*core.Answer, error) {
	if a.retriever == nil {
		return &core.Answer{Response: notFoundResponse}, nil
	}

	pages, err := a.retriever.Retrieve(ctx, query)
	switch {
	case errors.Is(err, retrieval.ErrNoResults):
		return &core.Answer{Response: notFoundResponse}, nil
	case errors.Is(err, retrieval.ErrNoContent):
		return &core.Answer{Response: noContentResponse}, nil
	case err != nil:
		a.logger.Warn("retrieval failed", slog.Any("err", err))
		return &core.Answer{Response: notFoundResponse}, nil
	case len(pages) == 0:
		return &core.Answer{Response: noContentResponse}, nil
	}

	best := pages[0]
	preview := text.Clean(text.Truncate(best.Text, a.maxPreviewLen))
	summary := a.summarizer.Summarize(best.Text)

	var b strings.Builder
	fmt.Fprintf(&b, "Sobre %s:\n%s\n\n", best.Title, preview)
	if summary != "" && !strings.Contains(preview, summary) {
		fmt.Fprintf(&b, "Resumo: %s", summary)
	}

	if text.WordCount(best.Text) > learnThresholdWords {
		pair := &core.LearnedPair{Question: query, Answer: preview}
		if err := a.learned.Put(ctx, pair, false); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
			a.logger.Warn("failed to learn web answer", slog.Any("err", err))
		}
	}

	return &core.Answer{
		Response: b.String(),
		Source:   core.WebSource(best.Title, best.URL),
	}, nil
}
