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


package pitia

import (
	"log/slog"

	"github.com/stayely/pitia-assistente/assistant"
	"github.com/stayely/pitia-assistente/config"
	"github.com/stayely/pitia-assistente/fetch"
	"github.com/stayely/pitia-assistente/retrieval"
	"github.com/stayely/pitia-assistente/search"
	"github.com/stayely/pitia-assistente/similarity"
	"github.com/stayely/pitia-assistente/storage"
	"github.com/stayely/pitia-assistente/storage/badger"
	"github.com/stayely/pitia-assistente/trust"
)

// App wires storage, search, fetching, retrieval and the assistant into
// one ready-to-use unit.
type App struct {
	backend   *badger.Backend
	learned   storage.LearnedRepository
	knowledge storage.KnowledgeRepository
	pipeline  *retrieval.Pipeline
	assistant *assistant.Assistant
	logger    *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	logger    *slog.Logger
	confirmer assistant.Confirmer
	inMemory  bool
}

// WithAppLogger sets the logger for all wired components.
func WithAppLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConfirmer sets the paraphrase confirmer passed to the assistant.
func WithConfirmer(confirmer assistant.Confirmer) AppOption {
	return func(o *appOptions) {
		o.confirmer = confirmer
	}
}

// WithInMemory opens the storage backend in memory. For tests.
func WithInMemory() AppOption {
	return func(o *appOptions) {
		o.inMemory = true
	}
}

// Open builds a fully wired App from cfg.
func Open(cfg *config.Config, opts ...AppOption) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &appOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	table := trust.NewDefault()
	if len(cfg.TrustedDomains) > 0 {
		table = trust.New(cfg.TrustedDomains)
	}

	backend, err := badger.OpenBackend(cfg.DataDir, options.inMemory)
	if err != nil {
		return nil, err
	}
	learned := badger.NewLearnedRepository(backend)
	knowledge := badger.NewKnowledgeRepository(backend)

	matcher := similarity.NewMatcher(
		similarity.WithThresholds(cfg.CosineThreshold, cfg.OverlapThreshold),
		similarity.WithLogger(logger),
	)

	// Link search prefers trusted sites, then falls back to the open web.
	ddg := search.NewDuckDuckGo(
		search.WithLanguage(cfg.SearchLanguage),
		search.WithDuckDuckGoLogger(logger),
	)
	chain, err := search.NewChain(logger, search.NewSiteFilter(ddg, table.Domains()), ddg)
	if err != nil {
		backend.Close()
		return nil, err
	}
	links := search.NewCachedLinks(chain)
	snippets := search.NewCachedResults(ddg)

	fetcher := fetch.New(table, cfg.FetchTimeout,
		fetch.WithMaxContentLen(cfg.MaxContentLen),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLanguage(cfg.SearchLanguage),
		fetch.WithLogger(logger),
	)

	pipeline, err := retrieval.NewPipeline(links, fetcher, table,
		retrieval.WithPoolSize(cfg.PoolSize),
		retrieval.WithMaxBatch(cfg.MaxFetchBatch),
		retrieval.WithEarlyExit(cfg.EarlyExitTrust, cfg.EarlyExitRelevance),
		retrieval.WithLogger(logger),
	)
	if err != nil {
		backend.Close()
		return nil, err
	}

	assistantOpts := []assistant.Option{
		assistant.WithMaxPreviewLen(cfg.MaxPreviewLen),
		assistant.WithLogger(logger),
	}
	if options.confirmer != nil {
		assistantOpts = append(assistantOpts, assistant.WithConfirmer(options.confirmer))
	}
	asst, err := assistant.New(learned, knowledge, matcher, snippets, pipeline, assistantOpts...)
	if err != nil {
		pipeline.Release()
		backend.Close()
		return nil, err
	}

	return &App{
		backend:   backend,
		learned:   learned,
		knowledge: knowledge,
		pipeline:  pipeline,
		assistant: asst,
		logger:    logger,
	}, nil
}

// Close releases the retrieval pool and closes storage.
func (a *App) Close() error {
	a.pipeline.Release()

	if err := a.learned.Close(); err != nil {
		a.logger.Error("error closing learned repository", "err", err)
		return err
	}
	if err := a.knowledge.Close(); err != nil {
		a.logger.Error("error closing knowledge repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (a *App) Assistant() *assistant.Assistant {
	return a.assistant
}

func (a *App) LearnedRepository() storage.LearnedRepository {
	return a.learned
}

func (a *App) KnowledgeRepository() storage.KnowledgeRepository {
	return a.knowledge
}

func (a *App) Pipeline() *retrieval.Pipeline {
	return a.pipeline
}
