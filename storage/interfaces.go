package storage

import (
	"context"

	"github.com/stayely/pitia-assistente/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// LearnedRepository persists question/answer pairs taught by the user.
// Questions are normalized (lowercased, trimmed) before being used as keys.
type LearnedRepository interface {
	Repository

	// Put stores a learned pair. When overwrite is false and a pair with
	// the same normalized question already exists, the stored pair is kept
	// and ErrDuplicateKey is returned.
	Put(ctx context.Context, pair *core.LearnedPair, overwrite bool) error

	// GetByQuestion retrieves the pair stored under the normalized form of
	// question. Returns ErrNotFound when no such pair exists.
	GetByQuestion(ctx context.Context, question string) (*core.LearnedPair, error)

	// Questions lists every stored question key. Order is unspecified.
	Questions(ctx context.Context) ([]string, error)

	// Delete removes the pair stored under the normalized form of question.
	// Returns ErrNotFound when no such pair exists.
	Delete(ctx context.Context, question string) error
}

// KnowledgeRepository persists knowledge entries accumulated from web
// retrieval, several answers per query.
type KnowledgeRepository interface {
	Repository

	// Append adds an answer to the entry for query, creating the entry if
	// needed. Duplicate answers for the same query are ignored. Returns the
	// updated entry.
	Append(ctx context.Context, query, answer string) (*core.KnowledgeEntry, error)

	// Get retrieves the entry for the normalized form of query.
	// Returns ErrNotFound when no entry exists.
	Get(ctx context.Context, query string) (*core.KnowledgeEntry, error)
}
