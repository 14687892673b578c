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


package badger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/storage"
)

// KnowledgeRepository implements storage.KnowledgeRepository for BadgerDB.
type KnowledgeRepository struct {
	backend *Backend
}

var _ storage.KnowledgeRepository = (*KnowledgeRepository)(nil)

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(backend *Backend) *KnowledgeRepository {
	return &KnowledgeRepository{
		backend: backend,
	}
}

// Close is a no-op; the shared backend owns the database handle.
func (r *KnowledgeRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *KnowledgeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Append adds answer to the entry for query, creating the entry when
// none exists. Answers already present (case-insensitive) are skipped.
func (r *KnowledgeRepository) Append(ctx context.Context, query, answer string) (*core.KnowledgeEntry, error) {
	query = core.NormalizeQuestion(query)
	answer = strings.TrimSpace(answer)
	if query == "" {
		return nil, core.ErrEmptyQuery
	}
	if answer == "" {
		return nil, core.ErrEmptyAnswer
	}

	key := makeKnowledgeEntryKey(query)
	var entry *core.KnowledgeEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		switch {
		case err == nil:
			err = item.Value(func(val []byte) error {
				entry, err = storage.UnmarshalKnowledgeEntry(val)
				return err
			})
			if err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			entry = &core.KnowledgeEntry{Query: query}
		default:
			return err
		}

		for _, existing := range entry.Answers {
			if strings.EqualFold(existing, answer) {
				return nil
			}
		}
		entry.Answers = append(entry.Answers, answer)
		entry.UpdatedAt = time.Now().UTC()

		if err := core.ValidateKnowledgeEntry(entry); err != nil {
			return err
		}
		if err := tx.Set(key, storage.MarshalKnowledgeEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Get retrieves the entry for query.
func (r *KnowledgeRepository) Get(ctx context.Context, query string) (*core.KnowledgeEntry, error) {
	var entry *core.KnowledgeEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKnowledgeEntryKey(query))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			entry, err = storage.UnmarshalKnowledgeEntry(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return entry, nil
}
