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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/storage"
)

// LearnedRepository implements storage.LearnedRepository for BadgerDB.
type LearnedRepository struct {
	backend *Backend
}

var _ storage.LearnedRepository = (*LearnedRepository)(nil)

// NewLearnedRepository creates a new LearnedRepository.
func NewLearnedRepository(backend *Backend) *LearnedRepository {
	return &LearnedRepository{
		backend: backend,
	}
}

// Close is a no-op; the shared backend owns the database handle.
func (r *LearnedRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *LearnedRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Put stores a learned pair under its normalized question. With
// overwrite false an existing pair is kept and ErrDuplicateKey returned.
func (r *LearnedRepository) Put(ctx context.Context, pair *core.LearnedPair, overwrite bool) error {
	if err := core.ValidateLearnedPair(pair); err != nil {
		return err
	}

	stored := *pair
	stored.Question = core.NormalizeQuestion(stored.Question)
	if stored.LearnedAt.IsZero() {
		stored.LearnedAt = time.Now().UTC()
	}

	key := makeLearnedPairKey(stored.Question)
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if !overwrite {
			_, err := tx.Get(key)
			if err == nil {
				return storage.ErrDuplicateKey
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		if err := tx.Set(key, storage.MarshalLearnedPair(&stored)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetByQuestion retrieves the pair stored under question.
func (r *LearnedRepository) GetByQuestion(ctx context.Context, question string) (*core.LearnedPair, error) {
	var pair *core.LearnedPair
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLearnedPairKey(question))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			pair, err = storage.UnmarshalLearnedPair(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Questions lists every stored question key.
func (r *LearnedRepository) Questions(ctx context.Context) ([]string, error) {
	var questions []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(learnedPairPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				pair, err := storage.UnmarshalLearnedPair(val)
				if err != nil {
					return err
				}
				questions = append(questions, pair.Question)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Delete removes the pair stored under question.
func (r *LearnedRepository) Delete(ctx context.Context, question string) error {
	key := makeLearnedPairKey(question)
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
