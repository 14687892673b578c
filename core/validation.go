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


package core

import (
	"fmt"
	"strings"
)

// NormalizeQuestion converts a question into its canonical key form:
// lower-cased and trimmed. Storage keys and similarity lookups always
// operate on the normalized form.
func NormalizeQuestion(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// ValidateLearnedPair validates a LearnedPair according to domain rules.
//
// Validation rules:
//   - Question must not be empty after normalization
//   - Answer must not be empty
//
// NOT validated:
//   - LearnedAt (zero means "not yet persisted")
func ValidateLearnedPair(pair *LearnedPair) error {
	if pair == nil {
		return fmt.Errorf("%w: pair is nil", ErrInvalidLearnedPair)
	}

	if NormalizeQuestion(pair.Question) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLearnedPair, ErrEmptyQuestion)
	}

	if pair.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLearnedPair, ErrEmptyAnswer)
	}

	return nil
}

// ValidateKnowledgeEntry validates a KnowledgeEntry according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//   - Answers must hold at least one answer
func ValidateKnowledgeEntry(entry *KnowledgeEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidKnowledgeEntry)
	}

	if strings.TrimSpace(entry.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeEntry, ErrEmptyQuery)
	}

	if len(entry.Answers) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeEntry, ErrNoAnswers)
	}

	return nil
}

// ValidatePageContent checks the invariants of a fetched page record.
func ValidatePageContent(page *PageContent) error {
	if page.TrustScore < 0 || page.TrustScore > 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidTrustScore, page.TrustScore)
	}
	if page.Relevance < 0 || page.Relevance > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidRelevance, page.Relevance)
	}
	return nil
}
