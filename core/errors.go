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

import "errors"

// Domain validation errors
var (
	// ErrInvalidLearnedPair indicates a LearnedPair failed validation.
	ErrInvalidLearnedPair = errors.New("invalid learned pair")

	// ErrInvalidKnowledgeEntry indicates a KnowledgeEntry failed validation.
	ErrInvalidKnowledgeEntry = errors.New("invalid knowledge entry")

	// ErrEmptyQuestion indicates the Question field is empty after normalization.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyAnswer indicates the Answer field is empty.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrEmptyQuery indicates the Query field is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNoAnswers indicates a KnowledgeEntry has an empty answers list.
	ErrNoAnswers = errors.New("knowledge entry must hold at least one answer")

	// ErrInvalidTrustScore indicates a trust score outside the 0-3 range.
	ErrInvalidTrustScore = errors.New("trust score must be between 0 and 3")

	// ErrInvalidRelevance indicates a relevance value outside [0, 1].
	ErrInvalidRelevance = errors.New("relevance must be between 0 and 1")
)
