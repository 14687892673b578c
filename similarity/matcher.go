// Copyright 2025 Stayely
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package similarity

import (
	"log/slog"

	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/text"
)

const (
	// DefaultCosineThreshold gates the TF-IDF stage.
	DefaultCosineThreshold = 0.65
	// DefaultOverlapThreshold gates the stem-overlap confirmation.
	DefaultOverlapThreshold = 0.4
)

// Matcher finds the stored question key that best matches a free-text
// question. A candidate must clear both the cosine gate and the
// stem-overlap gate; either alone produces too many false positives.
type Matcher struct {
	cosineThreshold  float64
	overlapThreshold float64
	logger           *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThresholds overrides the cosine and overlap gates. Non-positive
// values keep the defaults.
func WithThresholds(cosineT, overlapT float64) Option {
	return func(m *Matcher) {
		if cosineT > 0 {
			m.cosineThreshold = cosineT
		}
		if overlapT > 0 {
			m.overlapThreshold = overlapT
		}
	}
}

// WithLogger sets the matcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher creates a Matcher with the default thresholds.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		cosineThreshold:  DefaultCosineThreshold,
		overlapThreshold: DefaultOverlapThreshold,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the key from keys that matches question, or false when
// no key clears both gates. Three paths accept a candidate, checked in
// order of strictness:
//
//  1. exact equality after normalization;
//  2. containment: every stem of the key occurs in the question and the
//     key covers enough of the question's stems;
//  3. the general gate: cosine above the cosine threshold and stem
//     overlap above the overlap threshold.
func (m *Matcher) Match(question string, keys []string) (string, bool) {
	question = core.NormalizeQuestion(question)
	if question == "" || len(keys) == 0 {
		return "", false
	}

	queryStems := text.StemSet(question)

	for _, key := range keys {
		normalized := core.NormalizeQuestion(key)
		if normalized == question {
			return key, true
		}
		if m.contains(queryStems, normalized) {
			m.logger.Debug("similarity containment match",
				slog.String("question", question),
				slog.String("key", normalized))
			return key, true
		}
	}

	key, score, overlap, ok := m.best(question, queryStems, keys)
	if !ok {
		return "", false
	}
	m.logger.Debug("similarity match",
		slog.String("question", question),
		slog.String("key", key),
		slog.Float64("cosine", score),
		slog.Float64("overlap", overlap))
	return key, true
}

// Nearest returns the closest key by cosine alone, with its score. It
// ignores the gates; callers use it to propose a paraphrase the user can
// confirm. Returns false only when no key shares a single term.
func (m *Matcher) Nearest(question string, keys []string) (string, float64, bool) {
	question = core.NormalizeQuestion(question)
	if question == "" || len(keys) == 0 {
		return "", 0, false
	}

	v := newVectorizer(append(append([]string{}, keys...), question))
	qv := v.vectorize(question)

	best, bestScore := "", 0.0
	for _, key := range keys {
		score := cosine(qv, v.vectorize(core.NormalizeQuestion(key)))
		if score > bestScore {
			best, bestScore = key, score
		}
	}
	if bestScore <= 0 {
		return "", 0, false
	}
	return best, bestScore, true
}

// contains reports whether every stem of key appears in queryStems and
// the key accounts for enough of the question.
func (m *Matcher) contains(queryStems map[string]struct{}, key string) bool {
	keyStems := text.StemSet(key)
	if len(keyStems) == 0 || len(queryStems) == 0 {
		return false
	}
	for stem := range keyStems {
		if _, ok := queryStems[stem]; !ok {
			return false
		}
	}
	coverage := float64(len(keyStems)) / float64(len(queryStems))
	return coverage > m.overlapThreshold
}

// best picks the single highest-cosine key and offers only that key to
// the overlap gate. A runner-up that would clear both gates never wins:
// when the argmax is rejected there is no match.
func (m *Matcher) best(question string, queryStems map[string]struct{}, keys []string) (string, float64, float64, bool) {
	// The corpus includes the question itself so shared template words
	// ("qual", "capital") are discounted relative to the distinguishing
	// terms.
	v := newVectorizer(append(append([]string{}, keys...), question))
	qv := v.vectorize(question)
	if qv == nil {
		return "", 0, 0, false
	}

	best, bestScore := "", 0.0
	for _, key := range keys {
		score := cosine(qv, v.vectorize(core.NormalizeQuestion(key)))
		if score > bestScore {
			best, bestScore = key, score
		}
	}
	if best == "" || bestScore <= m.cosineThreshold {
		return "", 0, 0, false
	}

	overlap := text.StemOverlap(queryStems, text.StemSet(core.NormalizeQuestion(best)))
	if overlap <= m.overlapThreshold {
		return "", 0, 0, false
	}
	return best, bestScore, overlap, true
}
