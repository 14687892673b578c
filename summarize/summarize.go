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

// Package summarize condenses cleaned article text into a few
// representative sentences using term-frequency scoring.
package summarize

import (
	"sort"
	"strings"

	"github.com/stayely/pitia-assistente/text"
)

const (
	// minWords is the length below which text is returned as-is.
	minWords = 10
	// shortLimit caps the passthrough for very short inputs.
	shortLimit = 500
)

// Summarizer extracts the highest-scoring sentences from a text.
type Summarizer struct {
	maxSentences int
}

// New creates a Summarizer that keeps at most maxSentences sentences.
// Values below 1 fall back to 3.
func New(maxSentences int) *Summarizer {
	if maxSentences < 1 {
		maxSentences = 3
	}
	return &Summarizer{maxSentences: maxSentences}
}

// Summarize returns a condensation of input. Inputs shorter than ten
// words are returned unchanged (truncated to a safe length). Longer
// inputs are split into sentences, each sentence is scored by the
// frequency of its non-stop-words across the whole text, and the
// top-scoring sentences are joined back in their original order.
func (s *Summarizer) Summarize(input string) (out string) {
	defer func() {
		if recover() != nil {
			out = s.fallback(input)
		}
	}()

	input = strings.TrimSpace(input)
	if text.WordCount(input) < minWords {
		return text.Truncate(input, shortLimit)
	}

	sentences := text.Sentences(input)
	if len(sentences) <= s.maxSentences {
		return strings.Join(sentences, " ")
	}

	freq := make(map[string]int)
	for _, word := range text.ContentWords(input) {
		freq[word]++
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, sentence := range sentences {
		words := text.ContentWords(sentence)
		total := 0
		for _, word := range words {
			total += freq[word]
		}
		score := 0.0
		if len(words) > 0 {
			score = float64(total) / float64(len(words))
		}
		ranked[i] = scored{index: i, score: score}
	}

	// Stable sort keeps earlier sentences ahead on ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	picked := ranked[:s.maxSentences]
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})

	parts := make([]string, len(picked))
	for i, p := range picked {
		parts[i] = sentences[p.index]
	}
	return strings.Join(parts, " ")
}

// fallback returns the first maxSentences sentences verbatim. Only used
// when scoring panics on pathological input.
func (s *Summarizer) fallback(input string) string {
	sentences := text.Sentences(input)
	if len(sentences) > s.maxSentences {
		sentences = sentences[:s.maxSentences]
	}
	return strings.Join(sentences, " ")
}
