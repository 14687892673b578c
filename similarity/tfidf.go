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

// Package similarity matches free-text questions against stored
// question keys using TF-IDF cosine similarity with a stem-overlap
// confirmation stage.
package similarity

import (
	"math"
	"regexp"
	"strings"
)

// tokenRe keeps words of at least two characters. One-letter tokens
// (articles, the verb "é") carry no weight worth indexing.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}]{2,}`)

func tokens(doc string) []string {
	return tokenRe.FindAllString(strings.ToLower(doc), -1)
}

// vector is a sparse TF-IDF document vector, l2-normalized.
type vector map[string]float64

// vectorizer computes smoothed TF-IDF vectors over a fixed corpus of
// documents. The smoothing adds one virtual document containing every
// term, so unseen terms never divide by zero:
//
//	idf(t) = ln((1+n)/(1+df(t))) + 1
type vectorizer struct {
	idf  map[string]float64
	docs int
}

// newVectorizer builds the document-frequency statistics for docs.
func newVectorizer(docs []string) *vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokens(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := len(docs)
	idf := make(map[string]float64, len(df))
	for tok, count := range df {
		idf[tok] = math.Log(float64(1+n)/float64(1+count)) + 1
	}
	return &vectorizer{idf: idf, docs: n}
}

// vectorize maps doc to its normalized TF-IDF vector. Terms absent from
// the corpus get the maximum smoothed IDF.
func (v *vectorizer) vectorize(doc string) vector {
	tf := make(map[string]int)
	for _, tok := range tokens(doc) {
		tf[tok]++
	}
	if len(tf) == 0 {
		return nil
	}

	unseen := math.Log(float64(1+v.docs)) + 1
	vec := make(vector, len(tf))
	norm := 0.0
	for tok, count := range tf {
		idf, ok := v.idf[tok]
		if !ok {
			idf = unseen
		}
		w := float64(count) * idf
		vec[tok] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for tok := range vec {
		vec[tok] /= norm
	}
	return vec
}

// cosine returns the cosine similarity of two normalized vectors.
func cosine(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	dot := 0.0
	for tok, wa := range a {
		dot += wa * b[tok]
	}
	return dot
}
