package text

import (
	"strings"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/portuguese"
)

// Stem reduces a single word to its Portuguese stem. Words the stemmer
// cannot handle come back unchanged.
func Stem(word string) string {
	env := snowballstem.NewEnv(strings.ToLower(word))
	portuguese.Stem(env)
	if s := env.Current(); s != "" {
		return s
	}
	return strings.ToLower(word)
}

// StemSet stems every word longer than three characters and returns the
// resulting set. Shorter words carry no signal for the overlap gate used
// by the similarity matcher.
func StemSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,!?;:'\"-()[]{}")
		if len([]rune(w)) <= 3 {
			continue
		}
		set[Stem(w)] = struct{}{}
	}
	return set
}

// StemOverlap computes |query ∩ stored| / |query| over stem sets.
// Returns 0 when the query set is empty.
func StemOverlap(query, stored map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	shared := 0
	for s := range query {
		if _, ok := stored[s]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(query))
}
