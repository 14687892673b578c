package text

import (
	"math/rand"
	"strings"
	"unicode"
)

// synonyms holds the variation table used to rewrite extracted sentences
// into knowledge-base answers.
var synonyms = map[string][]string{
	"deus":       {"divindade", "entidade divina", "ser supremo"},
	"mitologia":  {"lendas antigas", "histórias tradicionais", "narrativas sagradas"},
	"grego":      {"da Grécia", "helênico", "grego antigo"},
	"importante": {"relevante", "significativo", "crucial"},
	"pessoa":     {"indivíduo", "ser humano", "cidadão"},
}

// Paraphrase rewrites text by substituting known words with a randomly
// chosen synonym and capitalizing the result. The random source is
// injected so callers (and tests) control determinism.
func Paraphrase(input string, rng *rand.Rand) string {
	words := strings.Fields(input)
	out := make([]string, 0, len(words))
	for _, word := range words {
		key := strings.ToLower(strings.Trim(word, ".,!?;:"))
		if options, ok := synonyms[key]; ok && rng != nil {
			out = append(out, options[rng.Intn(len(options))])
			continue
		}
		out = append(out, word)
	}
	return Capitalize(strings.Join(out, " "))
}

// Capitalize uppercases the first letter of s.
func Capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
