package badger

import (
	"fmt"

	"github.com/stayely/pitia-assistente/core"
)

// Key prefixes for different data types
const (
	learnedPairPrefix    = "lrnpair"
	knowledgeEntryPrefix = "knowent"
)

// makeLearnedPairKey generates a key for a learned pair. The ID is
// content-derived from the normalized question, so the same question
// always maps to the same key.
func makeLearnedPairKey(question string) []byte {
	id := core.IDFromContent(core.NormalizeQuestion(question))
	return []byte(fmt.Sprintf("%s:%d", learnedPairPrefix, id))
}

// makeKnowledgeEntryKey generates a key for a knowledge entry by its
// normalized query.
func makeKnowledgeEntryKey(query string) []byte {
	id := core.IDFromContent(core.NormalizeQuestion(query))
	return []byte(fmt.Sprintf("%s:%d", knowledgeEntryPrefix, id))
}
