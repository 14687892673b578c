package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted entities.
// It is derived from content hashing so that the same normalized
// question always maps to the same storage key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// LearnedPair is an explicitly taught or auto-captured question/answer mapping.
// Question is the normalized key: lower-cased, trimmed, never empty.
type LearnedPair struct {
	Question  string
	Answer    string
	LearnedAt time.Time
}

// KnowledgeEntry is an append-only bucket of generated answers for a query
// that was never matched in the learned-pair store. Answers is never empty
// once the entry exists; one answer is chosen at random on repeat lookups.
type KnowledgeEntry struct {
	Query     string
	Answers   []string
	UpdatedAt time.Time
}

// PageContent is the transient result of fetching and extracting one page.
// It is produced once per URL per run and consumed by the ranking step.
type PageContent struct {
	URL           string
	Title         string
	Text          string
	TrustScore    int
	Relevance     float64 // fraction of distinct query terms found in Text
	Score         float64 // Relevance * TrustScore
	Insecure      bool    // fetched with certificate verification disabled
	FetchDuration time.Duration
}

// SearchResult is a single hit from a snippet search backend.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// SourceKind discriminates where an answer came from.
type SourceKind int

const (
	// SourceNone marks guidance, canned, and failure responses.
	SourceNone SourceKind = iota
	// SourceMemory marks answers served from the learned-pair store.
	SourceMemory
	// SourceKnowledgeBase marks answers served from the knowledge-entry store.
	SourceKnowledgeBase
	// SourceWeb marks answers extracted from a fetched page.
	SourceWeb
)

// Source identifies the origin of an answer. Title and URL are only set
// for SourceWeb.
type Source struct {
	Kind  SourceKind
	Title string
	URL   string
}

// Answer is the structured result of resolving one query.
type Answer struct {
	Response string
	Source   Source
}

// WebSource builds a Source pointing at a fetched page.
func WebSource(title, url string) Source {
	return Source{Kind: SourceWeb, Title: title, URL: url}
}

func (k SourceKind) String() string {
	switch k {
	case SourceMemory:
		return "memória"
	case SourceKnowledgeBase:
		return "base de conhecimento"
	case SourceWeb:
		return "web"
	default:
		return "nenhuma"
	}
}
