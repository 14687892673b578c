// Package trust maps source domains to integer trust levels. Levels run
// from 0 (unknown) to 3 (most trusted) and weight the relevance of
// fetched pages during ranking.
package trust

import (
	"net/url"
	"sort"
	"strings"
)

// Table is an immutable mapping from domain suffix to trust level.
// Build one with New and treat it as read-only afterwards.
type Table struct {
	levels map[string]int
}

// DefaultDomains is the built-in trusted-domain table.
var DefaultDomains = map[string]int{
	"wikipedia.org":          2,
	"gov.br":                 3,
	"bbc.com":                2,
	"nationalgeographic.com": 2,
	"uol.com.br":             1,
	"terra.com.br":           1,
	"edu.br":                 3,
}

// New builds a Table from a domain→level mapping. Levels are clamped to
// the 0-3 range. A nil or empty mapping yields a table that rates every
// URL as untrusted.
func New(domains map[string]int) *Table {
	levels := make(map[string]int, len(domains))
	for domain, level := range domains {
		if level < 0 {
			level = 0
		}
		if level > 3 {
			level = 3
		}
		levels[strings.ToLower(domain)] = level
	}
	return &Table{levels: levels}
}

// NewDefault builds a Table from DefaultDomains.
func NewDefault() *Table {
	return New(DefaultDomains)
}

// Level returns the trust level for a URL: the highest level among the
// configured domains contained in the URL's host, or 0 when none match.
// Malformed URLs are untrusted rather than an error.
func (t *Table) Level(rawURL string) int {
	if t == nil || rawURL == "" {
		return 0
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	host := strings.ToLower(parsed.Host)
	if host == "" {
		// URLs without a scheme parse with an empty host.
		host = strings.ToLower(parsed.Path)
	}

	best := 0
	for domain, level := range t.levels {
		if strings.Contains(host, domain) && level > best {
			best = level
		}
	}
	return best
}

// Domains returns the configured domains sorted by level descending,
// alphabetical within a level. Used to build "site:" search filters.
func (t *Table) Domains() []string {
	domains := make([]string, 0, len(t.levels))
	for domain := range t.levels {
		domains = append(domains, domain)
	}
	sort.Slice(domains, func(i, j int) bool {
		li, lj := t.levels[domains[i]], t.levels[domains[j]]
		if li != lj {
			return li > lj
		}
		return domains[i] < domains[j]
	})
	return domains
}

// SortByLevel stable-sorts URLs by trust level descending, preserving
// the original relative order among equal levels so higher-ranked search
// results are fetched first within each level.
func (t *Table) SortByLevel(urls []string) {
	sort.SliceStable(urls, func(i, j int) bool {
		return t.Level(urls[i]) > t.Level(urls[j])
	})
}
