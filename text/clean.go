// Package text provides the normalization, tokenization and phrase
// tooling shared by the condenser, the similarity matcher and the
// retrieval pipeline. All functions are deterministic and never panic
// past the package boundary.
package text

import (
	"regexp"
	"strings"
)

const maxFallbackLen = 1000

var (
	citationRe   = regexp.MustCompile(`\[\d+\]|\([^)]*\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// simplification is one ordered rewrite rule applied by Clean.
type simplification struct {
	pattern     *regexp.Regexp
	replacement string
}

// simplifications maps formal phrasing to informal phrasing. Replacements
// must never re-match their own pattern, which keeps Clean idempotent.
var simplifications = []simplification{
	{regexp.MustCompile(`(?i)\bposteriormente\b`), "depois"},
	{regexp.MustCompile(`(?i)\bdevido ao fato de\b`), "porque"},
	{regexp.MustCompile(`(?i)\bconstitui\b`), "é"},
	{regexp.MustCompile(`(?i)\bdenominado\b`), "chamado"},
}

// Clean strips citation markers and parenthetical asides, collapses
// whitespace runs, trims, and applies the simplification rules in order.
// It never fails: if anything goes wrong internally the input is returned
// truncated to a bounded length.
func Clean(raw string) (out string) {
	if raw == "" {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			out = Truncate(raw, maxFallbackLen)
		}
	}()

	cleaned := citationRe.ReplaceAllString(raw, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	for _, rule := range simplifications {
		cleaned = rule.pattern.ReplaceAllString(cleaned, rule.replacement)
	}

	return cleaned
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
