package text

import (
	"regexp"
	"strings"
)

var (
	sentenceEndRe = regexp.MustCompile(`([.!?…]+)(\s+|$)`)
	digitGroupRe  = regexp.MustCompile(`\d+`)
)

// abbreviations that end with a period but do not terminate a sentence.
var abbreviations = map[string]bool{
	"sr": true, "sra": true, "dr": true, "dra": true, "prof": true,
	"etc": true, "ex": true, "av": true, "séc": true, "pág": true,
}

// Sentences splits text into sentences on terminal punctuation,
// keeping the punctuation attached and skipping common abbreviations.
func Sentences(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(input, -1) {
		candidate := strings.TrimSpace(input[start:loc[1]])
		if candidate == "" {
			continue
		}
		if endsWithAbbreviation(candidate) {
			continue
		}
		sentences = append(sentences, candidate)
		start = loc[1]
	}
	if rest := strings.TrimSpace(input[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func endsWithAbbreviation(sentence string) bool {
	trimmed := strings.TrimRight(sentence, ".!?… ")
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToLower(fields[len(fields)-1])
	return abbreviations[last]
}

// KeySentences picks up to max sentences suitable for paraphrased
// answers: between 11 and 29 words, with fewer than three digit groups
// (sentences dense in numbers are usually statistics tables).
func KeySentences(input string, max int) []string {
	if max <= 0 {
		return nil
	}

	var picked []string
	for _, sentence := range Sentences(input) {
		words := WordCount(sentence)
		if words <= 10 || words >= 30 {
			continue
		}
		if len(digitGroupRe.FindAllString(sentence, -1)) >= 3 {
			continue
		}
		picked = append(picked, sentence)
		if len(picked) == max {
			break
		}
	}
	return picked
}
