package text

// Stop words filtered out before similarity scoring and paraphrasing.
// Portuguese first, then the English subset that shows up in scraped
// snippets from mixed-language sources.
var stopWords = map[string]bool{
	"a": true, "à": true, "ao": true, "aos": true, "as": true, "às": true,
	"com": true, "como": true, "da": true, "das": true, "de": true,
	"dela": true, "dele": true, "deles": true, "do": true, "dos": true,
	"e": true, "é": true, "ela": true, "ele": true, "eles": true,
	"em": true, "entre": true, "era": true, "essa": true, "esse": true,
	"esta": true, "está": true, "este": true, "eu": true, "foi": true,
	"for": true, "há": true, "isso": true, "isto": true, "já": true,
	"mais": true, "mas": true, "me": true, "mesmo": true, "meu": true,
	"minha": true, "muito": true, "na": true, "não": true, "nas": true,
	"nem": true, "no": true, "nos": true, "nós": true, "num": true,
	"numa": true, "o": true, "os": true, "ou": true, "para": true,
	"pela": true, "pelo": true, "por": true, "qual": true, "quando": true,
	"que": true, "quem": true, "são": true, "se": true, "sem": true,
	"ser": true, "seu": true, "sua": true, "só": true, "também": true,
	"te": true, "tem": true, "tém": true, "ter": true, "teu": true,
	"tu": true, "tua": true, "um": true, "uma": true, "você": true,
	"vocês": true, "vos": true,

	"the": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true,
	"that": true, "have": true, "it": true, "not": true,
	"on": true, "with": true, "you": true, "at": true, "this": true,
	"but": true, "by": true, "from": true,
}

// IsStopWord reports whether the lowercased word is a stop word.
func IsStopWord(word string) bool {
	return stopWords[word]
}

// ContentWords tokenizes text and drops stop words and words shorter
// than two characters.
func ContentWords(text string) []string {
	words := Tokenize(text)
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 || stopWords[w] {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}
