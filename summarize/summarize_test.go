package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_ShortInputPassthrough(t *testing.T) {
	s := New(3)

	in := "A capital da França é Paris."
	assert.Equal(t, in, s.Summarize(in))
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := New(3)

	assert.Equal(t, "", s.Summarize(""))
	assert.Equal(t, "", s.Summarize("   "))
}

func TestSummarize_FewSentencesJoined(t *testing.T) {
	s := New(3)

	in := "Paris é a capital da França desde a idade média. A cidade concentra os poderes políticos do país."
	got := s.Summarize(in)
	assert.Equal(t, in, got)
}

func TestSummarize_PicksRepresentativeSentences(t *testing.T) {
	s := New(2)

	in := "A mitologia grega descreve deuses e heróis da Grécia antiga. " +
		"Zeus governa os deuses do Olimpo na mitologia grega. " +
		"Esse parágrafo menciona um assunto completamente diferente hoje. " +
		"Os deuses da mitologia grega habitavam o monte Olimpo segundo os gregos."
	got := s.Summarize(in)

	sentences := strings.Split(got, ". ")
	assert.Len(t, sentences, 2)
	assert.Contains(t, got, "mitologia")
	assert.NotContains(t, got, "completamente diferente")
}

func TestSummarize_PreservesOriginalOrder(t *testing.T) {
	s := New(2)

	in := "Os planetas giram em torno do sol no sistema solar conhecido. " +
		"Nada de relevante aparece aqui sobre outro tema qualquer agora mesmo. " +
		"O sol e os planetas formam o sistema solar estudado pelos astrônomos."
	got := s.Summarize(in)

	first := strings.Index(got, "planetas giram")
	second := strings.Index(got, "formam o sistema")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
}

func TestSummarize_Deterministic(t *testing.T) {
	s := New(3)

	in := strings.Repeat("O gato caça o rato durante toda a noite fria. ", 8) +
		"Uma frase distinta sobre astronomia e estrelas distantes no céu escuro."
	a := s.Summarize(in)
	b := s.Summarize(in)
	assert.Equal(t, a, b)
}
