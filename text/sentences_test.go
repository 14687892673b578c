package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "splits on terminal punctuation",
			input: "Primeira frase. Segunda frase! Terceira frase?",
			want:  []string{"Primeira frase.", "Segunda frase!", "Terceira frase?"},
		},
		{
			name:  "keeps abbreviations together",
			input: "O Dr. Silva chegou cedo. Depois saiu.",
			want:  []string{"O Dr. Silva chegou cedo.", "Depois saiu."},
		},
		{
			name:  "trailing text without punctuation",
			input: "Uma frase completa. resto sem ponto final",
			want:  []string{"Uma frase completa.", "resto sem ponto final"},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.input))
		})
	}
}

func TestKeySentences(t *testing.T) {
	short := "Frase curta."
	good := "Esta frase tem exatamente o tamanho certo para servir como resposta da base de conhecimento hoje."
	numeric := "Em 1990 havia 12 cidades com mais de 3 milhões de habitantes segundo o censo daquele mesmo ano."

	t.Run("filters by word count", func(t *testing.T) {
		got := KeySentences(short+" "+good, 3)
		assert.Equal(t, []string{good}, got)
	})

	t.Run("filters sentences dense in digits", func(t *testing.T) {
		got := KeySentences(numeric, 3)
		assert.Empty(t, got)
	})

	t.Run("caps at max", func(t *testing.T) {
		input := good + " " + good + " " + good + " " + good
		got := KeySentences(input, 2)
		assert.Len(t, got, 2)
	})

	t.Run("zero max", func(t *testing.T) {
		assert.Nil(t, KeySentences(good, 0))
	})
}
