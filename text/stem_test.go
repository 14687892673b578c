package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem_Deterministic(t *testing.T) {
	words := []string{"capital", "frança", "importante", "cidades", "Mitologia"}
	for _, w := range words {
		assert.Equal(t, Stem(w), Stem(w), "stemming %q must be stable", w)
	}
}

func TestStem_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Stem("França"), Stem("frança"))
}

func TestStemSet(t *testing.T) {
	t.Run("excludes short words", func(t *testing.T) {
		set := StemSet("o que é a capital da frança")
		// "o", "que", "é", "a", "da" are all three characters or fewer.
		_, hasQue := set[Stem("que")]
		assert.False(t, hasQue)
		_, hasCapital := set[Stem("capital")]
		assert.True(t, hasCapital)
	})

	t.Run("trims punctuation", func(t *testing.T) {
		set := StemSet("frança?")
		_, ok := set[Stem("frança")]
		assert.True(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, StemSet("é o a"))
	})
}

func TestStemOverlap(t *testing.T) {
	query := StemSet("qual capital frança")
	same := StemSet("qual capital frança")
	other := StemSet("qual capital espanha")

	t.Run("identical sets overlap fully", func(t *testing.T) {
		assert.InDelta(t, 1.0, StemOverlap(query, same), 1e-9)
	})

	t.Run("partial overlap", func(t *testing.T) {
		got := StemOverlap(query, other)
		assert.Greater(t, got, 0.0)
		assert.Less(t, got, 1.0)
	})

	t.Run("empty query set", func(t *testing.T) {
		assert.Zero(t, StemOverlap(nil, same))
	})
}
