package storage

import (
	"testing"
	"time"

	"github.com/stayely/pitia-assistente/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("qual é a capital da frança")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalLearnedPair(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		pair *core.LearnedPair
	}{
		{
			name: "basic pair",
			pair: &core.LearnedPair{
				Question:  "qual é a capital da frança",
				Answer:    "Paris",
				LearnedAt: now,
			},
		},
		{
			name: "accented text",
			pair: &core.LearnedPair{
				Question:  "o que é a poção mágica",
				Answer:    "Uma mistura de ervas usada nas histórias de Astérix.",
				LearnedAt: now,
			},
		},
		{
			name: "zero timestamp",
			pair: &core.LearnedPair{
				Question: "pergunta",
				Answer:   "resposta",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalLearnedPair(tt.pair)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalLearnedPair(data)
			require.NoError(t, err)
			assert.Equal(t, tt.pair.Question, decoded.Question)
			assert.Equal(t, tt.pair.Answer, decoded.Answer)
			assert.True(t, tt.pair.LearnedAt.Equal(decoded.LearnedAt))
		})
	}
}

func TestUnmarshalLearnedPair_Invalid(t *testing.T) {
	_, err := UnmarshalLearnedPair([]byte{0xFF})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshalKnowledgeEntry_Invalid(t *testing.T) {
	_, err := UnmarshalKnowledgeEntry([]byte{0xFF})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalKnowledgeEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		entry *core.KnowledgeEntry
	}{
		{
			name: "single answer",
			entry: &core.KnowledgeEntry{
				Query:     "mitologia grega",
				Answers:   []string{"A mitologia grega reúne as narrativas dos gregos antigos."},
				UpdatedAt: now,
			},
		},
		{
			name: "multiple answers",
			entry: &core.KnowledgeEntry{
				Query: "sistema solar",
				Answers: []string{
					"O sistema solar tem oito planetas.",
					"O sol concentra quase toda a massa do sistema.",
					"Plutão é classificado como planeta anão.",
				},
				UpdatedAt: now,
			},
		},
		{
			name: "no answers",
			entry: &core.KnowledgeEntry{
				Query:     "pergunta sem resposta",
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalKnowledgeEntry(tt.entry)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalKnowledgeEntry(data)
			require.NoError(t, err)
			assert.Equal(t, tt.entry.Query, decoded.Query)
			assert.Equal(t, tt.entry.Answers, decoded.Answers)
			assert.True(t, tt.entry.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}
