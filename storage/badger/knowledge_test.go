package badger

import (
	"context"
	"testing"

	"github.com/stayely/pitia-assistente/core"
	"github.com/stayely/pitia-assistente/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKnowledge(t *testing.T) storage.KnowledgeRepository {
	t.Helper()
	_, knowledge, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		knowledge.Close()
		backend.Close()
	})
	return knowledge
}

func TestKnowledgeRepository_AppendAndGet(t *testing.T) {
	repo := setupKnowledge(t)
	ctx := context.Background()

	entry, err := repo.Append(ctx, "Mitologia Grega", "Os gregos contavam histórias sobre os deuses do Olimpo.")
	require.NoError(t, err)
	assert.Equal(t, "mitologia grega", entry.Query)
	assert.Len(t, entry.Answers, 1)

	got, err := repo.Get(ctx, "mitologia grega")
	require.NoError(t, err)
	assert.Equal(t, entry.Answers, got.Answers)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestKnowledgeRepository_AppendAccumulates(t *testing.T) {
	repo := setupKnowledge(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, "sistema solar", "O sistema solar tem oito planetas.")
	require.NoError(t, err)
	entry, err := repo.Append(ctx, "sistema solar", "O sol é uma estrela anã amarela.")
	require.NoError(t, err)

	assert.Len(t, entry.Answers, 2)
}

func TestKnowledgeRepository_AppendSkipsDuplicates(t *testing.T) {
	repo := setupKnowledge(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, "tema", "Uma resposta qualquer.")
	require.NoError(t, err)
	entry, err := repo.Append(ctx, "tema", "UMA RESPOSTA QUALQUER.")
	require.NoError(t, err)

	assert.Len(t, entry.Answers, 1)
}

func TestKnowledgeRepository_AppendInvalid(t *testing.T) {
	repo := setupKnowledge(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, "", "resposta")
	assert.ErrorIs(t, err, core.ErrEmptyQuery)

	_, err = repo.Append(ctx, "pergunta", "   ")
	assert.ErrorIs(t, err, core.ErrEmptyAnswer)
}

func TestKnowledgeRepository_GetMissing(t *testing.T) {
	repo := setupKnowledge(t)

	_, err := repo.Get(context.Background(), "inexistente")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
