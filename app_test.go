package pitia

import (
	"context"
	"testing"

	"github.com/stayely/pitia-assistente/config"
	"github.com/stayely/pitia-assistente/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openApp(t *testing.T) *App {
	t.Helper()
	app, err := Open(config.Default(), WithInMemory())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestOpen_WiresComponents(t *testing.T) {
	app := openApp(t)

	assert.NotNil(t, app.Assistant())
	assert.NotNil(t, app.LearnedRepository())
	assert.NotNil(t, app.KnowledgeRepository())
	assert.NotNil(t, app.Pipeline())
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.PoolSize = 0

	_, err := Open(cfg, WithInMemory())
	assert.ErrorIs(t, err, config.ErrInvalidPoolSize)
}

func TestApp_TeachAndAsk(t *testing.T) {
	app := openApp(t)
	ctx := context.Background()

	answer, err := app.Assistant().Respond(ctx, "oi")
	require.NoError(t, err)
	assert.Equal(t, "Olá! Como posso ajudar?", answer.Response)

	_, err = app.Assistant().Respond(ctx, "aprenda que pitia é legal")
	require.NoError(t, err)

	answer, err = app.Assistant().Respond(ctx, "pitia é legal")
	require.NoError(t, err)
	assert.Equal(t, "é legal", answer.Response)
	assert.Equal(t, core.SourceMemory, answer.Source.Kind)
}

func TestApp_CloseIsClean(t *testing.T) {
	app, err := Open(config.Default(), WithInMemory())
	require.NoError(t, err)
	require.NoError(t, app.Close())
}
