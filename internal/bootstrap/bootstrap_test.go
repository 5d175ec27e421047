package bootstrap

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore-catalog/internal/adapters/llm/provider"
	"petstore-catalog/internal/domain/pets"
	"petstore-catalog/internal/platform/config"
	"petstore-catalog/internal/platform/logger"
)

func TestBuild_DefaultsToMemoryWithoutLLM(t *testing.T) {
	d, cleanup, err := Build(context.Background(), config.Default(), nil)
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	body := `{"name":"Rex","type":"dog","price":30}`
	resp, err := d.Dispatch(ctx, pets.Event{Path: "/pets", HTTPMethod: http.MethodPost, Body: &body})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	q := `{"query":"a dog"}`
	resp, err = d.Dispatch(ctx, pets.Event{Path: "/pets/query", HTTPMethod: http.MethodPost, Body: &q})
	require.NoError(t, err)
	assert.Contains(t, resp.Body, `"fallback":true`)
}

func TestBuild_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = "cassandra"
	_, cleanup, err := Build(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	require.NotNil(t, cleanup)
	cleanup()

	cfg = config.Default()
	cfg.LLM.Provider = "openai"
	_, _, err = Build(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, provider.ErrUnknownProvider)
}

func TestOpenRepository_Memory(t *testing.T) {
	for _, driver := range []string{"", "memory", " MEMORY "} {
		repo, cleanup, err := OpenRepository(context.Background(), config.Store{Driver: driver}, logger.Nop())
		require.NoError(t, err, "driver %q", driver)
		cleanup()

		all, err := repo.Scan(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	}
}
