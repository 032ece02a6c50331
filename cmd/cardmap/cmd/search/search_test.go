package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/internal/cmd/cmdtest"
	"github.com/agentstation/cardmap/pkg/cards"
)

func decode(t *testing.T, out string) []cards.Card {
	t.Helper()
	var cs []cards.Card
	require.NoError(t, json.Unmarshal([]byte(out), &cs))
	return cs
}

func TestSearch_Cached(t *testing.T) {
	env := cmdtest.NewEnv(t, nil)
	env.Seed(t, cmdtest.Cards())

	out, err := cmdtest.Run(NewCommand(env.App), "chari")
	require.NoError(t, err)
	assert.Equal(t, []string{"base1-4"}, cards.IDs(decode(t, out)))
	assert.Empty(t, env.Fetcher.Credentials())
}

func TestSearch_NoMatches(t *testing.T) {
	env := cmdtest.NewEnv(t, nil)
	env.Seed(t, cmdtest.Cards())

	out, err := cmdtest.Run(NewCommand(env.App), "mewtwo")
	require.NoError(t, err)
	assert.Empty(t, decode(t, out))
}

func TestSearch_RemoteDoesNotCache(t *testing.T) {
	env := cmdtest.NewEnv(t, cmdtest.Cards())

	out, err := cmdtest.Run(NewCommand(env.App), "--remote", "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, []string{"xy7-54"}, cards.IDs(decode(t, out)))
	assert.Equal(t, []string{"test-key"}, env.Fetcher.Credentials())

	cached, err := env.Service.Cached(t.Context())
	require.NoError(t, err)
	assert.Empty(t, cached)
}
