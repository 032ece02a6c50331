package clear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/internal/cmd/cmdtest"
)

func TestClear_RequiresConfirmation(t *testing.T) {
	env := cmdtest.NewEnv(t, nil)
	env.Seed(t, cmdtest.Cards())

	_, err := cmdtest.Run(NewCommand(env.App))
	require.Error(t, err)

	cached, err := env.Service.Cached(t.Context())
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestClear_EmptiesCache(t *testing.T) {
	env := cmdtest.NewEnv(t, nil)
	env.Seed(t, cmdtest.Cards())

	out, err := cmdtest.Run(NewCommand(env.App), "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	cached, err := env.Service.Cached(t.Context())
	require.NoError(t, err)
	assert.Empty(t, cached)
}
