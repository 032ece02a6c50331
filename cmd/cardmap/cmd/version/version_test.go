package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/cmd/cmdtest"
)

func TestVersion(t *testing.T) {
	app := &application.Mock{VersionFunc: func() string { return "1.2.3" }}

	out, err := cmdtest.Run(NewCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "cardmap version 1.2.3")
	assert.Contains(t, out, "built by: test")
}
