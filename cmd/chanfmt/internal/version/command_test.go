package version

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, []string{"v"}, cmd.Aliases)
	assert.NotNil(t, cmd.Run)
	assert.False(t, cmd.HasFlags())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "chanfmt dev")
	assert.Contains(t, out.String(), "Go: "+runtime.Version())
}
