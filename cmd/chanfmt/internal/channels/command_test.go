package channels

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChannelsCommand(t *testing.T) {
	cmd := NewChannelsCommand()

	require.NotNil(t, cmd)
	assert.Equal(t, "channels", cmd.Use)
	assert.Equal(t, []string{"ls"}, cmd.Aliases)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestChannelsCommand_List(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"channels": {"discord": {"enabled": false}, "slack": {"enabled": true, "max_message_length": 300}}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cmd := NewChannelsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.Execute())

	want := "slack      relaxed      300\n" +
		"telegram   strict       4096\n" +
		"whatsapp   relaxed      65536\n"
	assert.Equal(t, want, out.String())
}
