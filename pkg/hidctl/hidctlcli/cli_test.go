package hidctlcli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	cmd := NewRootCmd(t.TempDir())
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range []string{"dump", "dumphid", "send", "recv", "feature-get", "feature-set", "list", "watch", "emulate"} {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
}

func TestUsageErrorsReprintUsage(t *testing.T) {
	cmd := NewRootCmd(t.TempDir())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"feature-get", "/dev/hidraw0", "0x1FF"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid report id")
	assert.Contains(t, out.String(), "Usage:")
}

func TestMissingArgumentsAreUsageErrors(t *testing.T) {
	cmd := NewRootCmd(t.TempDir())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"dump"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "Usage:")
}
