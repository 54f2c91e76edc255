package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "forgelode-indexer")
}

func TestConfigExampleCommand(t *testing.T) {
	out, err := execute(t, "config", "example")
	require.NoError(t, err)
	assert.Contains(t, out, "store:")
	assert.Contains(t, out, "cache:")
	assert.Contains(t, out, "logging:")
}

func TestRunCommand_RejectsArgs(t *testing.T) {
	_, err := execute(t, "run", "extra")
	require.Error(t, err)
}

func TestRunCommand_EmptyInMemoryStore(t *testing.T) {
	// Empty store and index paths select in-memory backends.
	cfgPath := filepath.Join(t.TempDir(), "indexer.yaml")
	data := "store:\n  path: \"\"\nindex:\n  path: \"\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0o644))

	out, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 0 documents")
}
