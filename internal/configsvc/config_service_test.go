package configsvc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	OutputDir string `json:"outputDir"`
	DataDir   string `json:"dataDir"`
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("outputDir: /tmp/dumps\n"), 0644))

	cfg, err := Load(path, testConfig{DataDir: "/var/lib/hidrawctl"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dumps", cfg.OutputDir)
	assert.Equal(t, "/var/lib/hidrawctl", cfg.DataDir)
}

func TestLoadMissingFileYieldsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"), testConfig{OutputDir: "."})
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("\toutputDir: ["), 0644))

	_, err := Load(path, testConfig{})
	assert.Error(t, err)
}
