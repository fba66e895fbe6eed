package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"groovystatic/pkg/config"
)

const sampleYAML = `
methods:
  Example:
    - run
    - helper
plugins:
  dynamicVariables: false
strictPrecisionLoss: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "groovytypec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesMethodsPluginsAndStrictness(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, cfg.StrictPrecisionLoss)

	methods := cfg.MethodsFor("Example")
	require.True(t, methods["run"])
	require.True(t, methods["helper"])
	require.False(t, methods["other"])

	require.False(t, cfg.PluginEnabled("dynamicVariables"))
	require.True(t, cfg.PluginEnabled("properties"))
}

func TestMethodsForUnknownClassMeansCheckAll(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Nil(t, cfg.MethodsFor("Other"))
}

func TestNilConfigDefaultsToPermissive(t *testing.T) {
	var cfg *config.Config
	require.Nil(t, cfg.MethodsFor("Anything"))
	require.True(t, cfg.PluginEnabled("anything"))
}

func TestLoadReportsMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
