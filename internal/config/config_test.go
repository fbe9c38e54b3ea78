package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pyrrust/internal/config"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	f, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFile(), f)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pyrrust.yaml")
	content := "cross_module_resolution: true\ndiagnostic_verbosity: verbose\ntype_overrides:\n  Matrix: \"Vec<Vec<f64>>\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, f.CrossModuleResolution)
	assert.Equal(t, "verbose", f.DiagnosticVerbosity)
	assert.Equal(t, "Vec<Vec<f64>>", f.TypeOverrides["Matrix"])
}

func TestTrimSourceExtAndHasSourceExt(t *testing.T) {
	assert.True(t, config.HasSourceExt("module.py"))
	assert.True(t, config.HasSourceExt("module.pyr"))
	assert.False(t, config.HasSourceExt("module.rs"))
	assert.Equal(t, "module", config.TrimSourceExt("module.py"))
	assert.Equal(t, "module.rs", config.TrimSourceExt("module.rs"))
}
