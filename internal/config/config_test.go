package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smdtool.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_dir = "/data"
search_paths = ["models", "/abs/models"]
render_size = 512
perspective = true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.BaseDir)
	assert.Equal(t, []string{"models", "/abs/models"}, cfg.SearchPaths)
	assert.Equal(t, 512, cfg.RenderSize)
	assert.True(t, cfg.Perspective)
	assert.Zero(t, cfg.Workers)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("render_size = [\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "config: parse")
}

func TestSaveLoadKeepsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	in := Config{BaseDir: "/x", SearchPaths: []string{"a"}, TextureDirs: []string{"tex"}, RenderSize: 128, FOV: 45}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestResolve_Defaults(t *testing.T) {
	cfg := Config{BaseDir: "/data"}
	cfg.Resolve(Flags{})

	assert.Equal(t, filepath.Join("/data", "renders"), cfg.OutputDir)
	assert.Equal(t, 256, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 60.0, cfg.FOV)
	assert.Equal(t, "three-quarter", cfg.View)
	assert.Equal(t, 0.02, cfg.ClusterRatio)
	assert.Empty(t, cfg.SearchPaths)
}

func TestResolve_FlagsOverride(t *testing.T) {
	cfg := Config{BaseDir: "/data", RenderSize: 512, SearchPaths: []string{"models"}}
	cfg.Resolve(Flags{
		OutputDir:   "out",
		Workers:     3,
		View:        "front",
		SearchPaths: []string{"other", "/abs"},
		Verbose:     true,
	})

	assert.Equal(t, 512, cfg.RenderSize)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "front", cfg.View)
	assert.Equal(t, filepath.Join("/data", "out"), cfg.OutputDir)
	assert.Equal(t, []string{filepath.Join("/data", "other"), "/abs"}, cfg.SearchPaths)
	assert.True(t, cfg.Verbose)
}
