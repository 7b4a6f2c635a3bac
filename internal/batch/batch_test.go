package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smd-loader/internal/loader"
	"smd-loader/internal/raster"
	"smd-loader/internal/vfs"
	"smd-loader/internal/viewmatrix"
)

const plate = `version 1
nodes
0 "root" -1
end
skeleton
time 0
0 0 0 0 0 0 0
end
triangles
plate.bmp
0 0 0 0 0 0 1 0 0
0 10 0 0 0 0 1 1 0
0 0 10 0 0 0 1 0 1
end
`

const bones = `version 1
nodes
0 "root" -1
end
skeleton
time 0
0 0 0 0 0 0 0
end
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func testConfig(root, out string) Config {
	return Config{
		Root:      root,
		OutputDir: out,
		Loader:    loader.New(vfs.New()),
		Render: raster.Options{
			Size:        16,
			Supersample: 2,
			Camera:      viewmatrix.DefaultCamera(),
		},
		ClusterRatio: 0.02,
		Workers:      2,
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.smd"), plate)
	writeFile(t, filepath.Join(dir, "sub", "a.SMD"), plate)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.smd"), filepath.Join(dir, "sub", "a.SMD")}, files)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorContains(t, err, "batch: scan")
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	good := filepath.Join(root, "props", "plate.smd")
	empty := filepath.Join(root, "bones.smd")
	missing := filepath.Join(root, "gone.smd")
	writeFile(t, good, plate)
	writeFile(t, empty, bones)

	results := Run(testConfig(root, out), []string{good, empty, missing})
	require.Len(t, results, 3)

	ok := results[0]
	assert.True(t, ok.Success, ok.Error)
	assert.Equal(t, "props/plate.webp", ok.Image)
	assert.Equal(t, 1, ok.Nodes)
	assert.Equal(t, 1, ok.Frames)
	assert.Equal(t, 1, ok.Triangles)

	data, err := os.ReadFile(filepath.Join(out, "props", "plate.webp"))
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))

	assert.False(t, results[1].Success)
	assert.Equal(t, "no triangles in model", results[1].Error)

	assert.False(t, results[2].Success)
	assert.Contains(t, results[2].Error, "loader: no model")
}

func TestImageName(t *testing.T) {
	assert.Equal(t, "a/b.webp", imageName("/data", filepath.Join("/data", "a", "b.smd")))
	assert.Equal(t, "b.webp", imageName("", filepath.Join("/data", "a", "b.smd")))
	assert.Equal(t, "b.webp", imageName("/other", filepath.Join("/data", "a", "b.smd")))
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{File: "a.smd", Image: "a.webp", Success: true},
		{File: "b.smd", Error: "boom"},
	}

	m, err := WriteManifest(path, results)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Rendered)
	assert.Equal(t, 1, m.Failed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, json.Unmarshal(data, &got))

	_, err = uuid.Parse(got.RunID)
	assert.NoError(t, err)
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, results, got.Entries)
}
