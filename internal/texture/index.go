package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// extPriority ranks image formats when several files share a stem.
// Lower wins; TGA first because studio materials usually carry alpha there.
var extPriority = map[string]int{
	".tga":  0,
	".png":  1,
	".bmp":  2,
	".jpg":  3,
	".jpeg": 3,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks every dir recursively and indexes the image files it finds.
// Missing directories are skipped.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			rank, ok := extPriority[ext]
			if !ok {
				return nil
			}
			stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

			existing, exists := idx.entries[stem]
			if !exists || rank < extPriority[strings.ToLower(filepath.Ext(existing))] {
				idx.entries[stem] = path
			}
			return nil
		})
	}

	return idx
}

// ResolvePath returns the filesystem path for a mesh texture key, or ("", false).
// Directory components are ignored; a trailing image extension is tolerated.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := strings.ToLower(filepath.Base(texName))

	if path, ok := idx.entries[base]; ok {
		return path, true
	}
	if _, known := extPriority[filepath.Ext(base)]; known {
		path, ok := idx.entries[strings.TrimSuffix(base, filepath.Ext(base))]
		return path, ok
	}
	return "", false
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
