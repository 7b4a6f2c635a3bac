// Package vfs opens model files by logical path (relative to a set of
// content roots) with a fallback to the raw operating-system path.
package vfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when neither lookup finds the file.
var ErrNotFound = errors.New("vfs: file not found")

// FS resolves logical paths against Roots in order.
type FS struct {
	Roots []fs.FS
}

// New returns an FS rooted at the given directories.
func New(dirs ...string) *FS {
	roots := make([]fs.FS, 0, len(dirs))
	for _, d := range dirs {
		if d == "" {
			continue
		}
		roots = append(roots, os.DirFS(d))
	}
	return &FS{Roots: roots}
}

// OpenLogical opens name relative to the first root that has it.
// Backslashes are accepted as separators.
func (v *FS) OpenLogical(name string) (io.ReadCloser, error) {
	p := logicalPath(name)
	if p == "" {
		return nil, fmt.Errorf("vfs: open %s: %w", name, ErrNotFound)
	}
	for _, root := range v.Roots {
		f, err := root.Open(p)
		if err != nil {
			continue
		}
		if st, err := f.Stat(); err != nil || st.IsDir() {
			f.Close()
			continue
		}
		return f, nil
	}
	return nil, fmt.Errorf("vfs: open %s: %w", name, ErrNotFound)
}

// OpenSystem opens name as an operating-system path.
func (v *FS) OpenSystem(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("vfs: open %s: %w", name, errors.Join(ErrNotFound, err))
	}
	return f, nil
}

// Open tries OpenLogical, then OpenSystem.
func (v *FS) Open(name string) (io.ReadCloser, error) {
	if f, err := v.OpenLogical(name); err == nil {
		return f, nil
	}
	return v.OpenSystem(name)
}

// logicalPath converts name to an io/fs path, or "" if it cannot be one.
func logicalPath(name string) string {
	p := strings.ReplaceAll(name, `\`, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if !fs.ValidPath(p) {
		return ""
	}
	return p
}
