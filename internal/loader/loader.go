// Package loader turns a model path into a fully prepared smd.Model:
// open, parse, build the hierarchy, convert coordinates.
package loader

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"smd-loader/internal/logger"
	"smd-loader/internal/skeleton"
	"smd-loader/internal/smd"
)

// ErrNoModel is returned when the file cannot be opened by either lookup.
var ErrNoModel = errors.New("loader: no model")

// Opener is the file access the loader needs. *vfs.FS implements it.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// Loader loads models and caches them by path.
// Cached models are shared and must be treated as read-only.
type Loader struct {
	mu     sync.RWMutex
	opener Opener
	cache  map[string]*smd.Model
}

// New creates a Loader that opens files through o.
func New(o Opener) *Loader {
	return &Loader{
		opener: o,
		cache:  make(map[string]*smd.Model),
	}
}

// Load returns the model at path, loading it on first use.
func (l *Loader) Load(path string) (*smd.Model, error) {
	l.mu.RLock()
	if m, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return m, nil
	}
	l.mu.RUnlock()

	m, err := l.load(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[path]; ok {
		return cached, nil
	}
	l.cache[path] = m
	return m, nil
}

// Reload drops any cached copy of path and loads it again.
func (l *Loader) Reload(path string) (*smd.Model, error) {
	l.Evict(path)
	return l.Load(path)
}

// Evict removes path from the cache.
func (l *Loader) Evict(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, path)
}

// Len returns the number of cached models.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache)
}

func (l *Loader) load(path string) (*smd.Model, error) {
	f, err := l.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoModel, err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	logger.Debug("%s: %d nodes, %d frames, %d meshes, %d triangles",
		path, len(m.Nodes), len(m.Frames), len(m.Meshes), m.TriangleCount())
	for _, w := range m.Warnings {
		logger.Warn("%s: %s", path, w)
	}
	return m, nil
}

// Read parses r and runs the hierarchy and coordinate passes.
// Hierarchy problems do not fail the load; they are recorded in
// Model.Warnings.
func Read(r io.Reader) (*smd.Model, error) {
	m, err := smd.Parse(r)
	if err != nil {
		return nil, err
	}
	if err := skeleton.BuildHierarchy(m); err != nil {
		m.Warnings = append(m.Warnings, err.Error())
	}
	if err := skeleton.ConvertCoordinateSystem(m); err != nil {
		m.Warnings = append(m.Warnings, err.Error())
	}
	return m, nil
}
