package batch

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"smd-loader/internal/loader"
	"smd-loader/internal/logger"
	"smd-loader/internal/postprocess"
	"smd-loader/internal/raster"
	"smd-loader/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Root         string // files are named relative to Root in the output tree
	OutputDir    string
	Loader       *loader.Loader
	TexResolver  texture.Resolver
	Render       raster.Options
	ClusterRatio float64
	Workers      int
}

// Result holds the outcome of processing one model file.
type Result struct {
	File      string   `json:"file"`
	Image     string   `json:"image,omitempty"`
	Nodes     int      `json:"nodes"`
	Frames    int      `json:"frames"`
	Meshes    int      `json:"meshes"`
	Triangles int      `json:"triangles"`
	Warnings  []string `json:"warnings,omitempty"`
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
}

// Discover returns every .smd file under dir, sorted.
func Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".smd") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes all files using a worker pool. Results keep the input order.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Info("[%d/%d] %.1f models/sec", p, total, rate)
				}
			}
		}
	}()

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	res := Result{File: path}

	m, err := cfg.Loader.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Nodes = len(m.Nodes)
	res.Frames = len(m.Frames)
	res.Meshes = len(m.Meshes)
	res.Triangles = m.TriangleCount()
	res.Warnings = m.Warnings

	if res.Triangles == 0 {
		res.Error = "no triangles in model"
		return res
	}

	img := raster.RenderModel(m, cfg.TexResolver, cfg.Render)
	img = postprocess.Shrink(img, cfg.Render.Supersample)
	if cfg.ClusterRatio > 0 {
		img = postprocess.RemoveSmallClusters(img, cfg.ClusterRatio)
	}

	res.Image = imageName(cfg.Root, path)
	if err := SaveWebP(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// imageName maps a model path to its slash-separated .webp path in the output tree.
func imageName(root, path string) string {
	rel := filepath.Base(path)
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)) + ".webp")
}

// SaveWebP writes img as a lossless WebP file, creating parent directories.
func SaveWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: mkdir %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("batch: webp encode %s: %w", path, err)
	}
	return nil
}
