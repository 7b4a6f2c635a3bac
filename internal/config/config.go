package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Config holds search paths and render settings.
type Config struct {
	// Paths
	BaseDir     string   `toml:"base_dir"`
	SearchPaths []string `toml:"search_paths"`
	TextureDirs []string `toml:"texture_dirs"`
	OutputDir   string   `toml:"output_dir"`

	// Render settings
	RenderSize   int     `toml:"render_size"`
	Supersample  int     `toml:"supersample"`
	Workers      int     `toml:"workers"`
	View         string  `toml:"view"`
	Perspective  bool    `toml:"perspective"`
	FOV          float64 `toml:"fov"`
	ClusterRatio float64 `toml:"cluster_ratio"`

	Verbose bool `toml:"verbose"`
}

// Load reads a TOML config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir     string
	SearchPaths []string
	TextureDirs []string
	OutputDir   string
	Size        int
	Workers     int
	View        string
	Verbose     bool
}

// Resolve applies flag overrides, then fills empty fields with defaults.
// Relative paths are resolved against BaseDir.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if len(flags.SearchPaths) > 0 {
		c.SearchPaths = flags.SearchPaths
	}
	if len(flags.TextureDirs) > 0 {
		c.TextureDirs = flags.TextureDirs
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.View != "" {
		c.View = flags.View
	}
	if flags.Verbose {
		c.Verbose = true
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	c.SearchPaths = c.absAll(c.SearchPaths)
	c.TextureDirs = c.absAll(c.TextureDirs)
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else {
		c.OutputDir = c.abs(c.OutputDir)
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.View == "" {
		c.View = "three-quarter"
	}
	if c.FOV <= 0 {
		c.FOV = 60
	}
	if c.ClusterRatio <= 0 {
		c.ClusterRatio = 0.02
	}
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func (c *Config) absAll(ps []string) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if p == "" {
			continue
		}
		out = append(out, c.abs(p))
	}
	return out
}
