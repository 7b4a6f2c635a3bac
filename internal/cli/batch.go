package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"smd-loader/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Render every .smd file under a directory",
	Long: `Walks dir for .smd files and renders each one to WebP with a worker pool.
Images mirror the input tree under the output directory, next to a
manifest.json listing per-file statistics and errors.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"output": "dir"},
	RunE:        runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringP("output", "o", "", "output directory (default: <base>/renders)")
	f.Int("size", 0, "output edge length in pixels (default 256)")
	f.Int("workers", 0, "number of worker goroutines (default: NumCPU)")
	f.Bool("perspective", false, "use a perspective camera")
	f.String("view", "", "preview angle: three-quarter, front or engine")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("batch: resolve %s: %w", args[0], err)
	}
	files, err := batch.Discover(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmd.Println("No models to render.")
		return nil
	}

	opts, err := renderOptions()
	if err != nil {
		return err
	}

	cfg := batch.Config{
		Root:         root,
		OutputDir:    settings.OutputDir,
		Loader:       newLoader(),
		TexResolver:  newTextureCache(),
		Render:       opts,
		ClusterRatio: settings.ClusterRatio,
		Workers:      settings.Workers,
	}

	cmd.Printf("Models: %d, Workers: %d\n", len(files), cfg.Workers)
	cmd.Printf("Output: %s\n", cfg.OutputDir)

	start := time.Now()
	results := batch.Run(cfg, files)

	m, err := batch.WriteManifest(filepath.Join(cfg.OutputDir, "manifest.json"), results)
	if err != nil {
		return err
	}

	cmd.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	cmd.Printf("Rendered: %d/%d (run %s)\n", m.Rendered, len(results), m.RunID)

	const limit = 20
	shown := 0
	for _, r := range results {
		if r.Success {
			continue
		}
		if shown == limit {
			cmd.Printf("  ... and %d more\n", m.Failed-limit)
			break
		}
		cmd.Printf("  %s: %s\n", r.File, r.Error)
		shown++
	}
	return nil
}
