package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"smd-loader/internal/batch"
	"smd-loader/internal/loader"
	"smd-loader/internal/postprocess"
	"smd-loader/internal/raster"
	"smd-loader/internal/texture"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a model preview to WebP",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "output", "o", "", "output .webp path (default: <file>.webp)")
	f.Int("size", 0, "output edge length in pixels (default 256)")
	f.Bool("perspective", false, "use a perspective camera")
	f.String("view", "", "preview angle: three-quarter, front or engine")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	out := renderOut
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".webp"
	}

	if err := renderFile(newLoader(), newTextureCache(), args[0], out); err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}

// renderFile loads path and writes its preview to out.
func renderFile(l *loader.Loader, res texture.Resolver, path, out string) error {
	m, err := l.Load(path)
	if err != nil {
		return err
	}
	if m.TriangleCount() == 0 {
		return errors.New("render: model has no triangles")
	}

	opts, err := renderOptions()
	if err != nil {
		return err
	}
	img := raster.RenderModel(m, res, opts)
	img = postprocess.Shrink(img, opts.Supersample)
	img = postprocess.RemoveSmallClusters(img, settings.ClusterRatio)
	return batch.SaveWebP(out, img)
}
