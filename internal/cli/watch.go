package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"smd-loader/internal/logger"
	"smd-loader/internal/watch"
)

var watchOut string

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reload a model whenever its file changes",
	Long: `Prints the model summary on start and after every save. With --output
the preview is re-rendered as well. Stops on interrupt.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchOut, "output", "o", "", "re-render the preview to this .webp path on change")
	f.Int("size", 0, "output edge length in pixels (default 256)")
	f.Bool("perspective", false, "use a perspective camera")
	f.String("view", "", "preview angle: three-quarter, front or engine")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchModel(ctx, cmd, args[0])
}

func watchModel(ctx context.Context, cmd *cobra.Command, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	l := newLoader()
	res := newTextureCache()

	refresh := func(reload bool) {
		load := l.Load
		if reload {
			load = l.Reload
		}
		m, err := load(abs)
		if err != nil {
			logger.Error("%v", err)
			return
		}
		printSummary(cmd, path, m)

		if watchOut == "" {
			return
		}
		if err := renderFile(l, res, abs, watchOut); err != nil {
			logger.Error("%v", err)
			return
		}
		cmd.Printf("wrote %s\n", watchOut)
	}

	refresh(false)
	return watch.New().Watch(ctx, abs, func(string) {
		cmd.Println(strings.Repeat("-", 40))
		refresh(true)
	})
}
