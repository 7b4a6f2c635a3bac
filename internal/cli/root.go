package cli

import (
	"github.com/spf13/cobra"

	"smd-loader/internal/config"
	"smd-loader/internal/loader"
	"smd-loader/internal/logger"
	"smd-loader/internal/raster"
	"smd-loader/internal/texture"
	"smd-loader/internal/vfs"
	"smd-loader/internal/viewmatrix"
)

var version = "dev"

// Persistent flag values.
var (
	configFile  string
	verbose     bool
	searchPaths []string
	textureDirs []string
)

// settings is the resolved configuration for the running command.
var settings config.Config

var rootCmd = &cobra.Command{
	Use:   "smdtool",
	Short: "Inspect and preview Studio Model Data (.smd) files",
	Long: `smdtool loads text .smd models (skeleton, animation frames and triangle
meshes), converts them to the engine coordinate system and renders
WebP previews of their geometry.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to a TOML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringSliceVar(&searchPaths, "search-path", nil, "logical search root (repeatable)")
	pf.StringSliceVar(&textureDirs, "texture-dir", nil, "directory scanned for textures (repeatable)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}

	cfg.Resolve(config.Flags{
		SearchPaths: searchPaths,
		TextureDirs: textureDirs,
		OutputDir:   outputFlag(cmd),
		Size:        intFlag(cmd, "size"),
		Workers:     intFlag(cmd, "workers"),
		View:        stringFlag(cmd, "view"),
		Verbose:     verbose,
	})
	if flag := cmd.Flags().Lookup("perspective"); flag != nil && flag.Changed {
		cfg.Perspective = flag.Value.String() == "true"
	}

	logger.SetVerbose(cfg.Verbose)
	logger.SetOutput(cmd.ErrOrStderr())
	settings = cfg
	return nil
}

// outputFlag reads --output only on commands where it names a directory.
func outputFlag(cmd *cobra.Command) string {
	if cmd.Annotations["output"] != "dir" {
		return ""
	}
	v, _ := cmd.Flags().GetString("output")
	return v
}

func stringFlag(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func intFlag(cmd *cobra.Command, name string) int {
	if cmd.Flags().Lookup(name) == nil {
		return 0
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func newLoader() *loader.Loader {
	return loader.New(vfs.New(settings.SearchPaths...))
}

func newTextureCache() *texture.Cache {
	idx := texture.BuildIndex(settings.TextureDirs...)
	logger.Debug("textures: %d indexed", idx.Len())
	return texture.NewCache(idx)
}

func renderOptions() (raster.Options, error) {
	view, err := viewmatrix.ViewByName(settings.View)
	if err != nil {
		return raster.Options{}, err
	}
	cam := viewmatrix.Camera{
		View:        view,
		Perspective: settings.Perspective,
		FOV:         settings.FOV,
	}
	return raster.Options{
		Size:        settings.RenderSize,
		Supersample: settings.Supersample,
		Camera:      cam,
	}, nil
}
