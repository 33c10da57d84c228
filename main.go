package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/gsandbox/common"
	"github.com/milk9111/gsandbox/gamemode"
	"github.com/milk9111/gsandbox/logger"
	"github.com/milk9111/gsandbox/prefabs"
	"github.com/milk9111/gsandbox/stats"
)

var (
	// prefabName is the hub prefab loaded at startup.
	prefabName string
	// paletteScript names a tengo palette; empty uses random colors.
	paletteScript string
	seed          int64
	logLevel      string
	verbose       bool
	// watch enables prefab hot reload from disk.
	watch bool

	rootCmd = &cobra.Command{
		Use:   "gsandbox",
		Short: "Geometry sandbox.",
		Long: `Opens a window with a geometry hub: actors that bob on a sine wave or stay
put, change color on a timer a fixed number of times, announce when they are
done and are retired shortly after.

Press P or Esc to pause.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}
			logger.SetLevel(level)
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWindow()
		},
	}
)

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&prefabName, "prefab", prefabs.HubPrefab, "hub prefab to spawn")
	flags.StringVar(&paletteScript, "palette", "", "tengo palette script (e.g. palette.tengo); random colors when empty")
	flags.Int64Var(&seed, "seed", 0, "random seed; 0 seeds from the clock")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log actor transforms when they start")

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload prefabs and palette scripts when they change on disk")

	rootCmd.AddCommand(newSimulateCmd())
}

func gameOptions(store *stats.Store) gamemode.Options {
	return gamemode.Options{
		Prefab:  prefabName,
		Palette: paletteScript,
		Seed:    seed,
		Verbose: verbose,
		Stats:   store,
	}
}

func runWindow() error {
	log := logger.Category("LogGSandbox")

	store, err := stats.Open(stats.AppName, logger.Category("LogStats"))
	if err != nil {
		log.Warnw("stats are not persisted", "error", err)
	}

	mode, err := gamemode.New(gameOptions(store))
	if err != nil {
		return err
	}

	var watcher *prefabs.Watcher
	if watch {
		watcher, err = prefabs.NewWatcher(prefabs.DiskRoot, filepath.Join(prefabs.DiskRoot, "scripts"))
		if err != nil {
			log.Warnw("hot reload disabled", "error", err)
			watcher = nil
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("gsandbox")
	ebiten.SetTPS(common.TPS)

	game := NewGame(mode, watcher, log)
	runErr := ebiten.RunGame(game)
	if err := game.close(); err != nil {
		log.Warnw("saving stats failed", "error", err)
	}
	return runErr
}
