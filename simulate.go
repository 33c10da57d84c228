package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/milk9111/gsandbox/common"
	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
	"github.com/milk9111/gsandbox/ecs/system"
	"github.com/milk9111/gsandbox/gamemode"
	"github.com/milk9111/gsandbox/logger"
	"github.com/milk9111/gsandbox/stats"
)

func newSimulateCmd() *cobra.Command {
	var (
		frames    int
		dt        float64
		saveStats bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the hub headless and print what happened.",
		Long: `Advances the sandbox for a fixed number of frames without a window and
prints every actor event followed by the session totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateSimulateFlags(frames, dt); err != nil {
				return err
			}

			store := stats.NewStore(nil, logger.Category("LogStats"))
			if saveStats {
				var err error
				store, err = stats.Open(stats.AppName, logger.Category("LogStats"))
				if err != nil {
					return err
				}
			}

			mode, err := gamemode.New(gameOptions(store))
			if err != nil {
				return err
			}
			return simulate(cmd.OutOrStdout(), mode, frames, dt)
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 20*common.TPS, "number of frames to simulate")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/common.TPS, fmt.Sprintf("seconds per frame, at most %v", ecs.MaxDeltaSeconds))
	cmd.Flags().BoolVar(&saveStats, "save-stats", false, "add this run to the persisted totals")

	return cmd
}

// validateSimulateFlags rejects frame deltas the world clock would clamp.
func validateSimulateFlags(frames int, dt float64) error {
	if frames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", frames)
	}
	if dt <= 0 || dt > ecs.MaxDeltaSeconds {
		return fmt.Errorf("dt must be in (0, %v], got %v", ecs.MaxDeltaSeconds, dt)
	}
	return nil
}

func simulate(out io.Writer, mode *gamemode.GameMode, frames int, dt float64) error {
	w := mode.World()
	mode.Observe(func(evt ecs.Event) {
		_, _ = fmt.Fprintf(out, "%8.3f  %-16s %s\n", w.TimeSeconds(), evt.Type, describeEvent(w, evt))
	})

	for i := 0; i < frames; i++ {
		mode.Tick(dt)
	}

	t := mode.Stats().Session()
	_, _ = fmt.Fprintf(out, "\nframes=%d time=%.3fs alive=%d\n", frames, w.TimeSeconds(), len(mode.Hub().Spawned(w)))
	_, _ = fmt.Fprintf(out, "spawned=%d color_changes=%d cycles_finished=%d destroyed=%d\n",
		t.Spawned, t.ColorChanges, t.CyclesFinished, t.Destroyed)

	return mode.Close()
}

func describeEvent(w *ecs.World, evt ecs.Event) string {
	switch data := evt.Data.(type) {
	case system.ColorChanged:
		return fmt.Sprintf("%s %s", data.Name, data.Color)
	case system.TimerFinished:
		return data.Name
	case ecs.Entity:
		if n, ok := ecs.Get(w, data, component.NameComponent.Kind()); ok {
			return n.Value
		}
		return data.String()
	default:
		return fmt.Sprint(data)
	}
}
