package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/gamemode"
	"github.com/milk9111/gsandbox/prefabs"
)

func TestSimulatePrintsTranscriptAndTotals(t *testing.T) {
	prev := prefabs.DiskRoot
	prefabs.DiskRoot = t.TempDir()
	t.Cleanup(func() { prefabs.DiskRoot = prev })

	mode, err := gamemode.New(gamemode.Options{Seed: 11})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, simulate(&out, mode, 60*20, 1.0/60))

	text := out.String()
	require.Contains(t, text, "actor_started")
	require.Contains(t, text, "color_changed    BaseGeometryActor_Sin (R=")
	require.Contains(t, text, "timer_finished   BaseGeometryActor_Fast")
	require.Contains(t, text, "spawned=9 color_changes=45 cycles_finished=9 destroyed=9")
	require.Equal(t, 45, strings.Count(text, "color_changed"))
}

func TestValidateSimulateFlags(t *testing.T) {
	require.NoError(t, validateSimulateFlags(0, 1.0/60))
	require.NoError(t, validateSimulateFlags(10, ecs.MaxDeltaSeconds))

	require.Error(t, validateSimulateFlags(-1, 1.0/60))
	require.Error(t, validateSimulateFlags(10, 0))
	require.Error(t, validateSimulateFlags(10, 1))
}
