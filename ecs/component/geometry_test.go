package component

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEvaluateSinStartsAtInitialHeight(t *testing.T) {
	d := DefaultGeometryData()
	d.MoveType = MovementSin

	initial := cp.Vector{X: 10, Y: 300}
	got := d.Evaluate(initial, cp.Vector{X: 42, Y: 999}, 0)
	require.Equal(t, 300.0, got.Y)
	require.Equal(t, 42.0, got.X, "horizontal axis is untouched")
}

func TestEvaluateSinOffset(t *testing.T) {
	d := GeometryData{MoveType: MovementSin, Amplitude: 20, Frequency: 3}
	initial := cp.Vector{X: 0, Y: 100}

	for _, tm := range []float64{0.1, 0.5, 1, 2.75} {
		got := d.Evaluate(initial, initial, tm)
		require.InDelta(t, 100+20*math.Sin(3*tm), got.Y, 1e-12)
	}
}

func TestEvaluateStaticKeepsPosition(t *testing.T) {
	for _, mt := range []MovementType{MovementStatic, MovementType(42)} {
		d := GeometryData{MoveType: mt, Amplitude: 50, Frequency: 2}
		current := cp.Vector{X: 5, Y: 7}
		for _, tm := range []float64{0, 1, 100} {
			require.Equal(t, current, d.Evaluate(cp.Vector{}, current, tm))
		}
	}
}

func TestColorCycleBounded(t *testing.T) {
	c := ColorCycle{Max: 3}
	var steps []CycleStep
	for i := 0; i < 6; i++ {
		steps = append(steps, c.Fire())
		require.LessOrEqual(t, c.Count, c.Max)
	}
	require.Equal(t, []CycleStep{CycleColor, CycleColor, CycleColor, CycleFinish, CycleIdle, CycleIdle}, steps)
	require.True(t, c.Stopped)
}

func TestColorCycleZeroMaxFinishesImmediately(t *testing.T) {
	c := ColorCycle{}
	require.Equal(t, CycleFinish, c.Fire())
	require.Equal(t, CycleIdle, c.Fire())
}

func TestMovementTypeYAML(t *testing.T) {
	var v struct {
		Move MovementType `yaml:"move"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("move: Sin"), &v))
	require.Equal(t, MovementSin, v.Move)

	require.Error(t, yaml.Unmarshal([]byte("move: zigzag"), &v))

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, "move: sin\n", string(out))
}
