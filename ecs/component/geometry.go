package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gsandbox/common"
)

type MovementType int

const (
	MovementStatic MovementType = iota
	MovementSin
)

func (m MovementType) String() string {
	switch m {
	case MovementStatic:
		return "static"
	case MovementSin:
		return "sin"
	default:
		return fmt.Sprintf("movement(%d)", int(m))
	}
}

func (m MovementType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MovementType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "static":
		*m = MovementStatic
	case "sin":
		*m = MovementSin
	default:
		return fmt.Errorf("unknown movement type %q", string(text))
	}
	return nil
}

// DefaultMaxTimerCount is how many colors an actor cycles through before its
// timer stops.
const DefaultMaxTimerCount = 5

// GeometryData configures a geometry actor. It is assigned before the actor
// starts and never changes afterwards.
type GeometryData struct {
	MoveType  MovementType
	Amplitude float64
	Frequency float64
	Color     common.LinearColor
	TimerRate float64
}

func DefaultGeometryData() GeometryData {
	return GeometryData{
		MoveType:  MovementStatic,
		Amplitude: 50,
		Frequency: 2,
		Color:     common.Black,
		TimerRate: 3,
	}
}

// Evaluate returns where the actor should be at world time t. Sin moves the
// vertical axis around the initial height; every other kind keeps current.
func (d GeometryData) Evaluate(initial, current cp.Vector, t float64) cp.Vector {
	switch d.MoveType {
	case MovementSin:
		current.Y = initial.Y + d.Amplitude*math.Sin(d.Frequency*t)
		return current
	default:
		return current
	}
}

type CycleStep int

const (
	// CycleIdle means the cycle already stopped; nothing happens.
	CycleIdle CycleStep = iota
	CycleColor
	CycleFinish
)

// ColorCycle counts timer firings. Count never exceeds Max and CycleFinish is
// returned exactly once.
type ColorCycle struct {
	Count   int
	Max     int
	Stopped bool
}

func (c *ColorCycle) Fire() CycleStep {
	if c.Stopped {
		return CycleIdle
	}
	if c.Count < c.Max {
		c.Count++
		return CycleColor
	}
	c.Stopped = true
	return CycleFinish
}

// Geometry is a geometry actor: its configuration plus what it captured when
// it started.
type Geometry struct {
	Data            GeometryData
	InitialLocation cp.Vector
	Cycle           ColorCycle
	Started         bool
}

func NewGeometry(data GeometryData, maxTimerCount int) *Geometry {
	return &Geometry{
		Data:  data,
		Cycle: ColorCycle{Max: maxTimerCount},
	}
}

var GeometryComponent = NewComponent[Geometry]()
