package system

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/gsandbox/common"
	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
	"github.com/milk9111/gsandbox/palette"
)

const (
	EventColorChanged   ecs.EventType = "color_changed"
	EventTimerFinished  ecs.EventType = "timer_finished"
	EventActorStarted   ecs.EventType = "actor_started"
	EventActorDestroyed ecs.EventType = "actor_destroyed"
)

var (
	ErrGeometryStarted = errors.New("geometry: data is frozen once the actor has started")
	ErrNotGeometry     = errors.New("geometry: entity is not a geometry actor")
)

// ColorChanged is broadcast every time the color cycle applies a new color.
type ColorChanged struct {
	Entity ecs.Entity
	Color  common.LinearColor
	Name   string
}

// TimerFinished is broadcast once, when the color cycle stops.
type TimerFinished struct {
	Entity ecs.Entity
	Name   string
}

// GeometryEvents are the two listener channels of one geometry actor.
type GeometryEvents struct {
	OnColorChanged  ecs.Delegate[ColorChanged]
	OnTimerFinished ecs.Delegate[TimerFinished]
}

type geometryRuntime struct {
	timer  ecs.TimerHandle
	events GeometryEvents
}

// GeometrySystem starts geometry actors, moves them every tick and runs
// their color cycle off the world timer manager.
type GeometrySystem struct {
	picker  palette.Picker
	log     *zap.SugaredLogger
	verbose bool
	actors  map[ecs.Entity]*geometryRuntime
}

// NewGeometrySystem registers the EndPlay hook on w. A nil picker uses a
// time-seeded random palette; a nil logger discards output.
func NewGeometrySystem(w *ecs.World, picker palette.Picker, log *zap.SugaredLogger) *GeometrySystem {
	if picker == nil {
		picker = palette.NewRandomPicker(0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &GeometrySystem{
		picker: picker,
		log:    log,
		actors: make(map[ecs.Entity]*geometryRuntime),
	}
	w.OnDestroy(s.endPlay)
	return s
}

// SetVerbose logs each actor's transform when it starts.
func (s *GeometrySystem) SetVerbose(v bool) {
	s.verbose = v
}

// SetPicker swaps the palette used for future color changes.
func (s *GeometrySystem) SetPicker(picker palette.Picker) {
	if picker != nil {
		s.picker = picker
	}
}

// Events returns the listener channels for e, or nil if e is not a live
// geometry actor. Listeners may bind before the actor starts.
func (s *GeometrySystem) Events(w *ecs.World, e ecs.Entity) *GeometryEvents {
	if !ecs.Has(w, e, component.GeometryComponent.Kind()) {
		return nil
	}
	return &s.runtime(e).events
}

// SetGeometryData replaces the actor's configuration. Only allowed before
// the actor starts.
func (s *GeometrySystem) SetGeometryData(w *ecs.World, e ecs.Entity, data component.GeometryData) error {
	g, ok := ecs.Get(w, e, component.GeometryComponent.Kind())
	if !ok {
		return fmt.Errorf("set geometry data on %s: %w", e, ErrNotGeometry)
	}
	if g.Started {
		return fmt.Errorf("set geometry data on %s: %w", e, ErrGeometryStarted)
	}
	g.Data = data
	return nil
}

// TimerHandle returns the color cycle timer of e; invalid once it stopped.
func (s *GeometrySystem) TimerHandle(e ecs.Entity) ecs.TimerHandle {
	rt, ok := s.actors[e]
	if !ok {
		return 0
	}
	return rt.timer
}

func (s *GeometrySystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.GeometryComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, g *component.Geometry, t *component.Transform) {
			if !g.Started {
				s.beginPlay(w, e, g, t)
			}
			s.handleMovement(w, g, t)
		})
}

func (s *GeometrySystem) beginPlay(w *ecs.World, e ecs.Entity, g *component.Geometry, t *component.Transform) {
	g.Started = true
	g.InitialLocation = t.Location()

	if s.verbose {
		s.log.Infow("actor transform",
			"actor", actorName(w, e),
			"location", g.InitialLocation.String(),
			"scale_x", t.ScaleX,
			"scale_y", t.ScaleY,
			"rotation", t.Rotation,
		)
	}

	s.setColor(w, e, g.Data.Color)

	rt := s.runtime(e)
	w.Timers().SetTimerFor(&rt.timer, g.Data.TimerRate, true, func() {
		s.onTimerFired(w, e)
	})
	w.Events().Push(ecs.Event{Type: EventActorStarted, Data: e})
}

func (s *GeometrySystem) handleMovement(w *ecs.World, g *component.Geometry, t *component.Transform) {
	t.SetLocation(g.Data.Evaluate(g.InitialLocation, t.Location(), w.TimeSeconds()))
}

func (s *GeometrySystem) onTimerFired(w *ecs.World, e ecs.Entity) {
	g, ok := ecs.Get(w, e, component.GeometryComponent.Kind())
	if !ok {
		return
	}
	rt := s.runtime(e)

	switch g.Cycle.Fire() {
	case component.CycleColor:
		c := s.picker.Pick(g.Cycle.Count)
		s.log.Infof("TimerCount: %d, Color to set up: %s", g.Cycle.Count, c)
		s.setColor(w, e, c)

		evt := ColorChanged{Entity: e, Color: c, Name: actorName(w, e)}
		w.Events().Push(ecs.Event{Type: EventColorChanged, Data: evt})
		rt.events.OnColorChanged.Broadcast(evt)
	case component.CycleFinish:
		w.Timers().ClearTimer(&rt.timer)
		s.log.Warn("Timer has been stopped!")

		evt := TimerFinished{Entity: e, Name: actorName(w, e)}
		w.Events().Push(ecs.Event{Type: EventTimerFinished, Data: evt})
		rt.events.OnTimerFinished.Broadcast(evt)
	}
}

// setColor is a no-op for actors without a material.
func (s *GeometrySystem) setColor(w *ecs.World, e ecs.Entity, c common.LinearColor) {
	m, ok := ecs.Get(w, e, component.MaterialComponent.Kind())
	if !ok {
		return
	}
	m.SetVectorParameter(component.ColorParameter, c)
}

func (s *GeometrySystem) endPlay(w *ecs.World, e ecs.Entity) {
	rt, tracked := s.actors[e]
	if !tracked && !ecs.Has(w, e, component.GeometryComponent.Kind()) {
		return
	}
	if tracked {
		w.Timers().ClearTimer(&rt.timer)
		rt.events.OnColorChanged.Clear()
		rt.events.OnTimerFinished.Clear()
		delete(s.actors, e)
	}

	name := actorName(w, e)
	s.log.Errorf("Actor is destroyed: %s", name)
	w.Events().Push(ecs.Event{Type: EventActorDestroyed, Data: e})
}

func (s *GeometrySystem) runtime(e ecs.Entity) *geometryRuntime {
	rt, ok := s.actors[e]
	if !ok {
		rt = &geometryRuntime{}
		s.actors[e] = rt
	}
	return rt
}

func actorName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return "Geometry_" + e.String()
}
