package system

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/gsandbox/common"
	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
	"github.com/milk9111/gsandbox/ecs/entity"
)

var red = common.LinearColor{R: 1, A: 1}

type constPicker common.LinearColor

func (c constPicker) Pick(int) common.LinearColor { return common.LinearColor(c) }

func newGeometryWorld(t *testing.T) (*ecs.World, *GeometrySystem, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	w := ecs.NewWorld()
	geo := NewGeometrySystem(w, constPicker(red), zap.New(core).Sugar())
	w.AddSystem(geo)
	return w, geo, logs
}

func spawnActor(t *testing.T, w *ecs.World, spec entity.GeometryActorSpec) ecs.Entity {
	t.Helper()
	e, err := entity.NewGeometryActor(w, spec)
	require.NoError(t, err)
	return e
}

// step advances the world by total seconds in quarter-second frames.
func step(w *ecs.World, total float64) {
	for elapsed := 0.0; elapsed < total; elapsed += 0.25 {
		w.Update(0.25)
	}
}

func TestGeometrySinStartsAtInitialHeight(t *testing.T) {
	w, _, _ := newGeometryWorld(t)
	data := component.DefaultGeometryData()
	data.MoveType = component.MovementSin
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "sin", X: 100, Y: 200, Data: data, MaxTimerCount: 5})

	w.Update(0)
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	require.InDelta(t, 200, tr.Y, 1e-9)
	require.Equal(t, 100.0, tr.X)

	w.Update(0.25)
	require.InDelta(t, 200+50*math.Sin(2*0.25), tr.Y, 1e-9)
	require.Equal(t, 100.0, tr.X)
}

func TestGeometryStaticStaysPut(t *testing.T) {
	w, _, _ := newGeometryWorld(t)
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "static", X: 10, Y: 20, Data: component.DefaultGeometryData(), MaxTimerCount: 5})

	for i := 0; i < 20; i++ {
		w.Update(0.1)
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		require.Equal(t, 10.0, tr.X)
		require.Equal(t, 20.0, tr.Y)
	}
}

func TestGeometryColorCycleIsBounded(t *testing.T) {
	w, geo, logs := newGeometryWorld(t)
	data := component.DefaultGeometryData()
	data.TimerRate = 1
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "cycler", Data: data, MaxTimerCount: 3})

	var colors []ColorChanged
	var finished []TimerFinished
	events := geo.Events(w, e)
	require.NotNil(t, events)
	events.OnColorChanged.Add(func(evt ColorChanged) { colors = append(colors, evt) })
	events.OnTimerFinished.Add(func(evt TimerFinished) {
		require.Len(t, colors, 3, "finish comes after every color")
		finished = append(finished, evt)
	})

	w.Update(0)
	require.True(t, w.Timers().IsTimerActive(geo.TimerHandle(e)))

	step(w, 10)

	require.Len(t, colors, 3)
	require.Len(t, finished, 1)
	for _, c := range colors {
		require.Equal(t, "cycler", c.Name)
		require.Equal(t, red, c.Color)
		require.Equal(t, e, c.Entity)
	}
	require.Equal(t, e, finished[0].Entity)
	require.False(t, geo.TimerHandle(e).IsValid())

	g, _ := ecs.Get(w, e, component.GeometryComponent.Kind())
	require.Equal(t, 3, g.Cycle.Count)
	require.True(t, g.Cycle.Stopped)

	mat, _ := ecs.Get(w, e, component.MaterialComponent.Kind())
	require.Equal(t, red, mat.Color)

	require.Equal(t, 1, logs.FilterMessage("TimerCount: 1, Color to set up: "+red.String()).Len())
	require.Equal(t, 1, logs.FilterMessage("Timer has been stopped!").Len())
}

func TestGeometryAppliesInitialColor(t *testing.T) {
	w, _, _ := newGeometryWorld(t)
	data := component.DefaultGeometryData()
	data.Color = common.White
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "white", Data: data, MaxTimerCount: 5})

	mat, _ := ecs.Get(w, e, component.MaterialComponent.Kind())
	mat.Color = common.Black

	w.Update(0)
	require.Equal(t, common.White, mat.Color)
}

func TestGeometryWithoutMaterialStillBroadcasts(t *testing.T) {
	w, geo, _ := newGeometryWorld(t)
	data := component.DefaultGeometryData()
	data.TimerRate = 0.5
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "bare", Data: data, MaxTimerCount: 2, NoMaterial: true})

	colors, finished := 0, 0
	events := geo.Events(w, e)
	events.OnColorChanged.Add(func(ColorChanged) { colors++ })
	events.OnTimerFinished.Add(func(TimerFinished) { finished++ })

	w.Update(0)
	step(w, 5)

	require.Equal(t, 2, colors)
	require.Equal(t, 1, finished)
	require.False(t, ecs.Has(w, e, component.MaterialComponent.Kind()))
}

func TestGeometryZeroMaxFinishesOnFirstFiring(t *testing.T) {
	w, geo, _ := newGeometryWorld(t)
	data := component.DefaultGeometryData()
	data.TimerRate = 1
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "zero", Data: data, MaxTimerCount: 0})

	colors, finished := 0, 0
	events := geo.Events(w, e)
	events.OnColorChanged.Add(func(ColorChanged) { colors++ })
	events.OnTimerFinished.Add(func(TimerFinished) { finished++ })

	w.Update(0)
	step(w, 3)
	require.Equal(t, 0, colors)
	require.Equal(t, 1, finished)
}

func TestSetGeometryDataFrozenAfterStart(t *testing.T) {
	w, geo, _ := newGeometryWorld(t)
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "frozen", Data: component.DefaultGeometryData(), MaxTimerCount: 5})

	data := component.DefaultGeometryData()
	data.Amplitude = 10
	require.NoError(t, geo.SetGeometryData(w, e, data))

	w.Update(0)
	g, _ := ecs.Get(w, e, component.GeometryComponent.Kind())
	require.Equal(t, 10.0, g.Data.Amplitude)

	data.Amplitude = 99
	err := geo.SetGeometryData(w, e, data)
	require.True(t, errors.Is(err, ErrGeometryStarted))
	require.Equal(t, 10.0, g.Data.Amplitude)

	plain := ecs.CreateEntity(w)
	require.ErrorIs(t, geo.SetGeometryData(w, plain, data), ErrNotGeometry)
}

func TestGeometryEndPlayClearsTimerAndDelegates(t *testing.T) {
	w, geo, logs := newGeometryWorld(t)
	data := component.DefaultGeometryData()
	data.TimerRate = 1
	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "doomed", Data: data, MaxTimerCount: 5})

	colors := 0
	geo.Events(w, e).OnColorChanged.Add(func(ColorChanged) { colors++ })

	w.Update(0)
	handle := geo.TimerHandle(e)
	require.True(t, w.Timers().IsTimerActive(handle))

	require.True(t, ecs.DestroyEntity(w, e))
	require.False(t, w.Timers().IsTimerActive(handle))
	require.Nil(t, geo.Events(w, e))
	require.Equal(t, 1, logs.FilterMessage("Actor is destroyed: doomed").Len())

	step(w, 3)
	require.Zero(t, colors)
}

func TestGeometryPushesWorldEvents(t *testing.T) {
	w, _, _ := newGeometryWorld(t)
	data := component.DefaultGeometryData()
	data.TimerRate = 1

	var seen []ecs.EventType
	w.AddSystem(systemFunc(func(w *ecs.World) {
		for _, evt := range w.Events().Drain() {
			seen = append(seen, evt.Type)
		}
	}))

	e := spawnActor(t, w, entity.GeometryActorSpec{Name: "events", Data: data, MaxTimerCount: 1})
	w.Update(0)
	step(w, 2)
	ecs.DestroyEntity(w, e)
	w.Update(0.25)

	require.Equal(t, []ecs.EventType{
		EventActorStarted,
		EventColorChanged,
		EventTimerFinished,
		EventActorDestroyed,
	}, seen)
}

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }
