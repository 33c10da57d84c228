package ecs

import "github.com/milk9111/gsandbox/ecs/component"

// DestroyHook runs while an entity is being destroyed, before its components
// are released.
type DestroyHook func(w *World, e Entity)

// World owns entities, components, system order, time, and timers.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue
	clock     Clock
	timers    *TimerManager

	destroyHooks []DestroyHook
	destroying   map[Entity]struct{}
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:     make(map[component.ComponentID]*SparseSet),
		scheduler:  NewScheduler(),
		timers:     NewTimerManager(),
		destroying: make(map[Entity]struct{}),
	}
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity runs the destroy hooks, drops the entity's components and
// retires its handle. Destroying a dead entity, or one already being
// destroyed, returns false.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	if _, busy := w.destroying[e]; busy {
		return false
	}
	w.destroying[e] = struct{}{}
	defer delete(w.destroying, e)

	for _, hook := range w.destroyHooks {
		hook(w, e)
	}
	for _, set := range w.stores {
		set.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// OnDestroy registers a hook that runs for every destroyed entity.
func (w *World) OnDestroy(hook DestroyHook) {
	if w == nil || hook == nil {
		return
	}
	w.destroyHooks = append(w.destroyHooks, hook)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Systems returns the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update advances the clock by dt, fires due timers, runs all systems once
// and flushes the event queue.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	delta := w.clock.Advance(dt)
	w.timers.Tick(delta)
	w.scheduler.Update(w)
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Timers returns the world timer manager.
func (w *World) Timers() *TimerManager {
	if w == nil {
		return nil
	}
	return w.timers
}

// TimeSeconds is the world time accumulated by Update.
func (w *World) TimeSeconds() float64 {
	if w == nil {
		return 0
	}
	return w.clock.TimeSeconds()
}

// DeltaSeconds is the delta applied by the last Update.
func (w *World) DeltaSeconds() float64 {
	if w == nil {
		return 0
	}
	return w.clock.DeltaSeconds()
}

// Frame is the number of Update calls so far.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.clock.Frame()
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	set, ok := w.stores[id]
	if !ok && create {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}
