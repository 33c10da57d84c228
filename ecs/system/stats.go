package system

import (
	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/stats"
)

// StatsSystem drains the world event queue into the stats store. Observers
// see every drained event in order, after it was counted.
type StatsSystem struct {
	store     *stats.Store
	observers []func(ecs.Event)
}

func NewStatsSystem(store *stats.Store) *StatsSystem {
	if store == nil {
		store = stats.NewStore(nil, nil)
	}
	return &StatsSystem{store: store}
}

func (s *StatsSystem) Store() *stats.Store {
	return s.store
}

// Observe registers fn for every event the system drains.
func (s *StatsSystem) Observe(fn func(ecs.Event)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

func (s *StatsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case EventActorStarted:
			s.store.AddSpawned()
		case EventColorChanged:
			s.store.AddColorChange()
		case EventTimerFinished:
			s.store.AddCycleFinished()
		case EventActorDestroyed:
			s.store.AddDestroyed()
		}
		for _, fn := range s.observers {
			fn(evt)
		}
	}
}
