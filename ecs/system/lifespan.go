package system

import (
	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
)

// LifespanSystem counts Lifespan components down by world delta time and
// destroys entities whose lifespan ran out.
type LifespanSystem struct{}

func NewLifespanSystem() *LifespanSystem {
	return &LifespanSystem{}
}

func (s *LifespanSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaSeconds()
	ecs.ForEach(w, component.LifespanComponent.Kind(), func(e ecs.Entity, l *component.Lifespan) {
		l.Remaining -= dt
		if l.Remaining > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
