package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
)

func TestLifespanDestroysAfterWorldTime(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewLifespanSystem())

	short := ecs.CreateEntity(w)
	long := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, short, component.LifespanComponent.Kind(), &component.Lifespan{Remaining: 0.5}))
	require.NoError(t, ecs.Add(w, long, component.LifespanComponent.Kind(), &component.Lifespan{Remaining: 2}))

	w.Update(0.25)
	require.True(t, w.IsAlive(short))

	w.Update(0.25)
	require.False(t, w.IsAlive(short))
	require.True(t, w.IsAlive(long))

	l, ok := ecs.Get(w, long, component.LifespanComponent.Kind())
	require.True(t, ok)
	require.InDelta(t, 1.5, l.Remaining, 1e-9)
}
