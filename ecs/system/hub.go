package system

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/gsandbox/common"
	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
	"github.com/milk9111/gsandbox/ecs/entity"
	"github.com/milk9111/gsandbox/prefabs"
)

const (
	colorMessageSeconds  = 3
	finishMessageSeconds = 5
)

// HubSystem spawns geometry actors from a hub prefab, listens to both of
// their event channels and retires actors whose color cycle finished.
type HubSystem struct {
	geometry *GeometrySystem
	messages *DebugMessages
	rng      *rand.Rand
	log      *zap.SugaredLogger

	spec    *prefabs.HubSpec
	pending bool
}

func NewHubSystem(geometry *GeometrySystem, messages *DebugMessages, rng *rand.Rand, log *zap.SugaredLogger) *HubSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &HubSystem{
		geometry: geometry,
		messages: messages,
		rng:      rng,
		log:      log,
	}
}

// Load queues spec to be spawned on the next update.
func (h *HubSystem) Load(spec *prefabs.HubSpec) {
	h.spec = spec
	h.pending = spec != nil
}

func (h *HubSystem) Spec() *prefabs.HubSpec {
	return h.spec
}

func (h *HubSystem) Update(w *ecs.World) {
	if h == nil || w == nil || !h.pending {
		return
	}
	h.pending = false
	if err := h.spawn(w); err != nil {
		h.log.Errorw("hub spawn failed", "error", err)
	}
}

// Reload destroys every actor the hub owns and spawns spec in their place.
// A nil spec respawns the current one.
func (h *HubSystem) Reload(w *ecs.World, spec *prefabs.HubSpec) error {
	if spec != nil {
		h.spec = spec
	}
	h.pending = false

	for _, e := range h.Spawned(w) {
		ecs.DestroyEntity(w, e)
	}
	return h.spawn(w)
}

// Spawned returns the live actors owned by the hub.
func (h *HubSystem) Spawned(w *ecs.World) []ecs.Entity {
	return w.Query(component.HubOwnedComponent.Kind())
}

func (h *HubSystem) spawn(w *ecs.World) error {
	if h.spec == nil {
		return nil
	}
	var errs []error
	for _, p := range h.spec.Payloads {
		errs = append(errs, h.spawnPayload(w, p))
	}
	for _, g := range h.spec.Grids {
		errs = append(errs, h.spawnGrid(w, g))
	}
	return errors.Join(errs...)
}

func (h *HubSystem) spawnPayload(w *ecs.World, p prefabs.GeometryPayloadSpec) error {
	_, err := h.spawnActor(w, p.Name, entity.GeometryActorSpec{
		Name:          p.Name,
		X:             p.X,
		Y:             p.Y,
		Width:         p.Width,
		Height:        p.Height,
		Data:          p.Data.GeometryData(),
		MaxTimerCount: h.spec.MaxTimer(),
	})
	return err
}

// spawnGrid spawns with default data first and assigns the randomized data
// before the actors start.
func (h *HubSystem) spawnGrid(w *ecs.World, g prefabs.GridSpec) error {
	for i := 0; i < g.Count; i++ {
		e, err := h.spawnActor(w, g.Name, entity.GeometryActorSpec{
			Name:          fmt.Sprintf("%s_%d", g.Name, i),
			X:             g.X + float64(i)*g.Spacing,
			Y:             g.Y,
			Width:         g.Width,
			Height:        g.Height,
			Data:          component.DefaultGeometryData(),
			MaxTimerCount: h.spec.MaxTimer(),
		})
		if err != nil {
			return err
		}

		data := component.DefaultGeometryData()
		data.MoveType = component.MovementType(h.rng.Intn(2))
		data.Color = common.RandomColor(h.rng)
		if g.TimerRate != nil {
			data.TimerRate = *g.TimerRate
		}
		if err := h.geometry.SetGeometryData(w, e, data); err != nil {
			return fmt.Errorf("hub: grid %s: %w", g.Name, err)
		}
	}
	return nil
}

func (h *HubSystem) spawnActor(w *ecs.World, payload string, spec entity.GeometryActorSpec) (ecs.Entity, error) {
	e, err := entity.NewGeometryActor(w, spec)
	if err != nil {
		return 0, fmt.Errorf("hub: %w", err)
	}
	if err := ecs.Add(w, e, component.HubOwnedComponent.Kind(), &component.HubOwned{Payload: payload}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("hub: tag %s: %w", spec.Name, err)
	}

	if events := h.geometry.Events(w, e); events != nil {
		events.OnColorChanged.Add(h.onColorChanged)
		events.OnTimerFinished.Add(func(evt TimerFinished) {
			h.onTimerFinished(w, evt)
		})
	}
	return e, nil
}

func (h *HubSystem) onColorChanged(evt ColorChanged) {
	h.log.Warnf("Actor name: %s Color %s", evt.Name, evt.Color)
	h.messages.Add(NoKey, colorMessageSeconds, evt.Color.ToNRGBA(), fmt.Sprintf("%s color %s", evt.Name, evt.Color))
}

func (h *HubSystem) onTimerFinished(w *ecs.World, evt TimerFinished) {
	h.log.Errorf("Timer finished: %s", evt.Name)
	h.messages.Add(NoKey, finishMessageSeconds, colornames.Red, fmt.Sprintf("%s timer finished", evt.Name))

	g, ok := ecs.Get(w, evt.Entity, component.GeometryComponent.Kind())
	if !ok {
		return
	}
	h.log.Infof("Cast is success, amplitude %f", g.Data.Amplitude)

	lifespan := h.spec.Lifespan()
	if lifespan <= 0 {
		ecs.DestroyEntity(w, evt.Entity)
		return
	}
	if ecs.Has(w, evt.Entity, component.LifespanComponent.Kind()) {
		return
	}
	if err := ecs.Add(w, evt.Entity, component.LifespanComponent.Kind(), &component.Lifespan{Remaining: lifespan}); err != nil {
		h.log.Errorw("retire finished actor failed", "actor", evt.Name, "error", err)
	}
}
