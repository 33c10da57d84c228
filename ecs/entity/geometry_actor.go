package entity

import (
	"fmt"

	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
)

// GeometryActorSpec places one geometry actor in the world.
type GeometryActorSpec struct {
	Name          string
	X, Y          float64
	Width, Height float64
	Data          component.GeometryData
	MaxTimerCount int
	// NoMaterial spawns the actor without a color surface.
	NoMaterial bool
}

func NewGeometryActor(w *ecs.World, spec GeometryActorSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := addGeometryActor(w, e, spec); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("geometry actor %q: %w", spec.Name, err)
	}
	return e, nil
}

func addGeometryActor(w *ecs.World, e ecs.Entity, spec GeometryActorSpec) error {
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			return fmt.Errorf("add name: %w", err)
		}
	}

	tr := &component.Transform{X: spec.X, Y: spec.Y, ScaleX: 1, ScaleY: 1}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = 50
	}
	if height <= 0 {
		height = 50
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{Width: width, Height: height}); err != nil {
		return fmt.Errorf("add mesh: %w", err)
	}

	if !spec.NoMaterial {
		mat := &component.Material{Parameter: component.ColorParameter, Color: spec.Data.Color}
		if err := ecs.Add(w, e, component.MaterialComponent.Kind(), mat); err != nil {
			return fmt.Errorf("add material: %w", err)
		}
	}

	if err := ecs.Add(w, e, component.GeometryComponent.Kind(), component.NewGeometry(spec.Data, spec.MaxTimerCount)); err != nil {
		return fmt.Errorf("add geometry: %w", err)
	}
	return nil
}
