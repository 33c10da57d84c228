package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/component"
)

// RenderSystem fills every mesh as a rectangle centered on its transform,
// tinted by its material. Meshes without a material are drawn gray.
type RenderSystem struct {
	ShowNames bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{ShowNames: true}
}

// Update is a no-op; the system only takes part in drawing.
func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	for _, e := range w.Query(component.TransformComponent.Kind(), component.MeshComponent.Kind()) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		m, ok := ecs.Get(w, e, component.MeshComponent.Kind())
		if !ok {
			continue
		}

		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		width := m.Width * sx
		height := m.Height * sy
		x := t.X - width/2
		y := t.Y - height/2

		var fill color.Color = colornames.Gray
		if mat, ok := ecs.Get(w, e, component.MaterialComponent.Kind()); ok {
			fill = mat.Color.ToNRGBA()
		}
		vector.FillRect(screen, float32(x), float32(y), float32(width), float32(height), fill, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, colornames.White, false)

		if r.ShowNames {
			if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
				ebitenutil.DebugPrintAt(screen, n.Value, int(x), int(y+height)+2)
			}
		}
	}
}
