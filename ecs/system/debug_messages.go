package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/gsandbox/ecs"
)

// NoKey always adds a new on-screen message instead of replacing one.
const NoKey = -1

const maxDebugMessages = 24

type DebugMessage struct {
	Key       int
	Text      string
	Color     color.Color
	Remaining float64
}

// DebugMessages is a short list of on-screen messages, newest first, each
// shown for its own duration of world time.
type DebugMessages struct {
	items []DebugMessage
	face  ebtext.Face
}

func NewDebugMessages() *DebugMessages {
	return &DebugMessages{}
}

// Add shows msg for duration seconds. A key of NoKey always adds a line;
// any other key replaces the line previously added with the same key.
func (d *DebugMessages) Add(key int, duration float64, clr color.Color, msg string) {
	if d == nil || duration <= 0 {
		return
	}
	if clr == nil {
		clr = color.White
	}
	m := DebugMessage{Key: key, Text: msg, Color: clr, Remaining: duration}

	if key >= 0 {
		for i := range d.items {
			if d.items[i].Key == key {
				d.items = append(d.items[:i], d.items[i+1:]...)
				break
			}
		}
	}

	d.items = append([]DebugMessage{m}, d.items...)
	if len(d.items) > maxDebugMessages {
		d.items = d.items[:maxDebugMessages]
	}
}

// Messages returns the visible messages, newest first.
func (d *DebugMessages) Messages() []DebugMessage {
	if d == nil {
		return nil
	}
	out := make([]DebugMessage, len(d.items))
	copy(out, d.items)
	return out
}

func (d *DebugMessages) Clear() {
	d.items = d.items[:0]
}

func (d *DebugMessages) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	dt := w.DeltaSeconds()
	kept := d.items[:0]
	for _, m := range d.items {
		m.Remaining -= dt
		if m.Remaining > 0 {
			kept = append(kept, m)
		}
	}
	d.items = kept
}

func (d *DebugMessages) Draw(_ *ecs.World, screen *ebiten.Image) {
	if d == nil || screen == nil || len(d.items) == 0 {
		return
	}
	if d.face == nil {
		d.face = ebtext.NewGoXFace(basicfont.Face7x13)
	}

	const lineHeight = 16
	for i, m := range d.items {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*lineHeight))
		op.ColorScale.ScaleWithColor(m.Color)
		ebtext.Draw(screen, m.Text, d.face, op)
	}
}
