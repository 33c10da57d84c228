package system

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/gsandbox/ecs"
)

func TestDebugMessagesKeys(t *testing.T) {
	d := NewDebugMessages()
	d.Add(NoKey, 1, color.White, "a")
	d.Add(NoKey, 1, color.White, "b")
	d.Add(7, 1, color.White, "keyed")
	d.Add(7, 1, color.White, "keyed again")

	var texts []string
	for _, m := range d.Messages() {
		texts = append(texts, m.Text)
	}
	require.Equal(t, []string{"keyed again", "b", "a"}, texts)

	d.Clear()
	require.Empty(t, d.Messages())
}

func TestDebugMessagesExpire(t *testing.T) {
	w := ecs.NewWorld()
	d := NewDebugMessages()
	w.AddSystem(d)

	d.Add(NoKey, 0.5, nil, "short")
	d.Add(NoKey, 2, color.White, "long")
	d.Add(NoKey, 0, color.White, "never shown")
	require.Len(t, d.Messages(), 2)

	w.Update(0.25)
	w.Update(0.25)
	msgs := d.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "long", msgs[0].Text)
}

func TestDebugMessagesAreCapped(t *testing.T) {
	d := NewDebugMessages()
	for i := 0; i < maxDebugMessages+5; i++ {
		d.Add(NoKey, 1, color.White, "x")
	}
	require.Len(t, d.Messages(), maxDebugMessages)
}
