package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimerManagerLooping(t *testing.T) {
	m := NewTimerManager()
	fired := 0
	h := m.SetTimer(1, true, func() { fired++ })
	require.True(t, h.IsValid())
	require.True(t, m.IsTimerActive(h))

	m.Tick(0.5)
	require.Equal(t, 0, fired)
	require.Equal(t, 0.5, m.TimeRemaining(h))

	m.Tick(0.5)
	require.Equal(t, 1, fired)

	m.Tick(2.5)
	require.Equal(t, 3, fired, "one firing per elapsed interval")
	require.Equal(t, 0.5, m.TimeRemaining(h))
}

func TestTimerManagerOneShot(t *testing.T) {
	m := NewTimerManager()
	fired := 0
	h := m.SetTimer(0.25, false, func() { fired++ })

	m.Tick(1)
	require.Equal(t, 1, fired)
	require.False(t, m.IsTimerActive(h))
	require.Zero(t, m.Len())
	require.Equal(t, -1.0, m.TimeRemaining(h))
}

func TestTimerManagerClearInsideCallback(t *testing.T) {
	m := NewTimerManager()
	fired := 0
	var h TimerHandle
	h = m.SetTimer(0.5, true, func() {
		fired++
		if fired == 2 {
			m.ClearTimer(&h)
		}
	})

	m.Tick(5)
	require.Equal(t, 2, fired)
	require.False(t, h.IsValid())
	require.Zero(t, m.Len())

	m.Tick(5)
	require.Equal(t, 2, fired)
}

func TestTimerManagerInvalidRate(t *testing.T) {
	m := NewTimerManager()
	require.False(t, m.SetTimer(0, true, func() {}).IsValid())
	require.False(t, m.SetTimer(-1, true, func() {}).IsValid())
	require.False(t, m.SetTimer(1, true, nil).IsValid())
	require.Zero(t, m.Len())
}

func TestTimerManagerSetTimerForReplaces(t *testing.T) {
	m := NewTimerManager()
	var h TimerHandle
	first, second := 0, 0

	m.SetTimerFor(&h, 1, true, func() { first++ })
	old := h
	m.SetTimerFor(&h, 1, true, func() { second++ })

	require.NotEqual(t, old, h)
	require.False(t, m.IsTimerActive(old))

	m.Tick(1)
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
}

func TestTimerManagerAddedDuringTickWaits(t *testing.T) {
	m := NewTimerManager()
	inner := 0
	m.SetTimer(0.5, false, func() {
		m.SetTimer(0.5, false, func() { inner++ })
	})

	m.Tick(1)
	require.Equal(t, 0, inner)
	m.Tick(0.5)
	require.Equal(t, 1, inner)
}

func TestTimerManagerClearIsIdempotent(t *testing.T) {
	m := NewTimerManager()
	h := m.SetTimer(1, true, func() {})
	m.ClearTimer(&h)
	m.ClearTimer(&h)
	m.ClearTimer(nil)
	require.False(t, h.IsValid())
}
