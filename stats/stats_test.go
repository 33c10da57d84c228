package stats

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/require"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	manager, err := gdata.Open(gdata.Config{AppName: "gsandbox_test"})
	require.NoError(t, err)
	return manager
}

func TestStoreWithoutManagerIsMemoryOnly(t *testing.T) {
	s := NewStore(nil, nil)
	s.AddSpawned()
	s.AddColorChange()
	s.AddColorChange()

	require.NoError(t, s.Load())
	require.NoError(t, s.Save())
	require.Equal(t, Totals{Sessions: 1, Spawned: 1, ColorChanges: 2}, s.Totals())
}

func TestStorePersistsAcrossSessions(t *testing.T) {
	manager := openTestManager(t)

	first := NewStore(manager, nil)
	require.NoError(t, first.Load())
	first.AddSpawned()
	first.AddCycleFinished()
	first.AddDestroyed()
	require.NoError(t, first.Save())
	require.Equal(t, Totals{}, first.Session())

	second := NewStore(manager, nil)
	require.NoError(t, second.Load())
	second.AddColorChange()

	got := second.Totals()
	require.Equal(t, 2, got.Sessions)
	require.Equal(t, 1, got.Spawned)
	require.Equal(t, 1, got.ColorChanges)
	require.Equal(t, 1, got.CyclesFinished)
	require.Equal(t, 1, got.Destroyed)
}
