// Package gamemode assembles the sandbox world: the geometry, hub,
// lifespan, debug message and stats systems around one ECS world.
package gamemode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/gsandbox/ecs"
	"github.com/milk9111/gsandbox/ecs/system"
	"github.com/milk9111/gsandbox/logger"
	"github.com/milk9111/gsandbox/palette"
	"github.com/milk9111/gsandbox/prefabs"
	"github.com/milk9111/gsandbox/stats"
)

// Options configure a GameMode.
type Options struct {
	// Prefab is the hub prefab name; empty means prefabs.HubPrefab.
	Prefab string
	// Palette names a tengo palette script. Empty picks random colors.
	Palette string
	// Seed drives every random choice. Zero seeds from the clock.
	Seed    int64
	Verbose bool
	// Stats receives the session counters; nil keeps them in memory.
	Stats *stats.Store
}

type GameMode struct {
	opts   Options
	random *palette.RandomPicker
	log    *zap.SugaredLogger

	world    *ecs.World
	geometry *system.GeometrySystem
	hub      *system.HubSystem
	messages *system.DebugMessages
	stats    *system.StatsSystem
	render   *system.RenderSystem
}

func New(opts Options) (*GameMode, error) {
	if opts.Prefab == "" {
		opts.Prefab = prefabs.HubPrefab
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	spec, err := prefabs.LoadHubSpec(opts.Prefab)
	if err != nil {
		return nil, fmt.Errorf("gamemode: %w", err)
	}

	// one seeded stream drives both the palette fallback and the hub layouts
	random := palette.NewRandomPicker(opts.Seed)
	picker, err := newPicker(opts, random)
	if err != nil {
		return nil, fmt.Errorf("gamemode: %w", err)
	}

	w := ecs.NewWorld()
	g := &GameMode{
		opts:     opts,
		random:   random,
		log:      logger.Category("LogGameMode"),
		world:    w,
		messages: system.NewDebugMessages(),
		stats:    system.NewStatsSystem(opts.Stats),
		render:   system.NewRenderSystem(),
	}
	g.geometry = system.NewGeometrySystem(w, picker, logger.Category("LogBaseGeometry"))
	g.geometry.SetVerbose(opts.Verbose)
	g.hub = system.NewHubSystem(g.geometry, g.messages, random.Rand(), logger.Category("LogGeometryHub"))
	g.hub.Load(spec)

	w.AddSystem(g.hub)
	w.AddSystem(g.geometry)
	w.AddSystem(system.NewLifespanSystem())
	w.AddSystem(g.render)
	w.AddSystem(g.messages)
	w.AddSystem(g.stats)

	g.log.Infow("game mode ready", "prefab", opts.Prefab, "palette", opts.Palette, "seed", opts.Seed)
	return g, nil
}

func newPicker(opts Options, random *palette.RandomPicker) (palette.Picker, error) {
	if opts.Palette == "" {
		return random, nil
	}
	src, err := prefabs.LoadScript(opts.Palette)
	if err != nil {
		return nil, fmt.Errorf("load palette %s: %w", opts.Palette, err)
	}
	return palette.NewScriptPicker(opts.Palette, src, opts.Seed, random, logger.Category("LogPalette"))
}

func (g *GameMode) World() *ecs.World                { return g.world }
func (g *GameMode) Hub() *system.HubSystem           { return g.hub }
func (g *GameMode) Geometry() *system.GeometrySystem { return g.geometry }
func (g *GameMode) Messages() *system.DebugMessages  { return g.messages }
func (g *GameMode) Stats() *stats.Store              { return g.stats.Store() }

// Observe registers fn for every world event, in the order they happen.
func (g *GameMode) Observe(fn func(ecs.Event)) {
	g.stats.Observe(fn)
}

// Tick advances the world by dt seconds.
func (g *GameMode) Tick(dt float64) {
	g.world.Update(dt)
}

func (g *GameMode) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
}

// Respawn retires every hub actor and spawns the current prefab again.
func (g *GameMode) Respawn() error {
	g.messages.Clear()
	return g.hub.Reload(g.world, nil)
}

// ReloadChanged reacts to edited prefab files: the hub prefab respawns the
// hub, the palette script replaces the picker. Other files are ignored.
func (g *GameMode) ReloadChanged(paths []string) error {
	var errs []error
	for _, p := range paths {
		base := filepath.Base(p)
		switch {
		case base == filepath.Base(g.opts.Prefab):
			spec, err := prefabs.LoadHubSpec(g.opts.Prefab)
			if err != nil {
				errs = append(errs, fmt.Errorf("gamemode: reload %s: %w", base, err))
				continue
			}
			if err := g.hub.Reload(g.world, spec); err != nil {
				errs = append(errs, err)
				continue
			}
			g.log.Infow("hub reloaded", "prefab", g.opts.Prefab)
		case g.opts.Palette != "" && strings.HasSuffix(base, ".tengo") && base == filepath.Base(g.opts.Palette):
			picker, err := newPicker(g.opts, g.random)
			if err != nil {
				errs = append(errs, fmt.Errorf("gamemode: reload %s: %w", base, err))
				continue
			}
			g.geometry.SetPicker(picker)
			g.log.Infow("palette reloaded", "script", g.opts.Palette)
		}
	}
	return errors.Join(errs...)
}

// Close persists the session stats.
func (g *GameMode) Close() error {
	return g.Stats().Save()
}
