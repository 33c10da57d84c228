package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/gsandbox/common"
	"github.com/milk9111/gsandbox/ecs/component"
)

const (
	HubPrefab = "geometry_hub.yaml"

	defaultFinishedLifespan = 2.0
	defaultMeshSize         = 50.0
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// HubSpec describes what a geometry hub spawns and how it treats finished
// actors.
type HubSpec struct {
	Name             string                `yaml:"name"`
	FinishedLifespan *float64              `yaml:"finished_lifespan"`
	MaxTimerCount    *int                  `yaml:"max_timer_count"`
	Payloads         []GeometryPayloadSpec `yaml:"payloads"`
	Grids            []GridSpec            `yaml:"grids"`
}

// GeometryPayloadSpec places one actor with explicit data.
type GeometryPayloadSpec struct {
	Name   string           `yaml:"name"`
	X      float64          `yaml:"x"`
	Y      float64          `yaml:"y"`
	Width  float64          `yaml:"width"`
	Height float64          `yaml:"height"`
	Data   GeometryDataSpec `yaml:"data"`
}

// GridSpec lays out Count actors in a row, each with a random movement type
// and a random base color.
type GridSpec struct {
	Name      string   `yaml:"name"`
	Count     int      `yaml:"count"`
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	Spacing   float64  `yaml:"spacing"`
	Width     float64  `yaml:"width"`
	Height    float64  `yaml:"height"`
	TimerRate *float64 `yaml:"timer_rate"`
}

// GeometryDataSpec mirrors component.GeometryData; unset fields keep the
// component defaults.
type GeometryDataSpec struct {
	MoveType  component.MovementType `yaml:"move_type"`
	Amplitude *float64               `yaml:"amplitude"`
	Frequency *float64               `yaml:"frequency"`
	Color     *YAMLColor             `yaml:"color"`
	TimerRate *float64               `yaml:"timer_rate"`
}

func (s GeometryDataSpec) GeometryData() component.GeometryData {
	d := component.DefaultGeometryData()
	d.MoveType = s.MoveType
	if s.Amplitude != nil {
		d.Amplitude = *s.Amplitude
	}
	if s.Frequency != nil {
		d.Frequency = *s.Frequency
	}
	if s.Color != nil {
		d.Color = s.Color.LinearColor
	}
	if s.TimerRate != nil {
		d.TimerRate = *s.TimerRate
	}
	return d
}

// MaxTimer returns the configured color count, or the component default.
func (s *HubSpec) MaxTimer() int {
	if s == nil || s.MaxTimerCount == nil {
		return component.DefaultMaxTimerCount
	}
	return *s.MaxTimerCount
}

// Lifespan is how long a finished actor lingers. An explicit 0 retires it
// at once; an unset value uses the default.
func (s *HubSpec) Lifespan() float64 {
	if s == nil || s.FinishedLifespan == nil {
		return defaultFinishedLifespan
	}
	return *s.FinishedLifespan
}

func LoadHubSpec(filename string) (*HubSpec, error) {
	spec, err := LoadSpec[HubSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.finish(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func ParseHubSpec(data []byte) (*HubSpec, error) {
	var spec HubSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal hub: %w", err)
	}
	if err := spec.finish(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *HubSpec) finish() error {
	s.applyDefaults()
	return s.Validate()
}

func (s *HubSpec) applyDefaults() {
	for i := range s.Payloads {
		p := &s.Payloads[i]
		if p.Width == 0 {
			p.Width = defaultMeshSize
		}
		if p.Height == 0 {
			p.Height = defaultMeshSize
		}
	}
	for i := range s.Grids {
		g := &s.Grids[i]
		if g.Width == 0 {
			g.Width = defaultMeshSize
		}
		if g.Height == 0 {
			g.Height = defaultMeshSize
		}
		if g.Spacing == 0 {
			g.Spacing = g.Width * 2
		}
	}
}

// Validate rejects specs the hub cannot spawn.
func (s *HubSpec) Validate() error {
	var errs []error
	if s.FinishedLifespan != nil && *s.FinishedLifespan < 0 {
		errs = append(errs, fmt.Errorf("finished_lifespan must be >= 0, got %v", *s.FinishedLifespan))
	}
	if s.MaxTimerCount != nil && *s.MaxTimerCount < 0 {
		errs = append(errs, fmt.Errorf("max_timer_count must be >= 0, got %d", *s.MaxTimerCount))
	}

	seen := make(map[string]bool)
	checkName := func(kind, name string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s without a name", kind))
			return
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("duplicate name %q", name))
		}
		seen[name] = true
	}

	for _, p := range s.Payloads {
		checkName("payload", p.Name)
		if p.Width < 0 || p.Height < 0 {
			errs = append(errs, fmt.Errorf("payload %q: negative size", p.Name))
		}
	}
	for _, g := range s.Grids {
		checkName("grid", g.Name)
		if g.Count < 0 {
			errs = append(errs, fmt.Errorf("grid %q: count must be >= 0", g.Name))
		}
		if g.Width < 0 || g.Height < 0 {
			errs = append(errs, fmt.Errorf("grid %q: negative size", g.Name))
		}
	}
	return errors.Join(errs...)
}

// YAMLColor accepts "#RRGGBB", "#RRGGBBAA" or a color name.
type YAMLColor struct {
	common.LinearColor
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := common.ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.LinearColor = parsed
	return nil
}
