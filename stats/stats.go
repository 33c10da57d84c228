// Package stats keeps running counters of what the sandbox did, persisted
// across runs with gdata.
package stats

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "gsandbox"

	statsObject    = "stats"
	totalsProperty = "totals"
)

// Totals are the counters kept per session and across sessions.
type Totals struct {
	Sessions       int `yaml:"sessions"`
	Spawned        int `yaml:"spawned"`
	ColorChanges   int `yaml:"color_changes"`
	CyclesFinished int `yaml:"cycles_finished"`
	Destroyed      int `yaml:"destroyed"`
}

func (t Totals) add(o Totals) Totals {
	return Totals{
		Sessions:       t.Sessions + o.Sessions,
		Spawned:        t.Spawned + o.Spawned,
		ColorChanges:   t.ColorChanges + o.ColorChanges,
		CyclesFinished: t.CyclesFinished + o.CyclesFinished,
		Destroyed:      t.Destroyed + o.Destroyed,
	}
}

// Store accumulates session counters on top of the persisted totals.
// manager may be nil, in which case nothing is persisted.
type Store struct {
	manager *gdata.Manager
	log     *zap.SugaredLogger
	saved   Totals
	session Totals
}

// Open creates a gdata manager for AppName and loads the saved totals.
func Open(appName string, log *zap.SugaredLogger) (*Store, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil, log), fmt.Errorf("stats: open %q: %w", appName, err)
	}
	s := NewStore(manager, log)
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

func NewStore(manager *gdata.Manager, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{manager: manager, log: log, session: Totals{Sessions: 1}}
}

// Load replaces the saved totals with what is on disk.
func (s *Store) Load() error {
	if s.manager == nil {
		return nil
	}
	if !s.manager.ObjectPropExists(statsObject, totalsProperty) {
		s.saved = Totals{}
		return nil
	}
	data, err := s.manager.LoadObjectProp(statsObject, totalsProperty)
	if err != nil {
		return fmt.Errorf("stats: load totals: %w", err)
	}
	var loaded Totals
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("stats: decode totals: %w", err)
	}
	s.saved = loaded
	return nil
}

// Save writes saved+session and starts a fresh session delta.
func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	all := s.Totals()
	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("stats: encode totals: %w", err)
	}
	if err := s.manager.SaveObjectProp(statsObject, totalsProperty, data); err != nil {
		return fmt.Errorf("stats: save totals: %w", err)
	}
	s.saved = all
	s.session = Totals{}
	s.log.Debugw("stats saved", "totals", all)
	return nil
}

// Totals returns the persisted totals plus the unsaved session counters.
func (s *Store) Totals() Totals {
	return s.saved.add(s.session)
}

func (s *Store) Session() Totals {
	return s.session
}

func (s *Store) AddSpawned()       { s.session.Spawned++ }
func (s *Store) AddColorChange()   { s.session.ColorChanges++ }
func (s *Store) AddCycleFinished() { s.session.CyclesFinished++ }
func (s *Store) AddDestroyed()     { s.session.Destroyed++ }
