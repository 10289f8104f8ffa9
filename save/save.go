// Package save persists session records across runs. The gate layer
// itself never persists; only the playground's tallies do.
package save

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	recordsObject   = "records"
	recordsProperty = "playground"
)

// Records are the cross-session tallies shown on the HUD.
type Records struct {
	BestScore     int `yaml:"bestScore"`
	TotalSpawned  int `yaml:"totalSpawned"`
	TotalContacts int `yaml:"totalContacts"`
	Sessions      int `yaml:"sessions"`
}

// Manager loads and stores Records through gdata. A nil gdata manager
// degrades to in-memory records without erroring.
type Manager struct {
	m       *gdata.Manager
	records Records
}

// Open creates a Manager under the given app name. Storage failures
// degrade to memory-only operation.
func Open(appName string) *Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("save: storage unavailable, records won't persist: %v", err)
		m = nil
	}
	return NewManager(m)
}

// NewManager wraps an existing gdata manager (nil for memory-only).
func NewManager(m *gdata.Manager) *Manager {
	sm := &Manager{m: m}
	if err := sm.Load(); err != nil {
		log.Printf("save: failed to load records: %v (starting fresh)", err)
	}
	sm.records.Sessions++
	return sm
}

// Records returns the current tallies.
func (sm *Manager) Records() Records {
	if sm == nil {
		return Records{}
	}
	return sm.records
}

// RecordScore folds a finished session's score into the tallies.
func (sm *Manager) RecordScore(score int) {
	if sm == nil {
		return
	}
	if score > sm.records.BestScore {
		sm.records.BestScore = score
	}
}

// CountSpawn bumps the lifetime spawn tally.
func (sm *Manager) CountSpawn() {
	if sm != nil {
		sm.records.TotalSpawned++
	}
}

// CountContact bumps the lifetime forwarded-contact tally.
func (sm *Manager) CountContact() {
	if sm != nil {
		sm.records.TotalContacts++
	}
}

// Load reads records from storage. Missing storage or a missing file
// leaves the zero records in place.
func (sm *Manager) Load() error {
	if sm == nil || sm.m == nil {
		return nil
	}
	if !sm.m.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}
	data, err := sm.m.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("save: load records: %w", err)
	}
	var r Records
	if err := yaml.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("save: unmarshal records: %w", err)
	}
	sm.records = r
	return nil
}

// Save writes records to storage. Nil storage is a silent no-op.
func (sm *Manager) Save() error {
	if sm == nil || sm.m == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.records)
	if err != nil {
		return fmt.Errorf("save: marshal records: %w", err)
	}
	if err := sm.m.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("save: store records: %w", err)
	}
	return nil
}
