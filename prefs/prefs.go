// Package prefs persists user preferences and favorites between runs.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences is the saved view state. Zero values mean "use the
// defaults".
type Preferences struct {
	Region        string   `json:"region,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
	SortAscending *bool    `json:"sort_ascending,omitempty"`
	ViewMode      string   `json:"view_mode,omitempty"`
	GridDensity   string   `json:"grid_density,omitempty"`
	Theme         string   `json:"theme,omitempty"`
	GroupByType   bool     `json:"group_by_type,omitempty"`
	TypeFilter    []string `json:"type_filter,omitempty"`
	LastSearch    string   `json:"last_search,omitempty"`
}

// Manager reads and writes the preferences file.
type Manager struct {
	path string
}

// NewManager stores preferences at path, creating parent directories
// on save.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load returns the saved preferences, or an empty set when the file is
// missing or unreadable.
func (m *Manager) Load() Preferences {
	var p Preferences
	data, err := os.ReadFile(m.path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}
	}
	return p
}

// Save writes the preferences atomically.
func (m *Manager) Save(p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
