package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"multicell/internal/network"
)

// Preset is a named, timestamped, immutable snapshot persisted outside
// process memory. Created on explicit save, removed on explicit delete.
type Preset struct {
	Name    string               `json:"name"`
	Created time.Time            `json:"created"`
	Cells   []*network.Cell      `json:"cells"`
	Config  *network.Config      `json:"config"`
	Colors  *network.ColorScheme `json:"colors"`
}

func defaultPresetsDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "multicell", "presets")
}

// SetPresetsDir overrides where presets are stored (used by tests and the
// headless exporter).
func (s *Store) SetPresetsDir(dir string) {
	s.mu.Lock()
	s.presetsDir = dir
	s.mu.Unlock()
}

// presetPath maps a preset name to its file, flattening characters that
// would escape the presets directory.
func (s *Store) presetPath(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)
	return filepath.Join(s.presetsDir, safe+".json")
}

// SavePreset persists the current state under a name. An existing preset
// with the same name is overwritten.
func (s *Store) SavePreset(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("preset name is empty")
	}

	s.mu.RLock()
	preset := Preset{
		Name:    name,
		Created: time.Now(),
		Cells:   network.CloneCells(s.cells),
		Config:  s.config.Clone(),
		Colors:  s.colors.Clone(),
	}
	dir := s.presetsDir
	s.mu.RUnlock()

	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(s.presetPath(name), data, 0o644); err != nil {
		return err
	}

	s.emit(EventPresetsChanged, nil)
	return nil
}

// LoadPreset restores a saved preset into the live state.
func (s *Store) LoadPreset(name string) error {
	data, err := os.ReadFile(s.presetPath(name))
	if err != nil {
		return err
	}

	var preset Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	if preset.Config == nil || preset.Colors == nil {
		return fmt.Errorf("preset %q: incomplete snapshot", name)
	}
	preset.Config.Normalize()
	preset.Colors.Normalize()

	s.mu.Lock()
	s.saveToHistory()
	s.cells = preset.Cells
	s.config = preset.Config
	s.colors = preset.Colors
	s.config.CellCount = len(s.cells)
	s.selection = nil
	s.mu.Unlock()

	s.emitAll()
	s.emit(EventSelectionChanged, nil)
	return nil
}

// DeletePreset removes a saved preset.
func (s *Store) DeletePreset(name string) error {
	if err := os.Remove(s.presetPath(name)); err != nil {
		return err
	}
	s.emit(EventPresetsChanged, nil)
	return nil
}

// ListPresets returns the names of all saved presets, sorted.
func (s *Store) ListPresets() []string {
	s.mu.RLock()
	dir := s.presetsDir
	s.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
