package app

import (
	"encoding/base64"
	"encoding/json"
	"log"

	"multicell/internal/network"
)

// shareState is the triple carried in a shareable URL parameter.
type shareState struct {
	Cells  []*network.Cell      `json:"cells"`
	Config *network.Config      `json:"config"`
	Colors *network.ColorScheme `json:"colors"`
}

// EncodeShare packs the current state into a single URL-safe query
// parameter value: JSON, then base64.
func (s *Store) EncodeShare() (string, error) {
	s.mu.RLock()
	state := shareState{
		Cells:  network.CloneCells(s.cells),
		Config: s.config.Clone(),
		Colors: s.colors.Clone(),
	}
	s.mu.RUnlock()

	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// ImportShare applies a shared-state parameter. Malformed payloads yield no
// state change and false, so callers treat absence and failure identically.
func (s *Store) ImportShare(encoded string) bool {
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		// Tolerate standard-alphabet payloads from older share links.
		data, err = base64.StdEncoding.DecodeString(encoded)
	}
	if err != nil {
		log.Printf("share: undecodable payload: %v", err)
		return false
	}

	var state shareState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("share: malformed payload: %v", err)
		return false
	}
	if state.Cells == nil || state.Config == nil || state.Colors == nil {
		log.Printf("share: incomplete payload")
		return false
	}
	state.Config.Normalize()
	state.Colors.Normalize()

	s.mu.Lock()
	s.saveToHistory()
	s.cells = state.Cells
	s.config = state.Config
	s.colors = state.Colors
	s.config.CellCount = len(s.cells)
	s.selection = nil
	s.mu.Unlock()

	s.emitAll()
	s.emit(EventSelectionChanged, nil)
	return true
}
