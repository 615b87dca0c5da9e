package app

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"multicell/internal/network"
	"multicell/pkg/geometry"
)

// SnapshotVersion tags exported snapshot documents.
const SnapshotVersion = "1.0.0"

// Snapshot is the persisted JSON form of the editable state triple.
type Snapshot struct {
	Cells   []*network.Cell      `json:"cells"`
	Config  *network.Config      `json:"config"`
	Colors  *network.ColorScheme `json:"colors"`
	Version string               `json:"version"`
}

// ExportJSON serializes the current state in the persisted snapshot format.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.RLock()
	snap := Snapshot{
		Cells:   network.CloneCells(s.cells),
		Config:  s.config.Clone(),
		Colors:  s.colors.Clone(),
		Version: SnapshotVersion,
	}
	s.mu.RUnlock()

	return json.MarshalIndent(snap, "", "  ")
}

// ImportJSON replaces the editable state from a snapshot document. The
// top-level cells, config, and colors keys must all be present; otherwise
// the import is rejected and no state changes. Unspecified config/color
// fields fall back to built-in defaults.
func (s *Store) ImportJSON(data []byte) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("import: malformed JSON: %v", err)
		return false
	}
	for _, key := range []string{"cells", "config", "colors"} {
		if _, ok := raw[key]; !ok {
			log.Printf("import: missing %q key", key)
			return false
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("import: %v", err)
		return false
	}
	if snap.Config == nil || snap.Colors == nil {
		log.Printf("import: null config or colors")
		return false
	}
	snap.Config.Normalize()
	snap.Colors.Normalize()

	s.mu.Lock()
	s.saveToHistory()
	s.cells = snap.Cells
	s.config = snap.Config
	s.colors = snap.Colors
	s.config.CellCount = len(s.cells)
	s.selection = nil
	s.mu.Unlock()

	s.emitAll()
	s.emit(EventSelectionChanged, nil)
	return true
}

// ImportDelimited replaces the cell collection from delimited text. The
// header row must contain x and y columns (case-insensitive); a label
// column is honored when present. Rows with non-numeric coordinates are
// skipped. Coordinates are unit-square values scaled into network space.
// Zero valid rows reject the import with no state change.
func (s *Store) ImportDelimited(data []byte) bool {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		log.Printf("import: unreadable delimited text")
		return false
	}

	xCol, yCol, labelCol := -1, -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "x":
			xCol = i
		case "y":
			yCol = i
		case "label":
			labelCol = i
		}
	}
	if xCol < 0 || yCol < 0 {
		log.Printf("import: header missing x/y columns")
		return false
	}

	type row struct {
		pos   geometry.Point
		label string
	}
	var rows []row
	for _, rec := range records[1:] {
		if xCol >= len(rec) || yCol >= len(rec) {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[xCol]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[yCol]), 64)
		if errX != nil || errY != nil {
			continue
		}
		r := row{pos: geometry.Point{X: x * network.CanvasScale, Y: y * network.CanvasScale}}
		if labelCol >= 0 && labelCol < len(rec) {
			r.label = strings.TrimSpace(rec[labelCol])
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		log.Printf("import: no valid data rows")
		return false
	}

	s.mu.Lock()
	s.saveToHistory()
	s.cells = make([]*network.Cell, len(rows))
	for i, r := range rows {
		label := r.label
		if label == "" {
			label = cellLabel(i + 1)
		}
		s.cells[i] = network.BuildCell(i+1, label, r.pos, s.config, s.rng)
	}
	s.config.CellCount = len(rows)
	s.selection = nil
	s.mu.Unlock()

	s.emit(EventCellsChanged, nil)
	s.emit(EventConfigChanged, nil)
	s.emit(EventSelectionChanged, nil)
	s.emit(EventHistoryChanged, nil)
	return true
}

// sniffDelimiter picks tab or semicolon when the header uses them instead
// of commas.
func sniffDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	switch {
	case bytes.ContainsRune(header, '\t'):
		return '\t'
	case bytes.ContainsRune(header, ';') && !bytes.ContainsRune(header, ','):
		return ';'
	default:
		return ','
	}
}
