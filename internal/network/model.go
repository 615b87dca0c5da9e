// Package network defines the multicell data model: the fixed set of
// function categories, cells with their satellite nodes, the flat editor
// configuration, and the color schemes.
package network

import (
	"fmt"
	"math"
	"math/rand"

	"multicell/pkg/geometry"
)

// Category identifies one of the nine fixed function-node types.
type Category string

const (
	CategoryWater        Category = "water"
	CategoryEducation    Category = "education"
	CategoryGreen        Category = "green"
	CategoryWork         Category = "work"
	CategoryStreets      Category = "streets"
	CategoryTree         Category = "tree"
	CategoryTemperature  Category = "temperature"
	CategoryBiodiversity Category = "biodiversity"
	CategoryPollution    Category = "pollution"
)

// Categories is the canonical ordering of the closed category set. Every
// cell carries exactly one function node per entry.
var Categories = []Category{
	CategoryWater,
	CategoryEducation,
	CategoryGreen,
	CategoryWork,
	CategoryStreets,
	CategoryTree,
	CategoryTemperature,
	CategoryBiodiversity,
	CategoryPollution,
}

// FunctionNode is one typed satellite node on a cell's ring.
type FunctionNode struct {
	ID       string         `json:"id"`
	Category Category       `json:"type"`
	Position geometry.Point `json:"position"`
	Radius   float64        `json:"radius"`
}

// Cell is a diagram unit: a central living node surrounded by one function
// node per category on a regular ring, enclosed by a border circle.
type Cell struct {
	ID           int            `json:"id"`
	Label        string         `json:"label"`
	Center       geometry.Point `json:"center"`
	BorderRadius float64        `json:"borderRadius"`
	LivingRadius float64        `json:"livingRadius"`
	Functions    []FunctionNode `json:"functions"`
}

// BuildCell materializes a cell at center with a freshly randomized ring.
func BuildCell(id int, label string, center geometry.Point, cfg *Config, rng *rand.Rand) *Cell {
	weights := cfg.WeightValues()
	positions := geometry.FunctionPositions(center, cfg.LivingRadius, cfg.FunctionRadius, weights, rng)

	cell := &Cell{
		ID:           id,
		Label:        label,
		Center:       center,
		BorderRadius: geometry.CellBorderRadius(cfg.LivingRadius, cfg.FunctionRadius, weights),
		LivingRadius: cfg.LivingRadius,
		Functions:    make([]FunctionNode, len(Categories)),
	}
	for i, cat := range Categories {
		cell.Functions[i] = FunctionNode{
			ID:       fmt.Sprintf("%d-%s", id, cat),
			Category: cat,
			Position: positions[i],
			Radius:   cfg.FunctionRadius * cfg.Weights[cat],
		}
	}
	return cell
}

// Recompute re-derives the cell's ring and border geometry from cfg while
// preserving each function node's current angle around the center. Used
// after weight changes, where only the ring-radius formula may move nodes.
func (c *Cell) Recompute(cfg *Config) {
	weights := cfg.WeightValues()
	ring := geometry.FunctionRingRadius(cfg.LivingRadius, cfg.FunctionRadius, weights)

	c.LivingRadius = cfg.LivingRadius
	c.BorderRadius = geometry.CellBorderRadius(cfg.LivingRadius, cfg.FunctionRadius, weights)
	for i := range c.Functions {
		fn := &c.Functions[i]
		angle := math.Atan2(fn.Position.Y-c.Center.Y, fn.Position.X-c.Center.X)
		fn.Position = geometry.Point{
			X: c.Center.X + ring*math.Cos(angle),
			Y: c.Center.Y + ring*math.Sin(angle),
		}
		fn.Radius = cfg.FunctionRadius * cfg.Weights[fn.Category]
	}
}

// MoveTo translates the cell center and every function node by the same
// delta, keeping the ring intact.
func (c *Cell) MoveTo(center geometry.Point) {
	delta := center.Sub(c.Center)
	c.Center = center
	for i := range c.Functions {
		c.Functions[i].Position = c.Functions[i].Position.Add(delta)
	}
}

// Function returns the cell's node for the given category, or nil.
func (c *Cell) Function(cat Category) *FunctionNode {
	for i := range c.Functions {
		if c.Functions[i].Category == cat {
			return &c.Functions[i]
		}
	}
	return nil
}

// Clone returns an independent deep copy of the cell.
func (c *Cell) Clone() *Cell {
	out := *c
	out.Functions = make([]FunctionNode, len(c.Functions))
	copy(out.Functions, c.Functions)
	return &out
}

// CloneCells deep-copies a cell collection.
func CloneCells(cells []*Cell) []*Cell {
	out := make([]*Cell, len(cells))
	for i, c := range cells {
		out[i] = c.Clone()
	}
	return out
}
