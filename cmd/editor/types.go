package main

import (
	"github.com/milk9111/waveplan/terrain"
)

// Mode selects what pointer input does on the canvas.
type Mode int

const (
	ModeTerrain Mode = iota
	ModeBuilding
	ModeUpgrade
	ModeDemolish
	ModeCatalog
	ModePrep
)

var modeNames = [...]string{"Terrain", "Building", "Upgrade", "Demolish", "Catalog", "Prep"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Unknown"
	}
	return modeNames[m]
}

// Brush is the terrain paint state.
type Brush struct {
	Category terrain.Category
	Code     terrain.Code
	Radius   int
}

const maxBrushRadius = 10

func (b *Brush) grow(delta int) {
	b.Radius += delta
	if b.Radius < 0 {
		b.Radius = 0
	}
	if b.Radius > maxBrushRadius {
		b.Radius = maxBrushRadius
	}
}

// CatalogEntry is one row of the template list.
type CatalogEntry struct {
	Index int
	Name  string
	Label string
}

// PresetEntry is one row of the preset list.
type PresetEntry struct {
	Index int
	Name  string
}

// PrepEntry is one row of the prep action list.
type PrepEntry struct {
	Index int
	Label string
}

// hoverState is the cell under the pointer in the current frame.
type hoverState struct {
	ok       bool
	row, col int
	// fx and fy are the fractional cell coordinates used to centre ghosts.
	fx, fy float64
}
