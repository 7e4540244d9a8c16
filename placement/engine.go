// Package placement decides whether a building footprint may occupy a region
// of a terrain grid at a point on the timeline.
package placement

import (
	"github.com/milk9111/waveplan/terrain"
	"github.com/milk9111/waveplan/timeline"
)

// Reason explains the outcome of a placement check.
type Reason int

const (
	OK Reason = iota
	BadFootprint
	OutOfBounds
	NoGrid
	Obstacle
	Uneven
	Incapable
	Occupied
)

func (r Reason) String() string {
	switch r {
	case OK:
		return "ok"
	case BadFootprint:
		return "footprint must be at least 1x1"
	case OutOfBounds:
		return "footprint leaves the grid"
	case NoGrid:
		return "layer grid is not sized"
	case Obstacle:
		return "origin cell is an obstacle"
	case Uneven:
		return "footprint spans a height change"
	case Incapable:
		return "terrain cannot hold this category"
	case Occupied:
		return "overlaps an active building"
	default:
		return "unknown"
	}
}

// Occupant is an existing building as the engine sees it.
type Occupant struct {
	UID      int
	Category terrain.Category
	Rect     Rect
	Created  timeline.Stamp
}

// Request is one candidate placement.
type Request struct {
	// Grid is the candidate category's grid on the active layer.
	Grid       terrain.Grid
	Rows, Cols int
	Category   terrain.Category
	Rect       Rect
	// Now is the timeline key of the scene cursor.
	Now       int
	Occupants []Occupant
	// Demolition returns a building's demolition time, timeline.Never if
	// none is scheduled.
	Demolition func(uid int) int
}

// Engine evaluates placement requests. The zero value uses AllowAll.
type Engine struct {
	Capability Capability
}

// CanPlace reports whether req is accepted.
func (e Engine) CanPlace(req Request) bool {
	return e.Explain(req) == OK
}

// Explain runs the placement checks in order and returns the first failure.
func (e Engine) Explain(req Request) Reason {
	r := req.Rect
	if r.Width <= 0 || r.Height <= 0 {
		return BadFootprint
	}
	if r.Row < 0 || r.Col < 0 || r.Row+r.Height > req.Rows || r.Col+r.Width > req.Cols {
		return OutOfBounds
	}
	g := req.Grid
	if g.Empty() {
		return NoGrid
	}

	base := g.At(r.Row, r.Col)
	if !base.Passable() {
		return Obstacle
	}
	capability := e.capability()
	for row := r.Row; row < r.Row+r.Height; row++ {
		for col := r.Col; col < r.Col+r.Width; col++ {
			code := g.At(row, col)
			if code != base {
				return Uneven
			}
			if !capability.Allows(req.Category, code) {
				return Incapable
			}
		}
	}

	for _, o := range req.Occupants {
		if o.Category != req.Category || !o.Rect.Overlaps(r) {
			continue
		}
		demolish := timeline.Never
		if req.Demolition != nil {
			demolish = req.Demolition(o.UID)
		}
		if timeline.Active(o.Created.Value(), demolish, req.Now) {
			return Occupied
		}
	}
	return OK
}

func (e Engine) capability() Capability {
	if e.Capability == nil {
		return AllowAll{}
	}
	return e.Capability
}
