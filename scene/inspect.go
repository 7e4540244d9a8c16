package scene

import (
	"fmt"
	"strings"

	"github.com/milk9111/waveplan/placement"
	"github.com/milk9111/waveplan/terrain"
)

// Hover describes the cell under the pointer.
type Hover struct {
	Row, Col int
	// PixelX and PixelY are the cell's top-left corner in map pixels,
	// excluding the grid offset.
	PixelX, PixelY float64
	Category       terrain.Category
	Code           terrain.Code
	Buildings      []Building
}

// Hover summarizes (row, col) on grid c of the active layer. Only buildings
// active at the cursor are listed. ok is false outside the grid.
func (s *Scene) Hover(row, col int, c terrain.Category) (Hover, bool) {
	g := s.store.Layer(s.activeZ).Grid(c)
	if !g.InBounds(row, col) {
		return Hover{}, false
	}
	return Hover{
		Row:       row,
		Col:       col,
		PixelX:    float64(col) * s.meta.GridPixelWidth,
		PixelY:    float64(row) * s.meta.GridPixelHeight,
		Category:  c,
		Code:      g.At(row, col),
		Buildings: s.BuildingsAt(row, col, true),
	}, true
}

func (h Hover) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Grid: (%d, %d)\nPixel: (%.1f, %.1f)\nLayer: %s\nID: %d", h.Col, h.Row, h.PixelX, h.PixelY, h.Category, h.Code)
	if len(h.Buildings) > 0 {
		sb.WriteString("\n\nBuildings:")
		for _, b := range h.Buildings {
			fmt.Fprintf(&sb, "\n- %s (%s) #%d %s", b.TemplateName, b.Category, b.UID, b.Created)
		}
	}
	return sb.String()
}

// FindingKind classifies an audit finding.
type FindingKind int

const (
	// Overlap marks two same-category buildings that share a cell while
	// both active. Placement prevents this; imported files may not.
	Overlap FindingKind = iota
	// BadTerrain marks a building whose footprint the current terrain of the
	// active layer would reject.
	BadTerrain
	// DanglingDemolish marks a demolish event for a uid with no building.
	DanglingDemolish
)

func (k FindingKind) String() string {
	switch k {
	case Overlap:
		return "overlap"
	case BadTerrain:
		return "terrain"
	case DanglingDemolish:
		return "dangling-demolish"
	default:
		return "unknown"
	}
}

type Finding struct {
	Kind   FindingKind
	UID    int
	Other  int
	Reason placement.Reason
}

func (f Finding) String() string {
	switch f.Kind {
	case Overlap:
		return fmt.Sprintf("%s: #%d and #%d are active on the same cells", f.Kind, f.UID, f.Other)
	case BadTerrain:
		return fmt.Sprintf("%s: #%d %s", f.Kind, f.UID, f.Reason)
	default:
		return fmt.Sprintf("%s: #%d", f.Kind, f.UID)
	}
}

// Audit re-checks the whole scene: same-category buildings whose footprints
// and active intervals intersect, buildings standing on terrain the active
// layer no longer accepts, and demolish events without a building.
func (s *Scene) Audit() []Finding {
	var out []Finding
	for i, a := range s.buildings {
		aStart, aEnd := a.Created.Value(), s.events.DemolitionTime(a.UID)
		for _, b := range s.buildings[i+1:] {
			if a.Category != b.Category || !a.Rect().Overlaps(b.Rect()) {
				continue
			}
			bStart, bEnd := b.Created.Value(), s.events.DemolitionTime(b.UID)
			if max(aStart, bStart) < min(aEnd, bEnd) {
				out = append(out, Finding{Kind: Overlap, UID: a.UID, Other: b.UID})
			}
		}
	}

	for _, b := range s.buildings {
		req := s.request(b.Category, b.Rect())
		req.Occupants = nil
		if r := s.engine.Explain(req); r != placement.OK {
			out = append(out, Finding{Kind: BadTerrain, UID: b.UID, Reason: r})
		}
	}

	for _, d := range s.events.Demolishes {
		if _, ok := s.Building(d.UID); !ok {
			out = append(out, Finding{Kind: DanglingDemolish, UID: d.UID})
		}
	}
	return out
}
