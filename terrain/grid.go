package terrain

// Code is the elevation code of one cell. -1 marks an obstacle and 0..3 are
// passable tiers, 0 being ground.
type Code int8

const (
	Obstacle Code = -1
	Ground   Code = 0
	MaxTier  Code = 3

	// NoData is returned for reads outside a grid. Rendering skips it.
	NoData Code = -2
)

// Valid reports whether c may be written by an editing operation.
func (c Code) Valid() bool {
	return c >= Obstacle && c <= MaxTier
}

// Passable reports whether a building footprint may start on c.
func (c Code) Passable() bool {
	return c >= Ground
}

// Grid is a row-major [row][col] grid of elevation codes.
type Grid [][]Code

// NewGrid allocates a rows x cols grid filled with fill.
func NewGrid(rows, cols int, fill Code) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = newRow(cols, fill)
	}
	return g
}

func newRow(cols int, fill Code) []Code {
	row := make([]Code, cols)
	for c := range row {
		row[c] = fill
	}
	return row
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the width of the first row, or 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Empty reports whether the grid has no rows.
func (g Grid) Empty() bool { return len(g) == 0 }

// InBounds reports whether (row, col) addresses a cell of g.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g) && col >= 0 && col < len(g[row])
}

// At returns the code at (row, col), or NoData when out of bounds.
func (g Grid) At(row, col int) Code {
	if !g.InBounds(row, col) {
		return NoData
	}
	return g[row][col]
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for r := range g {
		out[r] = append([]Code(nil), g[r]...)
	}
	return out
}

// resized returns g sized to rows x cols. An empty grid is freshly
// allocated; otherwise rows then columns are extended or truncated, padding
// new cells with Obstacle. Cells inside the new bounds keep their values.
func (g Grid) resized(rows, cols int) Grid {
	if len(g) == 0 {
		return NewGrid(rows, cols, Obstacle)
	}
	if len(g) > rows {
		g = g[:rows]
	}
	for len(g) < rows {
		g = append(g, newRow(cols, Obstacle))
	}
	for r, row := range g {
		switch {
		case len(row) > cols:
			g[r] = row[:cols]
		case len(row) < cols:
			for len(row) < cols {
				row = append(row, Obstacle)
			}
			g[r] = row
		}
	}
	return g
}
