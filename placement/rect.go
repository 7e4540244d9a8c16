package placement

// Rect is a footprint in grid cells. Row/Col is the top-left cell.
type Rect struct {
	Row, Col      int
	Width, Height int
}

// Overlaps reports whether the half-open cell ranges of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.Col < o.Col+o.Width && r.Col+r.Width > o.Col &&
		r.Row < o.Row+o.Height && r.Row+r.Height > o.Row
}

// Contains reports whether the cell (row, col) lies inside r.
func (r Rect) Contains(row, col int) bool {
	return col >= r.Col && col < r.Col+r.Width && row >= r.Row && row < r.Row+r.Height
}

// Centered returns the footprint of a width x height building whose centre
// sits under the fractional cell position (fx, fy), rounding to the nearest
// origin. This is how the editor turns the pointer into a ghost footprint.
func Centered(fx, fy float64, width, height int) Rect {
	col := roundHalfAway(fx - float64(width)/2)
	row := roundHalfAway(fy - float64(height)/2)
	return Rect{Row: row, Col: col, Width: width, Height: height}
}

func roundHalfAway(v float64) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}
