package scene

// SafeArea is a rectangle in map pixels the game camera may stand in. Bounds
// are inclusive.
type SafeArea struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (a SafeArea) Contains(x, y float64) bool {
	return x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY
}

// CameraSpeeds are the game camera's pan speeds in pixels per second.
type CameraSpeeds struct {
	Up, Down, Left, Right float64
}

// Meta is the per-map data exported next to the terrain grids.
type Meta struct {
	GridPixelWidth  float64
	GridPixelHeight float64
	OffsetX         float64
	OffsetY         float64
	// Bottom and Right are the background image extent in pixels.
	Bottom float64
	Right  float64

	Camera    CameraSpeeds
	SafeAreas []SafeArea
	Prep      PrepActions
}

// DefaultMeta is the meta of a new map: 32px cells over a 1920x1080
// background.
func DefaultMeta() Meta {
	return Meta{
		GridPixelWidth:  32,
		GridPixelHeight: 32,
		Bottom:          1080,
		Right:           1920,
		Camera:          CameraSpeeds{Up: 1, Down: 1, Left: 1, Right: 1},
	}
}

// CellAt converts a map pixel position to the cell under it. ok is false for
// positions outside the grid or when the cell size is unset.
func (m Meta) CellAt(px, py float64, rows, cols int) (row, col int, ok bool) {
	if m.GridPixelWidth <= 0 || m.GridPixelHeight <= 0 {
		return 0, 0, false
	}
	fx := (px - m.OffsetX) / m.GridPixelWidth
	fy := (py - m.OffsetY) / m.GridPixelHeight
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	col, row = int(fx), int(fy)
	if row >= rows || col >= cols {
		return 0, 0, false
	}
	return row, col, true
}

// AddSafeArea appends a zero-sized area for the designer to fill in.
func (m *Meta) AddSafeArea() {
	m.SafeAreas = append(m.SafeAreas, SafeArea{})
}

// RemoveSafeArea deletes area i.
func (m *Meta) RemoveSafeArea(i int) bool {
	if i < 0 || i >= len(m.SafeAreas) {
		return false
	}
	m.SafeAreas = append(m.SafeAreas[:i], m.SafeAreas[i+1:]...)
	return true
}

// Viewport is the preview of the game camera drawn over the map.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// NewViewport returns a 1920x1080 viewport at the map origin.
func NewViewport() Viewport {
	return Viewport{Width: 1920, Height: 1080}
}

// Move pans the viewport by dt seconds in the direction (dx, dy), each -1, 0
// or 1, using the speed for that direction. The move is kept only if the new
// position lies inside one of areas; with no areas the viewport never moves.
func (v *Viewport) Move(dx, dy int, dt float64, speeds CameraSpeeds, areas []SafeArea) bool {
	x, y := v.X, v.Y
	switch {
	case dy < 0:
		y -= speeds.Up * dt
	case dy > 0:
		y += speeds.Down * dt
	}
	switch {
	case dx < 0:
		x -= speeds.Left * dt
	case dx > 0:
		x += speeds.Right * dt
	}
	for _, a := range areas {
		if a.Contains(x, y) {
			v.X, v.Y = x, y
			return true
		}
	}
	return false
}
