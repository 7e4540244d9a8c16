package terrain

// Layer is one elevation band. Floor, Wall and Ceiling always share the same
// dimensions once the owning Store has resized them.
type Layer struct {
	MajorZ  int
	Name    string
	Floor   Grid
	Wall    Grid
	Ceiling Grid

	// Elevation holds legacy single-grid data until Normalize consumes it.
	Elevation Grid
}

// Grid returns the grid a building of category c occupies.
func (l *Layer) Grid(c Category) Grid {
	return *l.gridRef(c)
}

// SetGrid replaces the grid for category c.
func (l *Layer) SetGrid(c Category, g Grid) {
	*l.gridRef(c) = g
}

func (l *Layer) gridRef(c Category) *Grid {
	switch c {
	case Wall:
		return &l.Wall
	case Ceiling:
		return &l.Ceiling
	default:
		return &l.Floor
	}
}

// Normalize migrates a legacy layer: the legacy grid moves into Floor when
// Floor is empty. The legacy grid is always consumed, so a second call does
// nothing. Wall and Ceiling stay as they are until the next resize.
func (l *Layer) Normalize() {
	if l.Elevation == nil {
		return
	}
	if l.Floor.Empty() {
		l.Floor = l.Elevation
	}
	l.Elevation = nil
}

// Legacy reports whether the layer still carries unmigrated data.
func (l *Layer) Legacy() bool {
	return l.Elevation != nil
}

func (l *Layer) resize(rows, cols int) {
	for _, c := range Categories {
		ref := l.gridRef(c)
		*ref = ref.resized(rows, cols)
	}
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		MajorZ:    l.MajorZ,
		Name:      l.Name,
		Floor:     l.Floor.Clone(),
		Wall:      l.Wall.Clone(),
		Ceiling:   l.Ceiling.Clone(),
		Elevation: l.Elevation.Clone(),
	}
}
