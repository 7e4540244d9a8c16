package terrain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidCode = errors.New("terrain: elevation code out of range")
	ErrInvalidSize = errors.New("terrain: grid size must be positive")
)

// DefaultLayerName is used for the synthesized major_z 0 layer.
const DefaultLayerName = "Default Layer"

// Store owns every terrain layer, keyed by major_z, and the shared grid
// dimensions.
type Store struct {
	rows   int
	cols   int
	layers map[int]*Layer
}

// NewStore creates a store holding the default layer (major_z 0) sized
// rows x cols and filled with Obstacle.
func NewStore(rows, cols int) *Store {
	s := &Store{rows: rows, cols: cols, layers: make(map[int]*Layer)}
	s.layers[0] = &Layer{
		MajorZ:  0,
		Name:    DefaultLayerName,
		Floor:   NewGrid(rows, cols, Obstacle),
		Wall:    NewGrid(rows, cols, Obstacle),
		Ceiling: NewGrid(rows, cols, Obstacle),
	}
	return s
}

// Rows returns the shared row count.
func (s *Store) Rows() int { return s.rows }

// Cols returns the shared column count.
func (s *Store) Cols() int { return s.cols }

// Layer returns the layer for majorZ. A missing layer is an invariant
// violation: the default layer is created with the store and imports always
// keep one, so this panics instead of returning an error.
func (s *Store) Layer(majorZ int) *Layer {
	l, ok := s.layers[majorZ]
	if !ok {
		panic(fmt.Sprintf("terrain: no layer for major_z %d", majorZ))
	}
	return l
}

// Lookup returns the layer for majorZ if it exists.
func (s *Store) Lookup(majorZ int) (*Layer, bool) {
	l, ok := s.layers[majorZ]
	return l, ok
}

// MajorZs returns the layer keys in ascending order.
func (s *Store) MajorZs() []int {
	keys := make([]int, 0, len(s.layers))
	for z := range s.layers {
		keys = append(keys, z)
	}
	sort.Ints(keys)
	return keys
}

// Layers returns the layers ordered by major_z.
func (s *Store) Layers() []*Layer {
	out := make([]*Layer, 0, len(s.layers))
	for _, z := range s.MajorZs() {
		out = append(out, s.layers[z])
	}
	return out
}

// AddLayer creates an Obstacle-filled layer for majorZ. It returns the
// existing layer unchanged when majorZ is already present.
func (s *Store) AddLayer(majorZ int, name string) *Layer {
	if l, ok := s.layers[majorZ]; ok {
		return l
	}
	l := &Layer{MajorZ: majorZ, Name: name}
	l.resize(s.rows, s.cols)
	s.layers[majorZ] = l
	return l
}

// Resize sets the shared dimensions and resizes every grid of every layer.
// Cells inside the new bounds keep their values; new cells are Obstacle.
func (s *Store) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	s.rows, s.cols = rows, cols
	for _, l := range s.layers {
		l.resize(rows, cols)
	}
	return nil
}

// Replace swaps in a freshly imported set of layers. Each layer is
// normalized, the dimensions are taken from the last layer (in input order)
// with a non-empty floor grid, and everything is resized to match. When no
// layer carries data the current dimensions are kept. The default layer is
// synthesized if the import does not provide major_z 0.
func (s *Store) Replace(layers []*Layer) error {
	rows, cols := s.rows, s.cols
	next := make(map[int]*Layer, len(layers)+1)
	for _, l := range layers {
		l.Normalize()
		if !l.Floor.Empty() {
			rows, cols = l.Floor.Rows(), l.Floor.Cols()
		}
		next[l.MajorZ] = l
	}
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	if _, ok := next[0]; !ok {
		next[0] = &Layer{MajorZ: 0, Name: DefaultLayerName}
	}
	s.layers = next
	return s.Resize(rows, cols)
}

// Paint writes value into every in-bounds cell within Chebyshev distance
// radius of (row, col) on the category grid of layer majorZ. It returns the
// number of cells written.
func (s *Store) Paint(majorZ int, c Category, row, col, radius int, value Code) (int, error) {
	if !value.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCode, value)
	}
	if radius < 0 {
		radius = 0
	}
	g := s.Layer(majorZ).Grid(c)
	n := 0
	for r := row - radius; r <= row+radius; r++ {
		for cc := col - radius; cc <= col+radius; cc++ {
			if !g.InBounds(r, cc) {
				continue
			}
			g[r][cc] = value
			n++
		}
	}
	return n, nil
}
