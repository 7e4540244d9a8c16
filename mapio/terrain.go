// Package mapio reads and writes the JSON documents exchanged with the game
// runtime: terrain, strategy, building catalog and map presets.
package mapio

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/milk9111/waveplan/scene"
	"github.com/milk9111/waveplan/terrain"
)

// TerrainFile is the terrain document of one map.
type TerrainFile struct {
	MapName string      `json:"map_name"`
	Meta    MetaData    `json:"meta"`
	Layers  []LayerData `json:"layers"`
}

type MetaData struct {
	GridPixelWidth  float64 `json:"grid_pixel_width"`
	GridPixelHeight float64 `json:"grid_pixel_height"`
	// GridPixelSize is the square cell size written by older editors. It
	// is read but never written.
	GridPixelSize *float64 `json:"grid_pixel_size,omitempty"`

	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Bottom  float64 `json:"bottom"`
	Right   float64 `json:"right"`

	CameraSpeedUp    float64 `json:"camera_speed_up"`
	CameraSpeedDown  float64 `json:"camera_speed_down"`
	CameraSpeedLeft  float64 `json:"camera_speed_left"`
	CameraSpeedRight float64 `json:"camera_speed_right"`

	ViewportSafeAreas []SafeAreaData    `json:"viewport_safe_areas"`
	PrepActions       scene.PrepActions `json:"prep_actions"`
}

type SafeAreaData struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// LayerData is one layer on the wire. ElevationGrid only appears in legacy
// files and is never written.
type LayerData struct {
	MajorZ        int          `json:"major_z"`
	Name          string       `json:"name"`
	FloorGrid     terrain.Grid `json:"floor_grid,omitempty"`
	WallGrid      terrain.Grid `json:"wall_grid,omitempty"`
	CeilingGrid   terrain.Grid `json:"ceiling_grid,omitempty"`
	ElevationGrid terrain.Grid `json:"elevation_grid,omitempty"`
}

// DecodeTerrain parses a terrain document.
func DecodeTerrain(data []byte) (*TerrainFile, error) {
	var f TerrainFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mapio: terrain: %w", err)
	}
	f.Meta.migrate()
	return &f, nil
}

func (m *MetaData) migrate() {
	if m.GridPixelSize == nil {
		return
	}
	if m.GridPixelWidth == 0 {
		m.GridPixelWidth = *m.GridPixelSize
	}
	if m.GridPixelHeight == 0 {
		m.GridPixelHeight = *m.GridPixelSize
	}
	m.GridPixelSize = nil
}

// TerrainLayers converts the wire layers. The result still carries legacy
// grids; the store normalizes them on import.
func (f *TerrainFile) TerrainLayers() []*terrain.Layer {
	out := make([]*terrain.Layer, 0, len(f.Layers))
	for _, l := range f.Layers {
		out = append(out, &terrain.Layer{
			MajorZ:    l.MajorZ,
			Name:      l.Name,
			Floor:     l.FloorGrid,
			Wall:      l.WallGrid,
			Ceiling:   l.CeilingGrid,
			Elevation: l.ElevationGrid,
		})
	}
	return out
}

// SceneMeta merges the file meta over current. A zero bottom or right keeps
// the current value, which usually comes from the background image size.
func (f *TerrainFile) SceneMeta(current scene.Meta) scene.Meta {
	m := f.Meta
	out := scene.Meta{
		GridPixelWidth:  m.GridPixelWidth,
		GridPixelHeight: m.GridPixelHeight,
		OffsetX:         m.OffsetX,
		OffsetY:         m.OffsetY,
		Bottom:          current.Bottom,
		Right:           current.Right,
		Camera: scene.CameraSpeeds{
			Up:    m.CameraSpeedUp,
			Down:  m.CameraSpeedDown,
			Left:  m.CameraSpeedLeft,
			Right: m.CameraSpeedRight,
		},
		Prep: append(scene.PrepActions(nil), m.PrepActions...),
	}
	if m.Bottom > 0 {
		out.Bottom = m.Bottom
	}
	if m.Right > 0 {
		out.Right = m.Right
	}
	for _, a := range m.ViewportSafeAreas {
		out.SafeAreas = append(out.SafeAreas, scene.SafeArea{MinX: a.MinX, MinY: a.MinY, MaxX: a.MaxX, MaxY: a.MaxY})
	}
	return out
}

// BuildTerrain snapshots the terrain and meta of s. Layers are sorted by
// major_z.
func BuildTerrain(mapName string, s *scene.Scene) *TerrainFile {
	m := s.Meta()
	f := &TerrainFile{
		MapName: mapName,
		Meta: MetaData{
			GridPixelWidth:    m.GridPixelWidth,
			GridPixelHeight:   m.GridPixelHeight,
			OffsetX:           m.OffsetX,
			OffsetY:           m.OffsetY,
			Bottom:            m.Bottom,
			Right:             m.Right,
			CameraSpeedUp:     m.Camera.Up,
			CameraSpeedDown:   m.Camera.Down,
			CameraSpeedLeft:   m.Camera.Left,
			CameraSpeedRight:  m.Camera.Right,
			ViewportSafeAreas: []SafeAreaData{},
			PrepActions:       append(scene.PrepActions{}, m.Prep...),
		},
	}
	for _, a := range m.SafeAreas {
		f.Meta.ViewportSafeAreas = append(f.Meta.ViewportSafeAreas, SafeAreaData{MinX: a.MinX, MinY: a.MinY, MaxX: a.MaxX, MaxY: a.MaxY})
	}
	for _, l := range s.Store().Layers() {
		f.Layers = append(f.Layers, LayerData{
			MajorZ:      l.MajorZ,
			Name:        l.Name,
			FloorGrid:   l.Floor.Clone(),
			WallGrid:    l.Wall.Clone(),
			CeilingGrid: l.Ceiling.Clone(),
		})
	}
	sort.SliceStable(f.Layers, func(i, j int) bool { return f.Layers[i].MajorZ < f.Layers[j].MajorZ })
	return f
}
