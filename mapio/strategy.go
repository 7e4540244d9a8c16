package mapio

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/scene"
	"github.com/milk9111/waveplan/terrain"
	"github.com/milk9111/waveplan/timeline"
)

// StrategyFile is the building plan of one map.
type StrategyFile struct {
	MapName    string         `json:"map_name"`
	Buildings  []BuildingData `json:"buildings"`
	Upgrades   []UpgradeData  `json:"upgrades"`
	Demolishes []DemolishData `json:"demolishes"`
}

type BuildingData struct {
	UID      int              `json:"uid"`
	Name     string           `json:"name"`
	Category terrain.Category `json:"b_type"`
	GridX    int              `json:"grid_x"`
	GridY    int              `json:"grid_y"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	WaveNum  int              `json:"wave_num"`
	IsLate   bool             `json:"is_late"`
}

type UpgradeData struct {
	BuildingName string `json:"building_name"`
	WaveNum      int    `json:"wave_num"`
	IsLate       bool   `json:"is_late"`
}

type DemolishData struct {
	UID     int    `json:"uid"`
	Name    string `json:"name"`
	GridX   int    `json:"grid_x"`
	GridY   int    `json:"grid_y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	WaveNum int    `json:"wave_num"`
	IsLate  bool   `json:"is_late"`
}

// DecodeStrategy parses a strategy document. A missing b_type reads as
// Floor; missing upgrades and demolishes read as empty.
func DecodeStrategy(data []byte) (*StrategyFile, error) {
	var f StrategyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mapio: strategy: %w", err)
	}
	return &f, nil
}

// SceneBuildings converts the plan. Colors come from cat; buildings whose
// template is missing get catalog.Fallback.
func (f *StrategyFile) SceneBuildings(cat *catalog.Catalog) ([]scene.Building, timeline.Events) {
	buildings := make([]scene.Building, 0, len(f.Buildings))
	for _, b := range f.Buildings {
		buildings = append(buildings, scene.Building{
			UID:          b.UID,
			TemplateName: b.Name,
			Category:     b.Category,
			X:            b.GridX,
			Y:            b.GridY,
			Width:        b.Width,
			Height:       b.Height,
			Color:        cat.ColorOf(b.Name),
			Created:      timeline.Stamp{Wave: b.WaveNum, Late: b.IsLate},
		})
	}

	var ev timeline.Events
	for _, u := range f.Upgrades {
		ev.Upgrades = append(ev.Upgrades, timeline.Upgrade{
			BuildingName: u.BuildingName,
			At:           timeline.Stamp{Wave: u.WaveNum, Late: u.IsLate},
		})
	}
	for _, d := range f.Demolishes {
		ev.Demolishes = append(ev.Demolishes, timeline.Demolish{
			UID:    d.UID,
			Name:   d.Name,
			X:      d.GridX,
			Y:      d.GridY,
			Width:  d.Width,
			Height: d.Height,
			At:     timeline.Stamp{Wave: d.WaveNum, Late: d.IsLate},
		})
	}
	return buildings, ev
}

// BuildStrategy snapshots the buildings and events of s.
func BuildStrategy(mapName string, s *scene.Scene) *StrategyFile {
	f := &StrategyFile{
		MapName:    mapName,
		Buildings:  []BuildingData{},
		Upgrades:   []UpgradeData{},
		Demolishes: []DemolishData{},
	}
	for _, b := range s.Buildings() {
		f.Buildings = append(f.Buildings, BuildingData{
			UID:      b.UID,
			Name:     b.TemplateName,
			Category: b.Category,
			GridX:    b.X,
			GridY:    b.Y,
			Width:    b.Width,
			Height:   b.Height,
			WaveNum:  b.Created.Wave,
			IsLate:   b.Created.Late,
		})
	}
	for _, u := range s.Upgrades() {
		f.Upgrades = append(f.Upgrades, UpgradeData{BuildingName: u.BuildingName, WaveNum: u.At.Wave, IsLate: u.At.Late})
	}
	for _, d := range s.Demolishes() {
		f.Demolishes = append(f.Demolishes, DemolishData{
			UID:     d.UID,
			Name:    d.Name,
			GridX:   d.X,
			GridY:   d.Y,
			Width:   d.Width,
			Height:  d.Height,
			WaveNum: d.At.Wave,
			IsLate:  d.At.Late,
		})
	}
	return f
}
