package mapio

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/scene"
)

// Preset points at the files of one ready-made map.
type Preset struct {
	Name                string `json:"name"`
	ImagePath           string `json:"image_path"`
	TerrainPath         string `json:"terrain_path"`
	BuildingConfigsPath string `json:"building_configs_path"`
	StrategyPath        string `json:"strategy_path"`
}

// LoadPresets reads the preset list at path.
func LoadPresets(path string) ([]Preset, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("mapio: presets %s: %w", path, err)
	}
	return presets, nil
}

// ResolvePath places a relative preset path under dir unless it already
// starts with dir. Absolute and empty paths are returned unchanged.
func ResolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	slashed := filepath.ToSlash(p)
	prefix := strings.TrimSuffix(filepath.ToSlash(dir), "/") + "/"
	if strings.HasPrefix(slashed, prefix) {
		return filepath.FromSlash(slashed)
	}
	return filepath.Join(dir, p)
}

// Applied reports what ApplyPreset loaded.
type Applied struct {
	// ImagePath is the resolved background image; the caller loads it.
	ImagePath string
	// MapFile is the terrain file name, empty when the terrain failed.
	MapFile string
	// Catalog is the loaded catalog, nil when it failed.
	Catalog *catalog.Catalog
	// Strategy reports whether the buildings were replaced.
	Strategy bool
}

// ApplyPreset loads the terrain, catalog and strategy named by p, in that
// order. Each load is independent: a failing one leaves its part of the
// scene untouched and the rest still load. Strategy colors come from the
// new catalog when it loaded, otherwise from current. All failures are
// returned joined.
//
// imageHeight is the height of the preset's background image, or 0 when
// it did not load. It becomes the meta bottom before the terrain loads, so
// a positive bottom in the terrain file still wins.
func (c Codec) ApplyPreset(dir string, p Preset, s *scene.Scene, current *catalog.Catalog, imageHeight float64) (Applied, error) {
	var (
		out  Applied
		errs []error
	)
	out.ImagePath = ResolvePath(dir, p.ImagePath)
	if imageHeight > 0 {
		s.Meta().Bottom = imageHeight
	}

	if p.TerrainPath != "" {
		path := ResolvePath(dir, p.TerrainPath)
		if err := c.ImportTerrain(path, s); err != nil {
			errs = append(errs, err)
		} else {
			out.MapFile = filepath.Base(path)
		}
	}

	cat := current
	if p.BuildingConfigsPath != "" {
		loaded, err := c.ReadCatalog(ResolvePath(dir, p.BuildingConfigsPath))
		if err != nil {
			errs = append(errs, err)
		} else {
			out.Catalog = loaded
			cat = loaded
		}
	}

	if p.StrategyPath != "" {
		if err := c.ImportStrategy(ResolvePath(dir, p.StrategyPath), s, cat); err != nil {
			errs = append(errs, err)
		} else {
			out.Strategy = true
		}
	}
	return out, errors.Join(errs...)
}
