package mapio

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/scene"
)

// Codec reads and writes map documents. With Validate set, every document
// is checked against its schema before it is decoded.
type Codec struct {
	Validate bool
}

func (c Codec) check(kind Kind, data []byte) error {
	if !c.Validate {
		return nil
	}
	return Validate(kind, data)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapio: read %s: %w", path, err)
	}
	return data, nil
}

// ReadTerrain loads and decodes a terrain file.
func (c Codec) ReadTerrain(path string) (*TerrainFile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.check(KindTerrain, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := DecodeTerrain(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ReadStrategy loads and decodes a strategy file.
func (c Codec) ReadStrategy(path string) (*StrategyFile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.check(KindStrategy, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := DecodeStrategy(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ReadCatalog loads and decodes a catalog file.
func (c Codec) ReadCatalog(path string) (*catalog.Catalog, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.check(KindCatalog, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cat, err := catalog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("mapio: %s: %w", path, err)
	}
	if dups := cat.Duplicates(); len(dups) > 0 {
		// Lookups by name take the first entry.
		log.Printf("mapio: %s: duplicate template names %v", path, dups)
	}
	return cat, nil
}

// WriteJSON writes v as indented JSON, creating parent directories.
func WriteJSON(path string, v any) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mapio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapio: create %s: %w", path, err)
	}
	defer closeInto(f, path, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("mapio: encode %s: %w", path, err)
	}
	return nil
}

// closeInto closes c and keeps its error in *err unless an earlier error is
// already there. Writers use it so a failed flush is not reported as success.
func closeInto(c io.Closer, path string, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("mapio: close %s: %w", path, cerr)
	}
}

// ImportTerrain replaces the terrain and meta of s with the file at path.
// Nothing changes when any step fails.
func (c Codec) ImportTerrain(path string, s *scene.Scene) error {
	f, err := c.ReadTerrain(path)
	if err != nil {
		return err
	}
	if err := s.ReplaceTerrain(f.TerrainLayers(), f.SceneMeta(*s.Meta())); err != nil {
		return fmt.Errorf("mapio: %s: %w", path, err)
	}
	return nil
}

// ImportStrategy replaces the buildings and events of s with the file at
// path, coloring buildings from cat.
func (c Codec) ImportStrategy(path string, s *scene.Scene, cat *catalog.Catalog) error {
	f, err := c.ReadStrategy(path)
	if err != nil {
		return err
	}
	buildings, events := f.SceneBuildings(cat)
	s.ReplaceBuildings(buildings, events)
	return nil
}

// MapName derives the map name from a terrain filename: the base name up to
// the first '.'.
func MapName(filename string) string {
	base := filepath.Base(filename)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "" || base == "/" {
		return "map"
	}
	return base
}

// Layout is where the documents of one map live.
type Layout struct {
	MapName  string
	Dir      string
	Terrain  string
	Strategy string
	Catalog  string
	Bundle   string
}

// NewLayout places the documents of mapName under outputDir/mapName.
func NewLayout(outputDir, mapName string) Layout {
	dir := filepath.Join(outputDir, mapName)
	return Layout{
		MapName:  mapName,
		Dir:      dir,
		Terrain:  filepath.Join(dir, mapName+"_terrain.json"),
		Strategy: filepath.Join(dir, mapName+"_strategy.json"),
		Catalog:  filepath.Join(dir, mapName+"_catalog.json"),
		Bundle:   filepath.Join(dir, mapName+".bundle.zst"),
	}
}

// ExportTerrain writes the terrain document of s.
func (c Codec) ExportTerrain(l Layout, s *scene.Scene) error {
	return WriteJSON(l.Terrain, BuildTerrain(l.MapName, s))
}

// ExportStrategy writes the strategy document of s.
func (c Codec) ExportStrategy(l Layout, s *scene.Scene) error {
	return WriteJSON(l.Strategy, BuildStrategy(l.MapName, s))
}

// ExportCatalog writes the catalog configs.
func (c Codec) ExportCatalog(l Layout, cat *catalog.Catalog) error {
	if err := cat.Save(l.Catalog); err != nil {
		return fmt.Errorf("mapio: %w", err)
	}
	return nil
}

// Export writes all three documents. It stops at the first failure.
func (c Codec) Export(l Layout, s *scene.Scene, cat *catalog.Catalog) error {
	if err := c.ExportTerrain(l, s); err != nil {
		return err
	}
	if err := c.ExportStrategy(l, s); err != nil {
		return err
	}
	return c.ExportCatalog(l, cat)
}
