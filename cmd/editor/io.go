package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/mapio"
	"github.com/milk9111/waveplan/placement"
)

// importTerrain loads the terrain file named in the file field. A sibling
// <map>_strategy.json is imported too when present.
func (g *EditorGame) importTerrain(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		g.setStatus("No file specified in File field; import aborted")
		return
	}
	path := mapio.ResolvePath(g.cfg.ConfigDir, name)
	if err := g.codec.ImportTerrain(path, g.scene); err != nil {
		g.reportError(err)
		return
	}
	g.mapFile = filepath.Base(path)
	g.setStatus("Imported %s", path)

	base := strings.TrimSuffix(path, ".json")
	if !strings.HasSuffix(base, "_terrain") {
		return
	}
	strategy := strings.TrimSuffix(base, "_terrain") + "_strategy.json"
	if _, err := os.Stat(strategy); err != nil {
		return
	}
	if err := g.codec.ImportStrategy(strategy, g.scene, g.catalog); err != nil {
		g.reportError(err)
		return
	}
	g.setStatus("Imported %s and %s", path, strategy)
}

// mapName is the export name: the terrain file name without the _terrain
// suffix the exporter adds.
func (g *EditorGame) mapName() string {
	name := g.mapFile
	if name == "" {
		name = g.cfg.Map.File
	}
	return strings.TrimSuffix(mapio.MapName(name), "_terrain")
}

// exportAll writes the terrain, strategy and catalog documents and packs
// them into a bundle next to them.
func (g *EditorGame) exportAll() {
	layout := mapio.NewLayout(g.cfg.OutputDir, g.mapName())
	if err := g.codec.Export(layout, g.scene, g.catalog); err != nil {
		g.reportError(err)
		return
	}
	b, err := g.codec.Pack(layout.MapName, layout.Terrain, layout.Strategy, layout.Catalog)
	if err != nil {
		g.reportError(err)
		return
	}
	if err := mapio.WriteBundle(layout.Bundle, b); err != nil {
		g.reportError(err)
		return
	}
	g.setStatus("Exported %s to %s", layout.MapName, layout.Dir)
}

func (g *EditorGame) applyPreset(i int) {
	if i < 0 || i >= len(g.presets) {
		return
	}
	p := g.presets[i]

	// The image goes first so a positive bottom in the terrain file wins.
	imageHeight := 0.0
	if p.ImagePath != "" {
		if h, ok := g.loadBackground(mapio.ResolvePath(g.cfg.ConfigDir, p.ImagePath)); ok {
			imageHeight = float64(h)
		}
	}
	applied, err := g.codec.ApplyPreset(g.cfg.ConfigDir, p, g.scene, g.catalog, imageHeight)
	if applied.Catalog != nil {
		g.replaceCatalog(applied.Catalog)
	}
	if applied.MapFile != "" {
		g.mapFile = applied.MapFile
	}
	g.refreshAll()
	if err != nil {
		g.reportError(err)
		return
	}
	g.setStatus("Applied preset %s", p.Name)
}

// loadBackground shows the image under the grids and returns its height.
func (g *EditorGame) loadBackground(path string) (int, bool) {
	bg, err := LoadBackground(path)
	if err != nil {
		g.reportError(err)
		return 0, false
	}
	g.background = bg
	_, h := bg.Size()
	return h, true
}

// replaceCatalog swaps in cat together with a fresh icon cache, so icons
// that failed under the old catalog are retried.
func (g *EditorGame) replaceCatalog(cat *catalog.Catalog) {
	g.catalog = cat
	g.icons = NewIconCache(g.cfg.ConfigDir)
	g.selected = -1
	g.scene.RecolorFrom(cat)
	if g.right != nil {
		g.right.Catalog.Reset()
	}
}

func (g *EditorGame) loadPresets() {
	presets, err := mapio.LoadPresets(g.cfg.PresetsPath())
	if err != nil {
		log.Printf("Presets not loaded: %v", err)
		return
	}
	g.presets = presets
}

func (g *EditorGame) loadCapability() {
	path := g.cfg.CapabilityPath()
	if path == "" {
		g.scene.SetCapability(placement.AllowAll{})
		return
	}
	capability, err := placement.LoadScriptCapability(path)
	if err != nil {
		log.Printf("Capability script not loaded: %v", err)
		return
	}
	g.scene.SetCapability(capability)
}

func (g *EditorGame) reloadCatalog() {
	cat, err := g.codec.ReadCatalog(g.cfg.CatalogPath())
	if err != nil {
		g.reportError(err)
		return
	}
	g.replaceCatalog(cat)
	g.refreshCatalog()
	g.setStatus("Reloaded %s", g.cfg.CatalogPath())
}

func (g *EditorGame) saveCatalog() {
	if err := g.catalog.Save(g.cfg.CatalogPath()); err != nil {
		g.reportError(err)
		return
	}
	g.setStatus("Saved %s", g.cfg.CatalogPath())
}

func (g *EditorGame) startWatcher() {
	w, err := catalog.NewWatcher(g.cfg.ConfigDir)
	if err != nil {
		log.Printf("Hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

// drainWatcher reloads whatever changed on disk since the last frame.
func (g *EditorGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil && !errors.Is(err, os.ErrClosed) {
			log.Printf("Watcher: %v", err)
		}
	default:
	}

	for _, name := range g.watcher.Drain() {
		switch filepath.Clean(name) {
		case filepath.Clean(g.cfg.CatalogPath()):
			g.reloadCatalog()
		case filepath.Clean(g.cfg.PresetsPath()):
			g.loadPresets()
			g.refreshPresets()
		case filepath.Clean(g.cfg.CapabilityPath()):
			g.loadCapability()
			g.setStatus("Reloaded %s", name)
		}
	}
}
