package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/config"
	"github.com/milk9111/waveplan/mapio"
	"github.com/milk9111/waveplan/placement"
	"github.com/milk9111/waveplan/scene"
	"github.com/milk9111/waveplan/terrain"
)

// viewportPixelsPerSecond converts a camera speed of 1 into screen motion.
const viewportPixelsPerSecond = 600

// EditorGame is the ebiten game driving the planner.
type EditorGame struct {
	cfg   *config.Config
	codec mapio.Codec

	scene      *scene.Scene
	catalog    *catalog.Catalog
	presets    []mapio.Preset
	watcher    *catalog.Watcher
	background *Background
	icons      *IconCache
	clipboard  *Clipboard

	mode     Mode
	brush    Brush
	selected int
	prepSel  int
	mapFile  string

	canvas      *Canvas
	viewport    scene.Viewport
	hover       hoverState
	ghostReason placement.Reason
	lastUpdate  time.Time

	ui      *ebitenui.UI
	modeBar *ModeBar
	left    *LeftPanelUI
	right   *RightPanelUI

	screenW, screenH int
}

func NewEditorGame(cfg *config.Config) *EditorGame {
	g := &EditorGame{
		cfg:       cfg,
		codec:     mapio.Codec{Validate: cfg.Validate},
		scene:     scene.New(cfg.Map.Rows, cfg.Map.Cols),
		catalog:   catalog.New(nil),
		icons:     NewIconCache(cfg.ConfigDir),
		clipboard: NewClipboard(),
		mode:      ModeTerrain,
		brush:     Brush{Category: terrain.Floor, Code: terrain.Ground},
		prepSel:   -1,
		canvas:    NewCanvas(),
		viewport:  scene.NewViewport(),
	}

	g.loadCapability()
	if cat, err := g.codec.ReadCatalog(g.cfg.CatalogPath()); err != nil {
		log.Printf("Catalog not loaded: %v", err)
	} else {
		g.catalog = cat
	}
	g.loadPresets()

	if cfg.Map.File != "" {
		g.importTerrain(cfg.Map.File)
	}
	if cfg.Watch {
		g.startWatcher()
	}

	g.ui, g.modeBar, g.left, g.right = BuildEditorUI(g.actions(), g.mapFile, g.mode)
	g.refreshAll()
	return g
}

// Close releases the file watcher.
func (g *EditorGame) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("Watcher close: %v", err)
		}
	}
}

func (g *EditorGame) setStatus(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
	if g.left != nil && g.left.Status != nil {
		g.left.Status.Label = msg
	}
}

func (g *EditorGame) reportError(err error) {
	if err != nil {
		g.setStatus("Error: %v", err)
	}
}

func (g *EditorGame) selectedTemplate() (catalog.Template, bool) {
	if g.selected < 0 || g.selected >= g.catalog.Len() {
		return catalog.Template{}, false
	}
	return g.catalog.At(g.selected), true
}

func (g *EditorGame) setMode(m Mode) {
	if m == g.mode {
		return
	}
	g.mode = m
	g.modeBar.SetMode(m)
	g.right.ShowMode(m)
	if m == ModeCatalog {
		g.loadCatalogForm()
	}
}

func (g *EditorGame) stepWave(delta int) {
	c := g.scene.Cursor()
	g.scene.SetCursor(c.Wave+delta, c.Late)
	g.refreshTimeline()
}

func (g *EditorGame) toggleLate() {
	c := g.scene.Cursor()
	g.scene.SetCursor(c.Wave, !c.Late)
	g.refreshTimeline()
}

func (g *EditorGame) Update() error {
	now := time.Now()
	dt := 0.0
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now

	g.drainWatcher()

	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	suppressHotkeys := false
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			suppressHotkeys = true
		}
	}
	if !suppressHotkeys {
		g.handleHotkeys(dt)
	}

	g.ui.Update()

	mx, my := ebiten.CursorPosition()
	g.canvas.Update(mx, my, g.screenW)
	g.updateHover(mx, my)
	if g.canvas.Contains(mx, my, g.screenW) {
		g.handleCanvasInput()
	}
	return nil
}

func (g *EditorGame) handleHotkeys(dt float64) {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.exportAll()
		return
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.importTerrain(g.left.FileNameInput.GetText())
		g.refreshAll()
		return
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyHover()
		return
	}
	if ctrl {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && len(g.presets) > 0 {
		g.applyPreset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.stepWave(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.stepWave(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.toggleLate()
	}

	for i, k := range []ebiten.Key{ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(k) {
			g.brush.Code = terrain.Code(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.brush.grow(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.brush.grow(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.brush.Category = terrain.Floor
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.brush.Category = terrain.Wall
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.brush.Category = terrain.Ceiling
	}

	// Arrow keys move the preview viewport within the safe areas.
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx = -1
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy = -1
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy = 1
	}
	if dx != 0 || dy != 0 {
		m := g.scene.Meta()
		g.viewport.Move(dx, dy, dt*viewportPixelsPerSecond, m.Camera, m.SafeAreas)
	}
}

func (g *EditorGame) updateHover(mx, my int) {
	g.hover = hoverState{}
	if !g.canvas.Contains(mx, my, g.screenW) {
		return
	}
	px, py := g.canvas.ScreenToMap(mx, my)
	m := g.scene.Meta()
	store := g.scene.Store()
	row, col, ok := m.CellAt(px, py, store.Rows(), store.Cols())
	g.hover = hoverState{
		ok:  ok,
		row: row,
		col: col,
	}
	if m.GridPixelWidth > 0 && m.GridPixelHeight > 0 {
		g.hover.fx = (px - m.OffsetX) / m.GridPixelWidth
		g.hover.fy = (py - m.OffsetY) / m.GridPixelHeight
	}
}

// ghostRect is the footprint the selected template would occupy under the
// pointer.
func (g *EditorGame) ghostRect() (catalog.Template, placement.Rect, bool) {
	t, ok := g.selectedTemplate()
	if !ok {
		return t, placement.Rect{}, false
	}
	return t, placement.Centered(g.hover.fx, g.hover.fy, t.Width, t.Height), true
}

func (g *EditorGame) handleCanvasInput() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	leftClick := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	rightClick := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	switch g.mode {
	case ModeTerrain:
		if !g.hover.ok {
			return
		}
		value := g.brush.Code
		if right {
			value = terrain.Obstacle
		} else if !left {
			return
		}
		if _, err := g.scene.Paint(g.brush.Category, g.hover.row, g.hover.col, g.brush.Radius, value); err != nil {
			g.reportError(err)
		}

	case ModeBuilding:
		t, r, ok := g.ghostRect()
		if ok {
			g.ghostReason = g.scene.Explain(t, r.Row, r.Col)
		}
		if leftClick && ok {
			if uid, placed := g.scene.PlaceBuilding(t, r.Row, r.Col); placed {
				g.setStatus("Placed %s #%d at %s", t.Name, uid, g.scene.Cursor())
			} else {
				g.setStatus("Cannot place %s: %s", t.Name, g.ghostReason)
			}
		}
		if rightClick && g.hover.ok {
			if removed := g.scene.EraseAt(g.hover.row, g.hover.col); len(removed) > 0 {
				g.setStatus("Erased %v", removed)
				g.refreshEvents()
			}
		}

	case ModeUpgrade:
		if leftClick {
			t, ok := g.selectedTemplate()
			if !ok {
				g.setStatus("Select a building to upgrade")
				return
			}
			g.scene.AddUpgrade(t.Name)
			g.setStatus("Upgrade %s at %s", t.Name, g.scene.Cursor())
			g.refreshEvents()
		}

	case ModeDemolish:
		if leftClick && g.hover.ok {
			if uid, ok := g.scene.ScheduleDemolishAt(g.hover.row, g.hover.col); ok {
				g.setStatus("Demolish #%d at %s", uid, g.scene.Cursor())
				g.refreshEvents()
			}
		}
	}
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// refreshAll pushes the whole editor state into the widgets.
func (g *EditorGame) refreshAll() {
	g.refreshLayers()
	g.refreshTimeline()
	g.refreshCatalog()
	g.refreshPresets()
	g.refreshEvents()
	g.refreshPrep()
	g.right.Meta.SetMeta(*g.scene.Meta())
	g.right.Meta.SetGridSize(g.scene.Store().Rows(), g.scene.Store().Cols())
	if g.left.FileNameInput != nil && g.mapFile != "" {
		g.left.FileNameInput.SetText(g.mapFile)
	}
}

func (g *EditorGame) refreshLayers() {
	var entries []LayerEntry
	for _, l := range g.scene.Store().Layers() {
		entries = append(entries, LayerEntry{MajorZ: l.MajorZ, Name: l.Name})
	}
	g.left.LayerPanel.SetLayers(entries)
	g.left.LayerPanel.SetSelected(g.scene.ActiveLayer())
}

func (g *EditorGame) refreshTimeline() {
	c := g.scene.Cursor()
	g.left.Timeline.SetCursor(fmt.Sprintf("Wave %d%s", c.Wave, lateSuffix(c.Late)), c.Late)
}

func lateSuffix(late bool) string {
	if late {
		return " (late)"
	}
	return ""
}

// refreshCatalog lists templates grouped by category in sheet order.
func (g *EditorGame) refreshCatalog() {
	var entries []any
	for _, c := range terrain.Categories {
		for _, i := range g.catalog.ByCategory(c) {
			t := g.catalog.At(i)
			entries = append(entries, CatalogEntry{
				Index: i,
				Name:  t.Name,
				Label: fmt.Sprintf("[%s] %s %dx%d", c, t.Name, t.Width, t.Height),
			})
		}
	}
	g.left.CatalogList.SetEntries(entries)
	if g.selected >= g.catalog.Len() {
		g.selected = -1
	}
	g.left.CatalogList.Select(func(e any) bool {
		c, ok := e.(CatalogEntry)
		return ok && c.Index == g.selected
	})
}

func (g *EditorGame) refreshPresets() {
	entries := make([]any, len(g.presets))
	for i, p := range g.presets {
		entries[i] = PresetEntry{Index: i, Name: p.Name}
	}
	g.left.PresetList.SetEntries(entries)
}

func (g *EditorGame) refreshEvents() {
	g.right.Events.SetEvents(g.scene.Upgrades(), g.scene.Demolishes())
}

func (g *EditorGame) refreshPrep() {
	g.right.Prep.SetActions(g.scene.Meta().Prep, g.prepSel)
}

func (g *EditorGame) loadCatalogForm() {
	cfg, ok := g.catalog.Config(g.selected)
	if !ok {
		if g.selected >= 0 && g.selected < g.catalog.Len() {
			g.setStatus("%s is built in; add a config to edit", g.catalog.At(g.selected).Name)
		}
		return
	}
	g.right.Catalog.Load(g.selected, cfg)
}
