package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/waveplan/placement"
	"github.com/milk9111/waveplan/terrain"
	"github.com/milk9111/waveplan/timeline"
)

const (
	gridAlpha = 0.35
	// inactive category grids are dimmed by this factor
	inactiveDim = 0.2
)

var (
	canvasBackground = color.RGBA{24, 24, 28, 255}
	ghostOK          = color.RGBA{0, 255, 0, 255}
	ghostBad         = color.RGBA{255, 0, 0, 255}
	upgradeHighlight = color.RGBA{0, 255, 0, 255}
	demolishTarget   = color.RGBA{255, 255, 0, 255}
	demolishCross    = color.RGBA{255, 0, 0, 255}
	viewportColor    = color.RGBA{0, 200, 255, 255}
	safeAreaColor    = color.RGBA{255, 255, 255, 90}
)

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)

	g.background.Draw(screen, g.canvas)
	g.drawTerrain(screen)
	g.drawBuildings(screen)
	g.drawModeOverlay(screen)
	g.drawViewport(screen)

	if g.ui != nil {
		g.ui.Draw(screen)
	}
	g.drawHoverInfo(screen)
}

// cellRect is the screen rectangle of a w x h block with its top-left cell
// at (row, col).
func (g *EditorGame) cellRect(row, col, w, h int) (x, y, sw, sh float64) {
	m := g.scene.Meta()
	px := m.OffsetX + float64(col)*m.GridPixelWidth
	py := m.OffsetY + float64(row)*m.GridPixelHeight
	x, y = g.canvas.MapToScreen(px, py)
	sw = float64(w) * m.GridPixelWidth * g.canvas.Zoom
	sh = float64(h) * m.GridPixelHeight * g.canvas.Zoom
	return x, y, sw, sh
}

func (g *EditorGame) onScreen(x, y, w, h float64) bool {
	return x+w >= float64(g.canvas.LeftPanelW) && x <= float64(g.screenW-g.canvas.RightPanelW) &&
		y+h >= 0 && y <= float64(g.screenH)
}

func (g *EditorGame) drawTerrain(screen *ebiten.Image) {
	layer, ok := g.scene.Store().Lookup(g.scene.ActiveLayer())
	if !ok {
		return
	}
	for _, c := range terrain.Categories {
		grid := layer.Grid(c)
		if grid.Empty() {
			continue
		}
		alpha := gridAlpha
		if c != g.brush.Category {
			alpha *= inactiveDim
		}
		for row := 0; row < grid.Rows(); row++ {
			for col := 0; col < grid.Cols(); col++ {
				code := grid.At(row, col)
				if code == terrain.NoData {
					continue
				}
				x, y, w, h := g.cellRect(row, col, 1, 1)
				if !g.onScreen(x, y, w, h) {
					continue
				}
				fillRect(screen, x, y, w, h, scaleAlpha(codeColor(code), alpha))
				if c == g.brush.Category && w >= 6 {
					strokeRect(screen, x, y, w, h, 1, color.RGBA{0, 0, 0, 40})
				}
			}
		}
	}
}

func (g *EditorGame) drawBuildings(screen *ebiten.Image) {
	upgradeName := ""
	if t, ok := g.selectedTemplate(); ok && g.mode == ModeUpgrade {
		upgradeName = t.Name
	}

	for _, b := range g.scene.Buildings() {
		alpha := phaseAlpha(g.scene.Phase(b))
		x, y, w, h := g.cellRect(b.Y, b.X, b.Width, b.Height)
		if !g.onScreen(x, y, w, h) {
			continue
		}
		fillRect(screen, x, y, w, h, scaleAlpha(b.Color, alpha))
		if alpha <= 0.1 {
			continue
		}

		if t, ok := g.catalog.Find(b.TemplateName); ok {
			if icon := g.icons.Get(t.IconPath); icon != nil {
				drawIcon(screen, icon, x, y, w, h, alpha)
			}
		}
		strokeRect(screen, x, y, w, h, 1, scaleAlpha(color.RGBA{255, 255, 255, 255}, alpha))
		ebitenutil.DebugPrintAt(screen, b.TemplateName, int(x)+2, int(y)+2)

		if upgradeName != "" && b.TemplateName == upgradeName && alpha > 0.5 {
			strokeRect(screen, x, y, w, h, 3, upgradeHighlight)
		}
		if g.scene.DemolitionTime(b.UID) != timeline.Never {
			red := scaleAlpha(demolishCross, alpha)
			ebitenutil.DrawLine(screen, x, y, x+w, y+h, red)
			ebitenutil.DrawLine(screen, x+w, y, x, y+h, red)
		}
	}
}

// drawIcon fits icon inside the building rectangle, keeping its aspect.
func drawIcon(screen, icon *ebiten.Image, x, y, w, h, alpha float64) {
	iw, ih := icon.Bounds().Dx(), icon.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	scale := min(w/float64(iw), h/float64(ih))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x+(w-float64(iw)*scale)/2, y+(h-float64(ih)*scale)/2)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(icon, op)
}

func (g *EditorGame) drawModeOverlay(screen *ebiten.Image) {
	switch g.mode {
	case ModeTerrain:
		if !g.hover.ok {
			return
		}
		r := g.brush.Radius
		x, y, w, h := g.cellRect(g.hover.row-r, g.hover.col-r, 2*r+1, 2*r+1)
		strokeRect(screen, x, y, w, h, 2, codeColor(g.brush.Code))

	case ModeBuilding:
		_, rect, ok := g.ghostRect()
		if !ok {
			return
		}
		clr := ghostOK
		if g.ghostReason != placement.OK {
			clr = ghostBad
		}
		x, y, w, h := g.cellRect(rect.Row, rect.Col, rect.Width, rect.Height)
		fillRect(screen, x, y, w, h, scaleAlpha(clr, 0.4))
		strokeRect(screen, x, y, w, h, 2, clr)

	case ModeDemolish:
		if !g.hover.ok {
			return
		}
		b, ok := g.scene.DemolishTargetAt(g.hover.row, g.hover.col)
		if !ok {
			return
		}
		x, y, w, h := g.cellRect(b.Y, b.X, b.Width, b.Height)
		strokeRect(screen, x, y, w, h, 3, demolishTarget)
	}
}

func (g *EditorGame) drawViewport(screen *ebiten.Image) {
	m := g.scene.Meta()
	for _, a := range m.SafeAreas {
		x0, y0 := g.canvas.MapToScreen(a.MinX, a.MinY)
		x1, y1 := g.canvas.MapToScreen(a.MaxX, a.MaxY)
		strokeRect(screen, x0, y0, x1-x0, y1-y0, 1, safeAreaColor)
	}
	if len(m.SafeAreas) == 0 {
		return
	}
	v := g.viewport
	x, y := g.canvas.MapToScreen(v.X, v.Y)
	strokeRect(screen, x, y, v.Width*g.canvas.Zoom, v.Height*g.canvas.Zoom, 2, viewportColor)
}

func (g *EditorGame) drawHoverInfo(screen *ebiten.Image) {
	var lines []string
	lines = append(lines, fmt.Sprintf("%s | %s | z=%d | brush %s code %d r%d | zoom %.2f",
		g.mode, g.scene.Cursor(), g.scene.ActiveLayer(), g.brush.Category, g.brush.Code, g.brush.Radius, g.canvas.Zoom))
	if g.mode == ModeBuilding && g.ghostReason != placement.OK {
		if t, ok := g.selectedTemplate(); ok {
			lines = append(lines, fmt.Sprintf("%s: %s", t.Name, g.ghostReason))
		}
	}
	if g.hover.ok {
		if h, ok := g.scene.Hover(g.hover.row, g.hover.col, g.brush.Category); ok {
			lines = append(lines, h.String())
		}
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), g.canvas.LeftPanelW+8, modeBarHeight+4)
}
