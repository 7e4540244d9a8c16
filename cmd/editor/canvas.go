package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	minZoom = 0.1
	maxZoom = 10.0
)

// Canvas is the pan/zoom transform between screen and map pixels. The
// canvas occupies the screen between the two side panels.
type Canvas struct {
	LeftPanelW  int
	RightPanelW int

	Zoom    float64
	OffsetX float64
	OffsetY float64

	dragActive bool
	lastMX     int
	lastMY     int
}

func NewCanvas() *Canvas {
	return &Canvas{
		LeftPanelW:  leftPanelWidth,
		RightPanelW: rightPanelWidth,
		Zoom:        1.0,
		OffsetX:     8,
		OffsetY:     modeBarHeight + 8,
	}
}

// Contains reports whether the screen position is over the canvas.
func (c *Canvas) Contains(sx, sy, screenW int) bool {
	return sx >= c.LeftPanelW && sx < screenW-c.RightPanelW && sy >= modeBarHeight
}

// ScreenToMap maps a screen position to map pixels.
func (c *Canvas) ScreenToMap(sx, sy int) (float64, float64) {
	x := (float64(sx-c.LeftPanelW) - c.OffsetX) / c.Zoom
	y := (float64(sy) - c.OffsetY) / c.Zoom
	return x, y
}

// MapToScreen maps map pixels to a screen position.
func (c *Canvas) MapToScreen(x, y float64) (float64, float64) {
	return x*c.Zoom + c.OffsetX + float64(c.LeftPanelW), y*c.Zoom + c.OffsetY
}

// Update applies wheel zoom around the cursor and middle-button panning.
func (c *Canvas) Update(mx, my, screenW int) {
	over := c.Contains(mx, my, screenW)
	if over {
		if _, wy := ebiten.Wheel(); wy != 0 {
			localX, localY := c.ScreenToMap(mx, my)
			factor := 1.1
			if wy < 0 {
				factor = 1.0 / 1.1
			}
			c.Zoom = clampZoom(c.Zoom * factor)
			// keep the point under the cursor fixed
			c.OffsetX = float64(mx-c.LeftPanelW) - localX*c.Zoom
			c.OffsetY = float64(my) - localY*c.Zoom
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) && over {
		c.dragActive = true
		c.lastMX, c.lastMY = mx, my
	}
	if c.dragActive {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
			c.dragActive = false
			return
		}
		c.OffsetX += float64(mx - c.lastMX)
		c.OffsetY += float64(my - c.lastMY)
		c.lastMX, c.lastMY = mx, my
	}
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

var whitePixel *ebiten.Image

func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// fillRect draws a solid screen-space rectangle.
func fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(pixel(), op)
}

// strokeRect draws a rectangle outline of thickness t inside (x, y, w, h).
func strokeRect(dst *ebiten.Image, x, y, w, h, t float64, clr color.Color) {
	fillRect(dst, x, y, w, t, clr)
	fillRect(dst, x, y+h-t, w, t, clr)
	fillRect(dst, x, y, t, h, clr)
	fillRect(dst, x+w-t, y, t, h, clr)
}
