package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Background is the map screenshot drawn under the grids.
type Background struct {
	Path  string
	Image *ebiten.Image
}

// LoadBackground decodes a PNG or JPEG file.
func LoadBackground(path string) (*Background, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("background: decode %s: %w", path, err)
	}
	return &Background{Path: path, Image: ebiten.NewImageFromImage(img)}, nil
}

// Size is the image extent in pixels.
func (b *Background) Size() (int, int) {
	if b == nil || b.Image == nil {
		return 0, 0
	}
	r := b.Image.Bounds()
	return r.Dx(), r.Dy()
}

// Draw renders the image at the map origin using the canvas transform.
func (b *Background) Draw(dst *ebiten.Image, c *Canvas) {
	if b == nil || b.Image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(c.Zoom, c.Zoom)
	x, y := c.MapToScreen(0, 0)
	op.GeoM.Translate(x, y)
	dst.DrawImage(b.Image, op)
}
