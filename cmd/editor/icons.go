package main

import (
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// IconCache loads template icons on first use. Paths are relative to dir.
// Files that fail to load are remembered and not retried.
type IconCache struct {
	dir    string
	images map[string]*ebiten.Image
}

func NewIconCache(dir string) *IconCache {
	return &IconCache{dir: dir, images: make(map[string]*ebiten.Image)}
}

func (c *IconCache) Get(path string) *ebiten.Image {
	if c == nil || path == "" {
		return nil
	}
	if img, ok := c.images[path]; ok {
		return img
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(c.dir, path)
	}
	img, _, err := ebitenutil.NewImageFromFile(full)
	if err != nil {
		log.Printf("Icon %s not loaded: %v", full, err)
		img = nil
	}
	c.images[path] = img
	return img
}
