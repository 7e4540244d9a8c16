package main

import (
	"log"

	"golang.design/x/clipboard"
)

// Clipboard wraps the system clipboard. It is a no-op when the platform
// clipboard is unavailable.
type Clipboard struct {
	ok bool
}

func NewClipboard() *Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
		return &Clipboard{}
	}
	return &Clipboard{ok: true}
}

func (c *Clipboard) WriteText(s string) bool {
	if c == nil || !c.ok {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return true
}

// copyHover puts the hover summary of the cell under the pointer on the
// clipboard.
func (g *EditorGame) copyHover() {
	if !g.hover.ok {
		return
	}
	h, ok := g.scene.Hover(g.hover.row, g.hover.col, g.brush.Category)
	if !ok {
		return
	}
	if g.clipboard.WriteText(h.String()) {
		g.setStatus("Copied cell (%d, %d)", h.Col, h.Row)
	}
}
