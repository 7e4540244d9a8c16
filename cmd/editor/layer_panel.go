package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// LayerEntry is a small value used by the UI list to represent a layer row.
type LayerEntry struct {
	MajorZ int
	Name   string
}

// LayerPanel holds the major_z list and keeps programmatic selection from
// being reported as a user pick.
type LayerPanel struct {
	list    *widget.List
	entries []any

	onSelected func(majorZ int)
	onNewLayer func(majorZ int)
	// suppressEvents, when true, causes the selection handler to ignore
	// selections made by SetLayers and SetSelected.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func (lp *LayerPanel) SetLayers(layers []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, len(layers))
	for i, l := range layers {
		entries[i] = l
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(majorZ int) {
	if lp == nil || lp.list == nil {
		return
	}
	for _, e := range lp.entries {
		if l, ok := e.(LayerEntry); ok && l.MajorZ == majorZ {
			lp.suppressEvents = true
			lp.list.SetSelectedEntry(e)
			lp.suppressEvents = false
			return
		}
	}
}

// bounds returns the lowest and highest listed major_z.
func (lp *LayerPanel) bounds() (lo, hi int) {
	for i, e := range lp.entries {
		l, ok := e.(LayerEntry)
		if !ok {
			continue
		}
		if i == 0 || l.MajorZ < lo {
			lo = l.MajorZ
		}
		if i == 0 || l.MajorZ > hi {
			hi = l.MajorZ
		}
	}
	return lo, hi
}
