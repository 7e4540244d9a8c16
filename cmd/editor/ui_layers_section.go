package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLayersSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, layerPanel *LayerPanel) {
	parent.AddChild(newLabel("Layers", fontFace))

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return fmt.Sprintf("z=%d  %s", entry.MajorZ, entry.Name)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || layerPanel.suppressEvents {
				return
			}
			if layerPanel.onSelected != nil {
				layerPanel.onSelected(entry.MajorZ)
			}
		}),
	)
	layerList.GetWidget().MinHeight = 90
	parent.AddChild(layerList)
	layerPanel.list = layerList

	buttonsRow := newRow(6)
	buttonsRow.AddChild(newButton(theme, fontFace, "New Above", func() {
		if layerPanel.onNewLayer != nil {
			_, hi := layerPanel.bounds()
			layerPanel.onNewLayer(hi + 1)
		}
	}))
	buttonsRow.AddChild(newButton(theme, fontFace, "New Below", func() {
		if layerPanel.onNewLayer == nil {
			return
		}
		lo, _ := layerPanel.bounds()
		layerPanel.onNewLayer(lo - 1)
	}))
	parent.AddChild(buttonsRow)
}
