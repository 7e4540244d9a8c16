package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// addListSection adds a titled list. onSelected only fires for user picks.
func addListSection(parent *widget.Container, fontFace *text.Face, title string, minHeight int, label func(e any) string, onSelected func(e any)) *ListSection {
	if title != "" {
		parent.AddChild(newLabel(title, fontFace))
	}
	section := &ListSection{}
	list := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(label),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if section.suppress || onSelected == nil {
				return
			}
			onSelected(args.Entry)
		}),
	)
	list.GetWidget().MinHeight = minHeight
	parent.AddChild(list)
	section.list = list
	return section
}

func catalogEntryLabel(e any) string {
	if c, ok := e.(CatalogEntry); ok {
		return c.Label
	}
	return ""
}

func presetEntryLabel(e any) string {
	if p, ok := e.(PresetEntry); ok {
		return p.Name
	}
	return ""
}

func prepEntryLabel(e any) string {
	if p, ok := e.(PrepEntry); ok {
		return p.Label
	}
	return ""
}
