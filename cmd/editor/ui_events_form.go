package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/waveplan/timeline"
)

type eventEntry struct {
	Index int
	Label string
}

func eventEntryLabel(e any) string {
	if ev, ok := e.(eventEntry); ok {
		return ev.Label
	}
	return ""
}

// EventsForm lists the upgrade and demolish events.
type EventsForm struct {
	upgrades   *ListSection
	demolishes *ListSection
}

func (f *EventsForm) SetEvents(upgrades []timeline.Upgrade, demolishes []timeline.Demolish) {
	if f == nil {
		return
	}
	ups := make([]any, len(upgrades))
	for i, u := range upgrades {
		ups[i] = eventEntry{Index: i, Label: fmt.Sprintf("%s @ %s", u.BuildingName, u.At)}
	}
	f.upgrades.SetEntries(ups)
	dems := make([]any, len(demolishes))
	for i, d := range demolishes {
		dems[i] = eventEntry{Index: i, Label: fmt.Sprintf("%s #%d @ %s", d.Name, d.UID, d.At)}
	}
	f.demolishes.SetEntries(dems)
}

func addEventsForm(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, a *uiActions) *EventsForm {
	f := &EventsForm{}
	f.upgrades = addListSection(parent, fontFace, "Upgrades", 120, eventEntryLabel, nil)
	parent.AddChild(newButton(theme, fontFace, "Remove upgrade", func() {
		if ev, ok := f.upgrades.Selected().(eventEntry); ok && a.onRemoveUpgrade != nil {
			a.onRemoveUpgrade(ev.Index)
		}
	}))
	f.demolishes = addListSection(parent, fontFace, "Demolitions", 120, eventEntryLabel, nil)
	parent.AddChild(newButton(theme, fontFace, "Remove demolition", func() {
		if ev, ok := f.demolishes.Selected().(eventEntry); ok && a.onRemoveDemolish != nil {
			a.onRemoveDemolish(ev.Index)
		}
	}))
	return f
}
