package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// LeftPanelUI is the composed left-panel widget and its stateful helpers.
type LeftPanelUI struct {
	Container     *widget.Container
	LayerPanel    *LayerPanel
	FileNameInput *widget.TextInput
	Timeline      *TimelineUI
	CatalogList   *ListSection
	PresetList    *ListSection
	Status        *widget.Text
}

// RightPanelUI holds the per-mode forms. Only the form of the current mode
// is shown.
type RightPanelUI struct {
	Container *widget.Container
	forms     map[Mode]*widget.Container
	// relayoutTarget is asked to recompute layout when a form is shown or
	// hidden.
	relayoutTarget *widget.Container

	Catalog *CatalogForm
	Events  *EventsForm
	Prep    *PrepForm
	Meta    *MetaForm
}

func (r *RightPanelUI) ShowMode(m Mode) {
	if r == nil {
		return
	}
	active := r.forms[m]
	for _, form := range r.forms {
		if form == active {
			form.GetWidget().Visibility = widget.Visibility_Show
		} else {
			form.GetWidget().Visibility = widget.Visibility_Hide
		}
		form.RequestRelayout()
	}
	if r.relayoutTarget != nil {
		r.relayoutTarget.RequestRelayout()
	}
}

// TimelineUI shows and steps the cursor.
type TimelineUI struct {
	label   *widget.Text
	lateBtn *widget.Button
}

func (t *TimelineUI) SetCursor(label string, late bool) {
	if t == nil {
		return
	}
	t.label.Label = label
	if text := t.lateBtn.Text(); text != nil {
		if late {
			text.Label = "Late: On"
		} else {
			text.Label = "Late: Off"
		}
	}
}

// ListSection is a list whose entries are replaced wholesale; programmatic
// updates do not fire the selection callback.
type ListSection struct {
	list     *widget.List
	entries  []any
	suppress bool
}

func (l *ListSection) SetEntries(entries []any) {
	if l == nil || l.list == nil {
		return
	}
	l.suppress = true
	l.entries = entries
	l.list.SetEntries(entries)
	l.suppress = false
}

func (l *ListSection) Select(match func(e any) bool) {
	if l == nil || l.list == nil {
		return
	}
	for _, e := range l.entries {
		if match(e) {
			l.suppress = true
			l.list.SetSelectedEntry(e)
			l.suppress = false
			return
		}
	}
}

func (l *ListSection) Selected() any {
	if l == nil || l.list == nil {
		return nil
	}
	return l.list.SelectedEntry()
}
