package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/waveplan/scene"
)

// PrepForm edits the ordered prep actions of the map.
type PrepForm struct {
	list  *ListSection
	value *widget.TextInput
}

func (f *PrepForm) SetActions(actions scene.PrepActions, selected int) {
	if f == nil {
		return
	}
	entries := make([]any, len(actions))
	for i, act := range actions {
		entries[i] = PrepEntry{Index: i, Label: fmt.Sprintf("%d. %s", i+1, act)}
	}
	f.list.SetEntries(entries)
	f.list.Select(func(e any) bool {
		p, ok := e.(PrepEntry)
		return ok && p.Index == selected
	})
}

func (f *PrepForm) selected() int {
	if p, ok := f.list.Selected().(PrepEntry); ok {
		return p.Index
	}
	return -1
}

func addPrepForm(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, a *uiActions) *PrepForm {
	f := &PrepForm{}
	parent.AddChild(newLabel("Prep actions", fontFace))

	kinds := newRow(4)
	for _, k := range scene.PrepKinds {
		kind := k
		kinds.AddChild(newButton(theme, fontFace, kind.String(), func() {
			if a.onPrepAdd != nil {
				a.onPrepAdd(kind)
			}
		}))
	}
	parent.AddChild(kinds)

	f.list = addListSection(parent, fontFace, "", 160, prepEntryLabel, func(e any) {
		p, ok := e.(PrepEntry)
		if ok && a.onPrepSelected != nil {
			a.onPrepSelected(p.Index)
		}
	})

	withSelected := func(fn func(int)) func() {
		return func() {
			if i := f.selected(); i >= 0 && fn != nil {
				fn(i)
			}
		}
	}
	row := newRow(6)
	row.AddChild(newButton(theme, fontFace, "Remove", withSelected(a.onPrepRemove)))
	row.AddChild(newButton(theme, fontFace, "Up", withSelected(a.onPrepUp)))
	row.AddChild(newButton(theme, fontFace, "Down", withSelected(a.onPrepDown)))
	parent.AddChild(row)

	parent.AddChild(newLabel("Message, key or ms", fontFace))
	f.value = newTextInput(fontFace, 200,
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			if i := f.selected(); i >= 0 && a.onPrepEdit != nil {
				a.onPrepEdit(i, args.InputText)
			}
		}),
	)
	parent.AddChild(f.value)
	parent.AddChild(newButton(theme, fontFace, "Set", func() {
		if i := f.selected(); i >= 0 && a.onPrepEdit != nil {
			a.onPrepEdit(i, f.value.GetText())
		}
	}))
	return f
}
