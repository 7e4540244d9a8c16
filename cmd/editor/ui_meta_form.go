package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/waveplan/scene"
)

type safeAreaEntry struct {
	Index int
	Area  scene.SafeArea
}

func safeAreaLabel(e any) string {
	if s, ok := e.(safeAreaEntry); ok {
		a := s.Area
		return fmt.Sprintf("%d. (%.0f,%.0f)-(%.0f,%.0f)", s.Index+1, a.MinX, a.MinY, a.MaxX, a.MaxY)
	}
	return ""
}

// MetaForm edits grid geometry, camera speeds and viewport safe areas.
type MetaForm struct {
	size   *widget.TextInput
	cell   *widget.TextInput
	offset *widget.TextInput
	camera *widget.TextInput

	areas    *ListSection
	areaEdit *widget.TextInput
}

func (f *MetaForm) SetMeta(m scene.Meta) {
	if f == nil {
		return
	}
	f.cell.SetText(formatFloats(m.GridPixelWidth, m.GridPixelHeight))
	f.offset.SetText(formatFloats(m.OffsetX, m.OffsetY))
	f.camera.SetText(formatFloats(m.Camera.Up, m.Camera.Down, m.Camera.Left, m.Camera.Right))
	entries := make([]any, len(m.SafeAreas))
	for i, a := range m.SafeAreas {
		entries[i] = safeAreaEntry{Index: i, Area: a}
	}
	f.areas.SetEntries(entries)
}

// SetGridSize shows the current store dimensions.
func (f *MetaForm) SetGridSize(rows, cols int) {
	if f == nil {
		return
	}
	f.size.SetText(fmt.Sprintf("%d,%d", rows, cols))
}

func (f *MetaForm) apply(m *scene.Meta) error {
	cell, err := parseFloats(f.cell.GetText(), 2)
	if err != nil {
		return fmt.Errorf("cell size: %w", err)
	}
	if cell[0] <= 0 || cell[1] <= 0 {
		return fmt.Errorf("cell size must be positive")
	}
	offset, err := parseFloats(f.offset.GetText(), 2)
	if err != nil {
		return fmt.Errorf("offset: %w", err)
	}
	cam, err := parseFloats(f.camera.GetText(), 4)
	if err != nil {
		return fmt.Errorf("camera speeds: %w", err)
	}
	m.GridPixelWidth, m.GridPixelHeight = cell[0], cell[1]
	m.OffsetX, m.OffsetY = offset[0], offset[1]
	m.Camera = scene.CameraSpeeds{Up: cam[0], Down: cam[1], Left: cam[2], Right: cam[3]}
	return nil
}

func addMetaForm(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, a *uiActions) *MetaForm {
	f := &MetaForm{}
	parent.AddChild(newLabel("Map meta", fontFace))

	field := func(label string) *widget.TextInput {
		parent.AddChild(newLabel(label, fontFace))
		in := newTextInput(fontFace, 200)
		parent.AddChild(in)
		return in
	}
	f.size = field("Grid size (rows,cols)")
	parent.AddChild(newButton(theme, fontFace, "Resize", func() {
		v, err := parseInts(f.size.GetText(), 2)
		if err != nil {
			a.onError(fmt.Errorf("grid size: %w", err))
			return
		}
		if a.onResize != nil {
			a.onResize(v[0], v[1])
		}
	}))
	f.cell = field("Cell size px (w,h)")
	f.offset = field("Grid offset (x,y)")
	f.camera = field("Camera speed (up,down,left,right)")
	parent.AddChild(newButton(theme, fontFace, "Apply meta", func() {
		if a.onMetaApply != nil {
			a.onMetaApply(f.apply)
		}
	}))

	f.areas = addListSection(parent, fontFace, "Viewport safe areas", 100, safeAreaLabel, func(e any) {
		if s, ok := e.(safeAreaEntry); ok {
			f.areaEdit.SetText(formatFloats(s.Area.MinX, s.Area.MinY, s.Area.MaxX, s.Area.MaxY))
		}
	})
	f.areaEdit = newTextInput(fontFace, 200)
	parent.AddChild(f.areaEdit)

	selected := func() int {
		if s, ok := f.areas.Selected().(safeAreaEntry); ok {
			return s.Index
		}
		return -1
	}
	row := newRow(6)
	row.AddChild(newButton(theme, fontFace, "Add", a.onSafeAreaAdd))
	row.AddChild(newButton(theme, fontFace, "Remove", func() {
		if i := selected(); i >= 0 && a.onSafeAreaRemove != nil {
			a.onSafeAreaRemove(i)
		}
	}))
	row.AddChild(newButton(theme, fontFace, "Set", func() {
		i := selected()
		if i < 0 || a.onSafeAreaEdit == nil {
			return
		}
		v, err := parseFloats(f.areaEdit.GetText(), 4)
		if err != nil {
			a.onError(fmt.Errorf("safe area: %w", err))
			return
		}
		a.onSafeAreaEdit(i, scene.SafeArea{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]})
	}))
	parent.AddChild(row)
	return f
}
