package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addTimelineSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, onStep func(delta int), onToggleLate func()) *TimelineUI {
	parent.AddChild(newLabel("Timeline", fontFace))

	label := widget.NewText(
		widget.TextOpts.Text("Wave 1", fontFace, color.White),
	)
	parent.AddChild(label)

	row := newRow(6)
	row.AddChild(newButton(theme, fontFace, "Prev", func() {
		if onStep != nil {
			onStep(-1)
		}
	}))
	row.AddChild(newButton(theme, fontFace, "Next", func() {
		if onStep != nil {
			onStep(1)
		}
	}))
	lateBtn := newButton(theme, fontFace, "Late: Off", onToggleLate)
	row.AddChild(lateBtn)
	parent.AddChild(row)

	return &TimelineUI{label: label, lateBtn: lateBtn}
}
