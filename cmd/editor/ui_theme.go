package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// palette is the dark scheme shared by both side panels and the mode bar.
type palette struct {
	panel    color.RGBA
	bar      color.RGBA
	surface  color.RGBA
	accent   color.RGBA
	text     color.Color
	muted    color.Color
	inverted color.Color
}

var editorPalette = palette{
	panel:    color.RGBA{34, 36, 42, 255},
	bar:      color.RGBA{26, 28, 33, 255},
	surface:  color.RGBA{58, 62, 72, 255},
	accent:   color.RGBA{70, 120, 200, 255},
	text:     color.RGBA{230, 232, 236, 255},
	muted:    color.Gray{Y: 130},
	inverted: color.RGBA{20, 20, 24, 255},
}

var (
	panelBackground = editorPalette.panel
	labelColor      = &widget.LabelColor{Idle: editorPalette.text, Disabled: editorPalette.muted}
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

// shade lightens (positive) or darkens (negative) c by d per channel.
func shade(c color.RGBA, d int) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(max(0, min(255, int(v)+d)))
	}
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	p := editorPalette
	listBackground := solidNineSlice(shade(p.panel, -8))
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          p.text,
				Selected:            color.White,
				DisabledUnselected:  p.muted,
				DisabledSelected:    p.muted,
				SelectingBackground: shade(p.accent, -30),
				SelectedBackground:  p.accent,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: listBackground,
				Mask: listBackground,
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(p.panel),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(p.surface),
				Hover:   solidNineSlice(shade(p.surface, 20)),
				Pressed: solidNineSlice(p.accent),
			},
			TextFace:  fontFace,
			TextColor: &widget.ButtonTextColor{Idle: p.text},
		},
	}
}

func newLabel(s string, fontFace *text.Face) *widget.Label {
	return widget.NewLabel(widget.LabelOpts.Text(s, fontFace, labelColor))
}

func newButton(theme *widget.Theme, fontFace *text.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

// newTextInput builds a light field so typed text stands out on the dark
// panels. Extra options are applied after the defaults.
func newTextInput(fontFace *text.Face, width int, opts ...widget.TextInputOpt) *widget.TextInput {
	p := editorPalette
	all := append([]widget.TextInputOpt{
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 26)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{236, 238, 242, 255}),
			Disabled: solidNineSlice(shade(p.surface, 40)),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     p.inverted,
			Disabled: p.muted,
			Caret:    p.accent,
		}),
		widget.TextInputOpts.Face(fontFace),
	}, opts...)
	return widget.NewTextInput(all...)
}

func newRow(spacing int) *widget.Container {
	layout := widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
		widget.RowLayoutOpts.Spacing(spacing),
	)
	return widget.NewContainer(widget.ContainerOpts.Layout(layout))
}
