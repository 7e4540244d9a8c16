package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ModeBar is the row of mode toggles along the top edge. Exactly one mode
// is pressed at a time.
type ModeBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	// echo is set while SetMode moves the selection programmatically.
	echo bool
}

// SetMode presses the button for m without reporting it as a user choice.
func (mb *ModeBar) SetMode(m Mode) {
	if mb == nil || mb.group == nil || int(m) < 0 || int(m) >= len(mb.buttons) {
		return
	}
	mb.echo = true
	defer func() { mb.echo = false }()
	mb.group.SetActive(mb.buttons[m])
}

func (mb *ModeBar) modeOf(el widget.RadioGroupElement) (Mode, bool) {
	for i, b := range mb.buttons {
		if el == b {
			return Mode(i), true
		}
	}
	return 0, false
}

func buildModeBar(theme *widget.Theme, fontFace *text.Face, onModeSelected func(m Mode), initial Mode) (*widget.Container, *ModeBar) {
	p := editorPalette
	pressedText := &widget.ButtonTextColor{
		Idle:     p.text,
		Hover:    color.White,
		Pressed:  p.inverted,
		Disabled: p.muted,
	}

	row := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(len(modeNames)*80, modeBarHeight-4)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Left: 4, Right: 4}),
		)),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(p.bar)),
	)

	bar := &ModeBar{}
	elements := make([]widget.RadioGroupElement, 0, len(modeNames))
	for _, name := range modeNames {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(name, fontFace, pressedText),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(76, modeBarHeight-10)),
		)
		bar.buttons = append(bar.buttons, btn)
		elements = append(elements, btn)
		row.AddChild(btn)
	}

	bar.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if bar.echo || onModeSelected == nil {
				return
			}
			if m, ok := bar.modeOf(args.Active); ok {
				onModeSelected(m)
			}
		}),
	)
	bar.SetMode(initial)
	return row, bar
}
