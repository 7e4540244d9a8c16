package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func buildRightPanelUI(theme *widget.Theme, fontFace *text.Face, a *uiActions) *RightPanelUI {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelBackground)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 6, Right: 6}),
			),
		),
	)

	form := func() *widget.Container {
		c := widget.NewContainer(
			widget.ContainerOpts.Layout(
				widget.NewRowLayout(
					widget.RowLayoutOpts.Direction(widget.DirectionVertical),
					widget.RowLayoutOpts.Spacing(6),
				),
			),
		)
		panel.AddChild(c)
		return c
	}

	r := &RightPanelUI{
		Container:      panel,
		forms:          make(map[Mode]*widget.Container),
		relayoutTarget: panel,
	}

	metaForm := form()
	r.Meta = addMetaForm(metaForm, theme, fontFace, a)
	r.forms[ModeTerrain] = metaForm

	// Building, Upgrade and Demolish share the event list.
	eventsForm := form()
	r.Events = addEventsForm(eventsForm, theme, fontFace, a)
	r.forms[ModeBuilding] = eventsForm
	r.forms[ModeUpgrade] = eventsForm
	r.forms[ModeDemolish] = eventsForm

	catalogForm := form()
	r.Catalog = addCatalogForm(catalogForm, theme, fontFace, a)
	r.forms[ModeCatalog] = catalogForm

	prepForm := form()
	r.Prep = addPrepForm(prepForm, theme, fontFace, a)
	r.forms[ModePrep] = prepForm

	return r
}
