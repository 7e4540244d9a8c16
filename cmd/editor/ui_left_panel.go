package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func buildLeftPanelUI(theme *widget.Theme, fontFace *text.Face, a *uiActions, initialFile string) *LeftPanelUI {
	layerPanel := NewLayerPanel()
	layerPanel.onSelected = a.onLayerSelected
	layerPanel.onNewLayer = a.onNewLayer

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
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

	fileNameInput := addFileNameSection(leftPanel, theme, fontFace, initialFile, a.onImport, a.onExport)
	addLayersSection(leftPanel, theme, fontFace, layerPanel)
	timelineUI := addTimelineSection(leftPanel, theme, fontFace, a.onStep, a.onToggleLate)

	catalogList := addListSection(leftPanel, fontFace, "Buildings", 160, catalogEntryLabel, func(e any) {
		if c, ok := e.(CatalogEntry); ok && a.onTemplateSelected != nil {
			a.onTemplateSelected(c.Index)
		}
	})
	presetList := addListSection(leftPanel, fontFace, "Presets", 80, presetEntryLabel, func(e any) {
		if p, ok := e.(PresetEntry); ok && a.onPresetSelected != nil {
			a.onPresetSelected(p.Index)
		}
	})

	status := widget.NewText(
		widget.TextOpts.Text("", fontFace, color.RGBA{255, 220, 120, 255}),
		widget.TextOpts.MaxWidth(float64(leftPanelWidth-12)),
	)
	leftPanel.AddChild(status)

	return &LeftPanelUI{
		Container:     leftPanel,
		LayerPanel:    layerPanel,
		FileNameInput: fileNameInput,
		Timeline:      timelineUI,
		CatalogList:   catalogList,
		PresetList:    presetList,
		Status:        status,
	}
}
