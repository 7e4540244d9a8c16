package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/scene"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	leftPanelWidth  = 240
	rightPanelWidth = 260
	modeBarHeight   = 44
)

// uiActions are the callbacks the widgets invoke. Nil entries are ignored.
type uiActions struct {
	onError func(err error)

	onModeSelected  func(m Mode)
	onLayerSelected func(majorZ int)
	onNewLayer      func(majorZ int)
	onImport        func(name string)
	onExport        func()
	onStep          func(delta int)
	onToggleLate    func()

	onTemplateSelected func(index int)
	onPresetSelected   func(index int)

	onCatalogAdd    func()
	onCatalogRemove func(index int)
	onCatalogApply  func(index int, cfg catalog.Config)
	onCatalogSave   func()

	onRemoveUpgrade  func(i int)
	onRemoveDemolish func(i int)

	onPrepAdd      func(kind scene.PrepKind)
	onPrepSelected func(i int)
	onPrepRemove   func(i int)
	onPrepUp       func(i int)
	onPrepDown     func(i int)
	onPrepEdit     func(i int, value string)

	onMetaApply      func(apply func(m *scene.Meta) error)
	onResize         func(rows, cols int)
	onSafeAreaAdd    func()
	onSafeAreaRemove func(i int)
	onSafeAreaEdit   func(i int, a scene.SafeArea)
}

func BuildEditorUI(a *uiActions, initialFile string, initialMode Mode) (*ebitenui.UI, *ModeBar, *LeftPanelUI, *RightPanelUI) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	leftPanel := buildLeftPanelUI(ui.PrimaryTheme, &fontFace, a, initialFile)
	rightPanel := buildRightPanelUI(ui.PrimaryTheme, &fontFace, a)
	modeBarContainer, modeBar := buildModeBar(ui.PrimaryTheme, &fontFace, a.onModeSelected, initialMode)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	modeBarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel.Container)
	root.AddChild(rightPanel.Container)
	root.AddChild(modeBarContainer)
	ui.Container = root

	rightPanel.ShowMode(initialMode)
	return ui, modeBar, leftPanel, rightPanel
}
