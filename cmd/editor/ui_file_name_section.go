package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// addFileNameSection adds the terrain file field. Enter imports the named
// file, as Ctrl+O does.
func addFileNameSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, initial string, onImport func(name string), onExport func()) *widget.TextInput {
	parent.AddChild(newLabel("Terrain file", fontFace))
	fileNameInput := newTextInput(fontFace, 200,
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			if onImport != nil && args.InputText != "" {
				onImport(args.InputText)
			}
		}),
	)
	fileNameInput.SetText(initial)
	parent.AddChild(fileNameInput)

	buttonsRow := newRow(6)
	buttonsRow.AddChild(newButton(theme, fontFace, "Import", func() {
		if onImport != nil {
			onImport(fileNameInput.GetText())
		}
	}))
	buttonsRow.AddChild(newButton(theme, fontFace, "Export", onExport))
	parent.AddChild(buttonsRow)
	return fileNameInput
}
