package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/waveplan/catalog"
)

// CatalogForm edits one catalog config. Apply parses every field and
// reports the first bad one through onError.
type CatalogForm struct {
	index int

	name     *widget.TextInput
	category *widget.TextInput
	size     *widget.TextInput
	gridIdx  *widget.TextInput
	color    *widget.TextInput
	cost     *widget.TextInput
	icon     *widget.TextInput
}

func (f *CatalogForm) Load(index int, cfg catalog.Config) {
	if f == nil {
		return
	}
	f.index = index
	f.name.SetText(cfg.Name)
	f.category.SetText(cfg.Category.String())
	f.size.SetText(fmt.Sprintf("%d,%d", cfg.Width, cfg.Height))
	f.gridIdx.SetText(fmt.Sprintf("%d,%d", cfg.GridIndex[0], cfg.GridIndex[1]))
	f.color.SetText(formatColor(cfg.Color))
	f.cost.SetText(strconv.Itoa(cfg.Cost))
	f.icon.SetText(cfg.IconPath)
}

// Reset detaches the form from any config so Apply and Remove do nothing.
func (f *CatalogForm) Reset() {
	if f == nil {
		return
	}
	f.index = -1
}

func (f *CatalogForm) config() (catalog.Config, error) {
	cfg := catalog.Config{
		Name:     strings.TrimSpace(f.name.GetText()),
		IconPath: strings.TrimSpace(f.icon.GetText()),
	}
	var err error
	if cfg.Category, err = parseCategoryInput(f.category.GetText()); err != nil {
		return cfg, err
	}
	size, err := parseInts(f.size.GetText(), 2)
	if err != nil {
		return cfg, fmt.Errorf("size: %w", err)
	}
	cfg.Width, cfg.Height = size[0], size[1]
	idx, err := parseInts(f.gridIdx.GetText(), 2)
	if err != nil {
		return cfg, fmt.Errorf("grid index: %w", err)
	}
	cfg.GridIndex = [2]int{idx[0], idx[1]}
	if cfg.Color, err = parseColor(f.color.GetText()); err != nil {
		return cfg, err
	}
	if cfg.Cost, err = strconv.Atoi(strings.TrimSpace(f.cost.GetText())); err != nil {
		return cfg, fmt.Errorf("cost: %w", err)
	}
	return cfg, nil
}

func addCatalogForm(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, a *uiActions) *CatalogForm {
	f := &CatalogForm{index: -1}
	parent.AddChild(newLabel("Building config", fontFace))

	field := func(label string) *widget.TextInput {
		parent.AddChild(newLabel(label, fontFace))
		in := newTextInput(fontFace, 200)
		parent.AddChild(in)
		return in
	}
	f.name = field("Name")
	f.category = field("Category (Floor, Wall, Ceiling)")
	f.size = field("Size (w,h)")
	f.gridIdx = field("Grid index (col,row)")
	f.color = field("Color (r,g,b,a)")
	f.cost = field("Cost")
	f.icon = field("Icon path")

	row := newRow(6)
	row.AddChild(newButton(theme, fontFace, "Apply", func() {
		if f.index < 0 || a.onCatalogApply == nil {
			return
		}
		cfg, err := f.config()
		if err != nil {
			a.onError(err)
			return
		}
		a.onCatalogApply(f.index, cfg)
	}))
	row.AddChild(newButton(theme, fontFace, "Add", a.onCatalogAdd))
	row.AddChild(newButton(theme, fontFace, "Remove", func() {
		if f.index >= 0 && a.onCatalogRemove != nil {
			a.onCatalogRemove(f.index)
		}
	}))
	row.AddChild(newButton(theme, fontFace, "Save", a.onCatalogSave))
	parent.AddChild(row)
	return f
}
