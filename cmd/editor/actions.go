package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/scene"
)

// actions binds the widget callbacks to the editor.
func (g *EditorGame) actions() *uiActions {
	return &uiActions{
		onError:        g.reportError,
		onModeSelected: g.setMode,
		onLayerSelected: func(majorZ int) {
			if err := g.scene.SetActiveLayer(majorZ); err != nil {
				g.reportError(err)
			}
		},
		onNewLayer: func(majorZ int) {
			g.scene.AddLayer(majorZ, "")
			g.refreshLayers()
			g.setStatus("Added layer z=%d", majorZ)
		},
		onImport: func(name string) {
			g.importTerrain(name)
			g.refreshAll()
		},
		onExport:     g.exportAll,
		onStep:       g.stepWave,
		onToggleLate: g.toggleLate,

		onTemplateSelected: func(index int) {
			g.selected = index
			if g.mode == ModeCatalog {
				g.loadCatalogForm()
			}
		},
		onPresetSelected: g.applyPreset,

		onCatalogAdd: func() {
			g.catalog.Add(catalog.NewConfig())
			g.selected = g.catalog.Len() - 1
			g.refreshCatalog()
			g.loadCatalogForm()
		},
		onCatalogRemove: func(index int) {
			if err := g.catalog.Remove(index); err != nil {
				g.reportError(err)
				return
			}
			g.selected = -1
			g.right.Catalog.Reset()
			g.refreshCatalog()
		},
		onCatalogApply: func(index int, cfg catalog.Config) {
			if err := g.catalog.Update(index, cfg); err != nil {
				g.reportError(err)
				return
			}
			g.scene.RecolorFrom(g.catalog)
			g.refreshCatalog()
			g.setStatus("Updated %s", cfg.Name)
		},
		onCatalogSave: g.saveCatalog,

		onRemoveUpgrade: func(i int) {
			if g.scene.RemoveUpgrade(i) {
				g.refreshEvents()
			}
		},
		onRemoveDemolish: func(i int) {
			if g.scene.RemoveDemolish(i) {
				g.refreshEvents()
			}
		},

		onPrepAdd: func(kind scene.PrepKind) {
			m := g.scene.Meta()
			m.Prep.Add(scene.NewPrepAction(kind))
			g.prepSel = len(m.Prep) - 1
			g.refreshPrep()
		},
		onPrepSelected: func(i int) {
			if i < 0 || i >= len(g.scene.Meta().Prep) {
				return
			}
			g.prepSel = i
			g.right.Prep.value.SetText(prepValue(g.scene.Meta().Prep[i]))
		},
		onPrepRemove: func(i int) {
			if g.scene.Meta().Prep.Remove(i) {
				g.prepSel = -1
				g.refreshPrep()
			}
		},
		onPrepUp: func(i int) {
			if g.scene.Meta().Prep.MoveUp(i) {
				g.prepSel = i - 1
				g.refreshPrep()
			}
		},
		onPrepDown: func(i int) {
			if g.scene.Meta().Prep.MoveDown(i) {
				g.prepSel = i + 1
				g.refreshPrep()
			}
		},
		onPrepEdit: func(i int, value string) {
			if err := setPrepValue(&g.scene.Meta().Prep[i], value); err != nil {
				g.reportError(err)
				return
			}
			g.refreshPrep()
		},

		onMetaApply: func(apply func(m *scene.Meta) error) {
			if err := apply(g.scene.Meta()); err != nil {
				g.reportError(err)
				return
			}
			g.setStatus("Meta updated")
		},
		onResize: func(rows, cols int) {
			if err := g.scene.Resize(rows, cols); err != nil {
				g.reportError(err)
				return
			}
			g.right.Meta.SetGridSize(rows, cols)
			g.setStatus("Grid resized to %dx%d", rows, cols)
		},
		onSafeAreaAdd: func() {
			g.scene.Meta().AddSafeArea()
			g.right.Meta.SetMeta(*g.scene.Meta())
		},
		onSafeAreaRemove: func(i int) {
			if g.scene.Meta().RemoveSafeArea(i) {
				g.right.Meta.SetMeta(*g.scene.Meta())
			}
		},
		onSafeAreaEdit: func(i int, a scene.SafeArea) {
			m := g.scene.Meta()
			if i < 0 || i >= len(m.SafeAreas) {
				return
			}
			m.SafeAreas[i] = a
			g.right.Meta.SetMeta(*m)
		},
	}
}

// prepValue is the editable field of a prep action.
func prepValue(a scene.PrepAction) string {
	switch a.Kind {
	case scene.PrepLog:
		return a.Msg
	case scene.PrepKeyDown, scene.PrepKeyUp:
		return a.Key
	case scene.PrepWait:
		return strconv.Itoa(a.Ms)
	default:
		return ""
	}
}

func setPrepValue(a *scene.PrepAction, value string) error {
	switch a.Kind {
	case scene.PrepLog:
		a.Msg = value
	case scene.PrepKeyDown, scene.PrepKeyUp:
		a.Key = strings.TrimSpace(value)
	case scene.PrepWait:
		ms, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || ms < 0 {
			return fmt.Errorf("wait: %q is not a number of milliseconds", value)
		}
		a.Ms = ms
	}
	return nil
}
