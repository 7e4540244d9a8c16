package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/milk9111/waveplan/terrain"
)

func TestEmptyCatalogHasDefault(t *testing.T) {
	c := New(nil)
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	d := c.At(0)
	if d.Name != DefaultName || d.Width != 1 || d.Height != 1 || d.Category != terrain.Floor {
		t.Fatalf("default template = %+v", d)
	}
	data, err := c.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("default template leaked into file: %s", data)
	}
}

func TestParseAndLookup(t *testing.T) {
	c, err := Parse([]byte(`[
		{"name":"Turret","b_type":"Floor","grid_index":[1,2],"width":2,"height":2,"color":[255,0,0,255],"icon_path":"icons/turret.png","cost":150},
		{"name":"Spike","b_type":"Ceiling","grid_index":[0,0],"width":1,"height":1,"color":[0,0,255,255],"icon_path":"","cost":20},
		{"name":"Turret","b_type":"Wall","grid_index":[0,0],"width":1,"height":1,"color":[0,255,0,255],"icon_path":"","cost":1}
	]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d", c.Len())
	}

	tpl, ok := c.Find("Turret")
	if !ok || tpl.Category != terrain.Floor || tpl.Cost != 150 || tpl.GridIndex != [2]int{1, 2} {
		t.Fatalf("Find(Turret) = %+v, %v", tpl, ok)
	}
	if _, ok := c.Find("Missing"); ok {
		t.Fatalf("Find(Missing) succeeded")
	}
	if got := c.ColorOf("Spike"); got.B != 255 || got.R != 0 {
		t.Fatalf("ColorOf(Spike) = %v", got)
	}
	if got := c.ColorOf("Missing"); got != Fallback {
		t.Fatalf("ColorOf(Missing) = %v", got)
	}
	if dups := c.Duplicates(); len(dups) != 1 || dups[0] != "Turret" {
		t.Fatalf("Duplicates = %v", dups)
	}
	if idx := c.ByCategory(terrain.Ceiling); len(idx) != 1 || idx[0] != 1 {
		t.Fatalf("ByCategory(Ceiling) = %v", idx)
	}

	sheet := New([]Config{
		{Name: "c", GridIndex: [2]int{0, 1}},
		{Name: "b", GridIndex: [2]int{2, 0}},
		{Name: "a", GridIndex: [2]int{1, 0}},
	})
	if idx := sheet.ByCategory(terrain.Floor); len(idx) != 3 || idx[0] != 2 || idx[1] != 1 || idx[2] != 0 {
		t.Fatalf("ByCategory sheet order = %v", idx)
	}

	if _, err := Parse([]byte(`{"name":"x"}`)); err == nil {
		t.Fatalf("expected error for non-array catalog")
	}
	if _, err := Parse([]byte(`[{"name":"x","b_type":"Roof"}]`)); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestEditAndSave(t *testing.T) {
	c := New(nil)
	c.Add(NewConfig())
	if c.Len() != 1 || c.At(0).Name != "New Building" {
		t.Fatalf("after Add: %+v", c.Templates())
	}

	cfg := NewConfig()
	cfg.Name = "Wall Gun"
	cfg.Category = terrain.Wall
	if err := c.Update(0, cfg); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.Update(3, cfg); err == nil {
		t.Fatalf("expected out of range update to fail")
	}
	c.Add(NewConfig())

	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	if err := c.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 2 || loaded.At(0).Name != "Wall Gun" || loaded.At(0).Category != terrain.Wall {
		t.Fatalf("loaded = %+v", loaded.Templates())
	}

	if err := loaded.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := loaded.Remove(5); err == nil {
		t.Fatalf("expected out of range remove to fail")
	}
	if err := loaded.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if loaded.Len() != 1 || loaded.At(0).Name != DefaultName {
		t.Fatalf("removing everything should leave the default, got %+v", loaded.Templates())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestIsWatched(t *testing.T) {
	cases := map[string]bool{
		"maps/catalog.json":   true,
		"maps/PRESETS.JSON":   true,
		"rules/cap.tengo":     true,
		"maps/catalog.json~":  false,
		"maps/background.png": false,
	}
	for path, want := range cases {
		if got := IsWatched(path); got != want {
			t.Errorf("IsWatched(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsCatalogWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != path {
			t.Fatalf("event for %q, want %q", name, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for catalog write")
	}
}

func TestWatcherDebounce(t *testing.T) {
	w := &Watcher{seen: map[string]time.Time{}}
	t0 := time.Unix(100, 0)
	write := fsnotify.Event{Name: "maps/catalog.json", Op: fsnotify.Write}

	if !w.wants(write, t0) {
		t.Fatalf("first write should be delivered")
	}
	if w.wants(write, t0.Add(debounce/2)) {
		t.Fatalf("repeat inside the debounce window should be dropped")
	}
	if !w.wants(write, t0.Add(2*debounce)) {
		t.Fatalf("write after the window should be delivered")
	}
	if w.wants(fsnotify.Event{Name: "maps/catalog.json", Op: fsnotify.Chmod}, t0.Add(time.Hour)) {
		t.Fatalf("chmod should be ignored")
	}
	if w.wants(fsnotify.Event{Name: "maps/bg.png", Op: fsnotify.Write}, t0) {
		t.Fatalf("non-catalog files should be ignored")
	}
}

func TestConfigAccessorBounds(t *testing.T) {
	c := New(nil)
	if c.Len() != 1 {
		t.Fatalf("default-only catalog should list one template, got %d", c.Len())
	}
	if _, ok := c.Config(0); ok {
		t.Fatalf("the synthesized default has no config")
	}

	c.Add(NewConfig())
	cfg, ok := c.Config(0)
	if !ok || cfg.Name != NewConfig().Name {
		t.Fatalf("Config(0) = %+v, %v", cfg, ok)
	}
	if _, ok := c.Config(-1); ok {
		t.Fatalf("negative index accepted")
	}
	if _, ok := c.Config(1); ok {
		t.Fatalf("index past the end accepted")
	}
}
