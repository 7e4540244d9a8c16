package mapio

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/scene"
	"github.com/milk9111/waveplan/terrain"
	"github.com/milk9111/waveplan/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyTerrain = `{
  "map_name": "old",
  "meta": { "grid_pixel_size": 24, "offset_x": 3, "offset_y": 4 },
  "layers": [
    { "major_z": 0, "name": "Ground",
      "elevation_grid": [[0,0,1,-1],[0,0,1,-1],[-1,-1,-1,-1]] },
    { "major_z": 1, "name": "Upper",
      "floor_grid": [[2,2,2,2],[2,2,2,2],[2,2,2,2]] }
  ]
}`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportLegacyTerrain(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "old.json"), legacyTerrain)

	s := scene.New(40, 40)
	require.NoError(t, Codec{Validate: true}.ImportTerrain(path, s))

	store := s.Store()
	assert.Equal(t, 3, store.Rows())
	assert.Equal(t, 4, store.Cols())
	assert.Equal(t, []int{0, 1}, store.MajorZs())

	ground := store.Layer(0)
	assert.False(t, ground.Legacy())
	assert.Equal(t, terrain.Code(1), ground.Floor.At(0, 2))
	assert.Equal(t, terrain.Grid{{-1, -1, -1, -1}, {-1, -1, -1, -1}, {-1, -1, -1, -1}}, ground.Wall)
	assert.Equal(t, 3, store.Layer(1).Ceiling.Rows())

	m := s.Meta()
	assert.Equal(t, 24.0, m.GridPixelWidth)
	assert.Equal(t, 24.0, m.GridPixelHeight)
	assert.Equal(t, 3.0, m.OffsetX)
	assert.Equal(t, 1080.0, m.Bottom, "a missing bottom keeps the current value")
	assert.Empty(t, m.SafeAreas)
}

func TestImportFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	s := scene.New(5, 5)
	_, err := s.Paint(terrain.Floor, 2, 2, 0, 3)
	require.NoError(t, err)

	bad := writeFile(t, filepath.Join(dir, "bad.json"), `{"layers": [ {"major_z": 0, "floor_grid": [[0, 900]]} ]}`)
	err = Codec{Validate: true}.ImportTerrain(bad, s)
	require.ErrorIs(t, err, ErrSchema)

	broken := writeFile(t, filepath.Join(dir, "broken.json"), `{"layers": [`)
	assert.Error(t, Codec{}.ImportTerrain(broken, s))
	assert.Error(t, Codec{}.ImportTerrain(filepath.Join(dir, "missing.json"), s))

	assert.Equal(t, 5, s.Store().Rows())
	assert.Equal(t, terrain.Code(3), s.Store().Layer(0).Floor.At(2, 2))
}

func TestSchemaRejects(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		doc  string
	}{
		{"terrain_without_layers", KindTerrain, `{"map_name":"x"}`},
		{"terrain_bad_prep", KindTerrain, `{"layers":[],"meta":{"prep_actions":[{"Jump":{}}]}}`},
		{"strategy_bad_category", KindStrategy, `{"buildings":[{"uid":1,"name":"a","b_type":"Roof","grid_x":0,"grid_y":0,"width":1,"height":1,"wave_num":1,"is_late":false}]}`},
		{"strategy_zero_width", KindStrategy, `{"buildings":[{"uid":1,"name":"a","grid_x":0,"grid_y":0,"width":0,"height":1,"wave_num":1,"is_late":false}]}`},
		{"catalog_short_color", KindCatalog, `[{"name":"a","width":1,"height":1,"color":[1,2,3]}]`},
		{"catalog_not_array", KindCatalog, `{"name":"a"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tc.kind, []byte(tc.doc)), ErrSchema)
		})
	}

	assert.NoError(t, Validate(KindCatalog, []byte(`[{"name":"legacy","width":1,"height":1,"color":[1,2,3,4],"icon_path":""}]`)))
	assert.NoError(t, Validate(KindStrategy, []byte(`{"map_name":"m","buildings":[]}`)))
	assert.Error(t, Validate(KindTerrain, []byte(`{`)))
}

func TestStrategyDefaults(t *testing.T) {
	f, err := DecodeStrategy([]byte(`{"map_name":"m","buildings":[
		{"uid":1005,"name":"Turret","grid_x":2,"grid_y":3,"width":2,"height":1,"wave_num":4,"is_late":true},
		{"uid":1001,"name":"Gone","b_type":"Wall","grid_x":0,"grid_y":0,"width":1,"height":1,"wave_num":1,"is_late":false}
	]}`))
	require.NoError(t, err)

	cat := catalog.New([]catalog.Config{{Name: "Turret", Width: 2, Height: 1, Color: [4]uint8{9, 9, 9, 255}}})
	buildings, events := f.SceneBuildings(cat)
	require.Len(t, buildings, 2)
	assert.Equal(t, terrain.Floor, buildings[0].Category)
	assert.Equal(t, 2, buildings[0].X)
	assert.Equal(t, 3, buildings[0].Y)
	assert.Equal(t, timeline.Stamp{Wave: 4, Late: true}, buildings[0].Created)
	assert.Equal(t, uint8(9), buildings[0].Color.R)
	assert.Equal(t, terrain.Wall, buildings[1].Category)
	assert.Equal(t, catalog.Fallback, buildings[1].Color)
	assert.Empty(t, events.Upgrades)
	assert.Empty(t, events.Demolishes)
}

func buildScene(t *testing.T) (*scene.Scene, *catalog.Catalog) {
	t.Helper()
	cat := catalog.New([]catalog.Config{
		{Name: "Turret", Category: terrain.Floor, Width: 2, Height: 2, Color: [4]uint8{255, 0, 0, 255}, Cost: 100},
		{Name: "Lamp", Category: terrain.Ceiling, Width: 1, Height: 1, Color: [4]uint8{0, 0, 255, 255}},
	})
	s := scene.New(12, 10)
	for _, c := range terrain.Categories {
		_, err := s.Paint(c, 5, 5, 3, terrain.Ground)
		require.NoError(t, err)
	}
	s.AddLayer(5, "Roof")
	s.AddLayer(-1, "Basement")
	require.NoError(t, s.SetActiveLayer(0))

	m := s.Meta()
	m.Camera = scene.CameraSpeeds{Up: 1, Down: 2, Left: 3, Right: 4}
	m.SafeAreas = []scene.SafeArea{{MinX: 0, MinY: 0, MaxX: 640, MaxY: 360}}
	m.Prep.Add(scene.PrepAction{Kind: scene.PrepKeyDown, Key: "Space"})
	m.Prep.Add(scene.NewPrepAction(scene.PrepKeyUpAll))

	turret, _ := cat.Find("Turret")
	lamp, _ := cat.Find("Lamp")
	s.SetCursor(2, false)
	first, ok := s.PlaceBuilding(turret, 4, 4)
	require.True(t, ok)
	_, ok = s.PlaceBuilding(lamp, 4, 4)
	require.True(t, ok)
	s.AddUpgrade("Turret")
	s.SetCursor(6, true)
	require.True(t, s.ScheduleDemolish(first))
	return s, cat
}

func TestExportImportRoundTrip(t *testing.T) {
	s, cat := buildScene(t)
	out := t.TempDir()
	l := NewLayout(out, MapName("maps/level_07.terrain.json"))
	assert.Equal(t, filepath.Join(out, "level_07", "level_07_terrain.json"), l.Terrain)
	assert.Equal(t, filepath.Join(out, "level_07", "level_07_strategy.json"), l.Strategy)
	assert.Equal(t, filepath.Join(out, "level_07", "level_07_catalog.json"), l.Catalog)

	codec := Codec{Validate: true}
	require.NoError(t, codec.Export(l, s, cat))

	raw, err := os.ReadFile(l.Terrain)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "elevation_grid")
	assert.NotContains(t, string(raw), "grid_pixel_size")
	var doc struct {
		MapName string `json:"map_name"`
		Layers  []struct {
			MajorZ int `json:"major_z"`
		} `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "level_07", doc.MapName)
	require.Len(t, doc.Layers, 3)
	assert.Equal(t, []int{-1, 0, 5}, []int{doc.Layers[0].MajorZ, doc.Layers[1].MajorZ, doc.Layers[2].MajorZ})

	for kind, path := range map[Kind]string{KindTerrain: l.Terrain, KindStrategy: l.Strategy, KindCatalog: l.Catalog} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NoError(t, Validate(kind, data), kind.String())
	}

	back := scene.New(1, 1)
	require.NoError(t, codec.ImportTerrain(l.Terrain, back))
	loaded, err := codec.ReadCatalog(l.Catalog)
	require.NoError(t, err)
	require.NoError(t, codec.ImportStrategy(l.Strategy, back, loaded))

	assert.Equal(t, s.Store().Layers(), back.Store().Layers())
	assert.Equal(t, *s.Meta(), *back.Meta())
	assert.Equal(t, s.Buildings(), back.Buildings())
	assert.Equal(t, s.Upgrades(), back.Upgrades())
	assert.Equal(t, s.Demolishes(), back.Demolishes())
	assert.Equal(t, s.NextUID(), back.NextUID())
	assert.Equal(t, cat.Templates(), loaded.Templates())
}

func TestMapName(t *testing.T) {
	cases := map[string]string{
		"terrain_01.json":            "terrain_01",
		"maps/forest.v2.json":        "forest",
		filepath.Join("a", "b.json"): "b",
		"noext":                      "noext",
		"":                           "map",
		".hidden":                    "map",
	}
	for in, want := range cases {
		assert.Equal(t, want, MapName(in), in)
	}
}

func TestResolvePath(t *testing.T) {
	cases := []struct {
		dir, in, want string
	}{
		{"maps", "forest.json", filepath.Join("maps", "forest.json")},
		{"maps", "maps/forest.json", filepath.Join("maps", "forest.json")},
		{"maps", "icons/a.png", filepath.Join("maps", "icons", "a.png")},
		{"maps/", "maps/x.json", filepath.Join("maps", "x.json")},
		{"maps", "", ""},
		{"", "x.json", "x.json"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolvePath(tc.dir, tc.in), "%s + %s", tc.dir, tc.in)
	}
	abs := filepath.Join(t.TempDir(), "x.json")
	assert.Equal(t, abs, ResolvePath("maps", abs))
}

func TestApplyPreset(t *testing.T) {
	s, cat := buildScene(t)
	out := t.TempDir()
	l := NewLayout(out, "forest")
	require.NoError(t, Codec{}.Export(l, s, cat))

	presetsPath := writeFile(t, filepath.Join(out, "map_presets.json"), `[
		{"name":"Forest","image_path":"forest.png",
		 "terrain_path":"forest/forest_terrain.json",
		 "building_configs_path":"forest/forest_catalog.json",
		 "strategy_path":"forest/missing.json"}
	]`)
	presets, err := LoadPresets(presetsPath)
	require.NoError(t, err)
	require.Len(t, presets, 1)

	target := scene.New(3, 3)
	applied, err := Codec{Validate: true}.ApplyPreset(out, presets[0], target, catalog.New(nil), 0)
	require.Error(t, err, "the missing strategy is reported")
	assert.Contains(t, err.Error(), "missing.json")

	assert.Equal(t, filepath.Join(out, "forest.png"), applied.ImagePath)
	assert.Equal(t, "forest_terrain.json", applied.MapFile)
	require.NotNil(t, applied.Catalog)
	assert.Equal(t, 2, applied.Catalog.Len())
	assert.False(t, applied.Strategy)

	assert.Equal(t, 12, target.Store().Rows(), "terrain still loaded")
	assert.Empty(t, target.Buildings(), "strategy untouched")

	_, err = LoadPresets(filepath.Join(out, "nope.json"))
	assert.Error(t, err)
}

func TestApplyPresetImageBottom(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tall_terrain.json"), `{
	  "meta": { "grid_pixel_width": 32, "grid_pixel_height": 32, "bottom": 2000 },
	  "layers": [ { "major_z": 0, "name": "Ground", "floor_grid": [[0,0],[0,0]] } ]
	}`)
	writeFile(t, filepath.Join(dir, "flat_terrain.json"), `{
	  "meta": { "grid_pixel_width": 32, "grid_pixel_height": 32 },
	  "layers": [ { "major_z": 0, "name": "Ground", "floor_grid": [[0,0],[0,0]] } ]
	}`)

	cases := []struct {
		terrain     string
		imageHeight float64
		want        float64
	}{
		{"tall_terrain.json", 720, 2000},
		{"flat_terrain.json", 720, 720},
		{"flat_terrain.json", 0, scene.DefaultMeta().Bottom},
	}
	for _, tc := range cases {
		s := scene.New(2, 2)
		p := Preset{Name: "p", TerrainPath: tc.terrain}
		_, err := Codec{Validate: true}.ApplyPreset(dir, p, s, catalog.New(nil), tc.imageHeight)
		require.NoError(t, err)
		assert.Equal(t, tc.want, s.Meta().Bottom, "%s with image height %v", tc.terrain, tc.imageHeight)
	}
}

func TestBundleRoundTrip(t *testing.T) {
	s, cat := buildScene(t)
	src := NewLayout(t.TempDir(), "canyon")
	codec := Codec{Validate: true}
	require.NoError(t, codec.Export(src, s, cat))

	b, err := codec.Pack("canyon", src.Terrain, src.Strategy, "")
	require.NoError(t, err)
	require.NoError(t, WriteBundle(src.Bundle, b))

	got, err := ReadBundle(src.Bundle)
	require.NoError(t, err)
	assert.Equal(t, "canyon", got.MapName)
	assert.Empty(t, got.Catalog)

	dst, err := got.Unpack(t.TempDir())
	require.NoError(t, err)
	_, err = os.Stat(dst.Catalog)
	assert.True(t, os.IsNotExist(err))

	back := scene.New(1, 1)
	require.NoError(t, codec.ImportTerrain(dst.Terrain, back))
	require.NoError(t, codec.ImportStrategy(dst.Strategy, back, cat))
	assert.Equal(t, s.Buildings(), back.Buildings())
	assert.Equal(t, s.Store().Layers(), back.Store().Layers())

	_, err = codec.Pack("canyon", "", src.Strategy, "")
	assert.Error(t, err)

	plain := writeFile(t, filepath.Join(t.TempDir(), "plain.zst"), "not zstd")
	_, err = ReadBundle(plain)
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "mapio:"))
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseIntoKeepsCloseError(t *testing.T) {
	flush := errors.New("disk full")

	var err error
	closeInto(failingCloser{flush}, "out.json", &err)
	require.ErrorIs(t, err, flush)
	assert.Contains(t, err.Error(), "out.json")

	first := errors.New("encode failed")
	err = first
	closeInto(failingCloser{flush}, "out.json", &err)
	assert.Same(t, first, err, "an earlier error is not replaced")

	err = nil
	closeInto(failingCloser{}, "out.json", &err)
	assert.NoError(t, err)
}
