package scene

import (
	"image/color"
	"testing"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/placement"
	"github.com/milk9111/waveplan/terrain"
	"github.com/milk9111/waveplan/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tower(name string, c terrain.Category, w, h int) catalog.Template {
	return catalog.Template{Name: name, Category: c, Width: w, Height: h, Color: color.RGBA{R: 200, A: 255}}
}

// groundScene returns a 40x40 scene with a 5x5 ground square centered on
// (10, 10) in every category grid.
func groundScene(t *testing.T) *Scene {
	t.Helper()
	s := New(40, 40)
	for _, c := range terrain.Categories {
		n, err := s.Paint(c, 10, 10, 2, terrain.Ground)
		require.NoError(t, err)
		require.Equal(t, 25, n)
	}
	return s
}

func TestPlacementAcrossDemolition(t *testing.T) {
	s := groundScene(t)
	s.SetCursor(1, false)
	floor := tower("Turret", terrain.Floor, 2, 2)

	assert.True(t, s.CanPlace(floor, 9, 9))
	uid, ok := s.PlaceBuilding(floor, 9, 9)
	require.True(t, ok)
	assert.Equal(t, BaseUID, uid)

	assert.False(t, s.CanPlace(floor, 10, 10))
	assert.Equal(t, placement.Occupied, s.Explain(floor, 10, 10))

	s.SetCursor(3, false)
	require.True(t, s.ScheduleDemolish(uid))
	s.SetCursor(2, true)
	assert.False(t, s.CanPlace(floor, 10, 10), "still standing before the demolish time")
	s.SetCursor(3, false)
	assert.True(t, s.CanPlace(floor, 10, 10), "free at the demolish time")
	s.SetCursor(5, false)
	second, ok := s.PlaceBuilding(floor, 10, 10)
	require.True(t, ok)
	assert.Greater(t, second, uid)

	// Rewinding brings the first building back; both records still exist.
	s.SetCursor(1, false)
	assert.Len(t, s.Buildings(), 2)
	phase, ok := s.Status(uid)
	require.True(t, ok)
	assert.Equal(t, timeline.ActivePhase, phase)
	phase, _ = s.Status(second)
	assert.Equal(t, timeline.Planned, phase)
	s.SetCursor(5, false)
	phase, _ = s.Status(uid)
	assert.Equal(t, timeline.Historical, phase)
}

func TestPlacementRejectsTerrain(t *testing.T) {
	s := groundScene(t)
	floor := tower("Turret", terrain.Floor, 2, 2)

	assert.Equal(t, placement.Obstacle, s.Explain(floor, 0, 0))
	assert.Equal(t, placement.Uneven, s.Explain(floor, 12, 12))
	assert.Equal(t, placement.OutOfBounds, s.Explain(floor, 39, 39))
	assert.Equal(t, placement.OutOfBounds, s.Explain(floor, -1, 9))

	_, ok := s.PlaceBuilding(floor, 0, 0)
	assert.False(t, ok)
	assert.Empty(t, s.Buildings())
	assert.Equal(t, BaseUID, s.NextUID(), "a rejected placement must not consume a uid")
}

func TestCrossCategoryIndependence(t *testing.T) {
	s := groundScene(t)
	for _, c := range terrain.Categories {
		_, ok := s.PlaceBuilding(tower(c.String(), c, 3, 3), 9, 9)
		assert.True(t, ok, "category %s", c)
	}
	assert.Len(t, s.BuildingsAt(10, 10, true), 3)
}

func TestEraseCascadesDemolish(t *testing.T) {
	s := groundScene(t)
	floor := tower("Turret", terrain.Floor, 1, 1)
	wall := tower("Vent", terrain.Wall, 2, 2)

	a, ok := s.PlaceBuilding(floor, 10, 10)
	require.True(t, ok)
	b, ok := s.PlaceBuilding(wall, 9, 9)
	require.True(t, ok)
	c, ok := s.PlaceBuilding(floor, 8, 8)
	require.True(t, ok)

	require.True(t, s.ScheduleDemolish(a))
	require.True(t, s.ScheduleDemolish(b))
	require.True(t, s.ScheduleDemolish(c))
	assert.False(t, s.ScheduleDemolish(a), "second demolish for the same uid")
	assert.False(t, s.ScheduleDemolish(4242), "unknown uid")

	removed := s.EraseAt(10, 10)
	assert.ElementsMatch(t, []int{a, b}, removed)

	demolishes := s.Demolishes()
	require.Len(t, demolishes, 1)
	assert.Equal(t, c, demolishes[0].UID)
	assert.Empty(t, s.Audit())

	assert.Empty(t, s.EraseAt(30, 30))
}

func TestEraseIgnoresPhase(t *testing.T) {
	s := groundScene(t)
	s.SetCursor(4, false)
	uid, ok := s.PlaceBuilding(tower("Turret", terrain.Floor, 1, 1), 10, 10)
	require.True(t, ok)

	s.SetCursor(1, false)
	assert.Empty(t, s.BuildingsAt(10, 10, true))
	assert.Len(t, s.BuildingsAt(10, 10, false), 1)
	assert.Equal(t, []int{uid}, s.EraseAt(10, 10))
}

func TestUIDMonotonic(t *testing.T) {
	s := groundScene(t)
	floor := tower("Turret", terrain.Floor, 1, 1)

	seen := BaseUID - 1
	for _, cell := range [][2]int{{8, 8}, {8, 9}, {8, 10}} {
		uid, ok := s.PlaceBuilding(floor, cell[0], cell[1])
		require.True(t, ok)
		assert.Greater(t, uid, seen)
		seen = uid
	}

	// Erasing the newest building does not free its uid.
	s.EraseAt(8, 10)
	uid, ok := s.PlaceBuilding(floor, 9, 9)
	require.True(t, ok)
	assert.Greater(t, uid, seen)

	s.ReplaceBuildings([]Building{
		{UID: 5000, TemplateName: "Turret", Width: 1, Height: 1},
		{UID: 1200, TemplateName: "Turret", Width: 1, Height: 1, X: 1},
	}, timeline.Events{})
	assert.Equal(t, 5001, s.NextUID())

	s.ReplaceBuildings(nil, timeline.Events{})
	assert.Equal(t, BaseUID, s.NextUID())
}

func TestDemolishTargeting(t *testing.T) {
	s := groundScene(t)
	s.SetCursor(2, false)
	first, ok := s.PlaceBuilding(tower("A", terrain.Floor, 2, 2), 9, 9)
	require.True(t, ok)
	_, ok = s.PlaceBuilding(tower("B", terrain.Ceiling, 2, 2), 9, 9)
	require.True(t, ok)

	s.SetCursor(1, true)
	_, ok = s.DemolishTargetAt(9, 9)
	assert.False(t, ok, "nothing is active before wave 2")

	s.SetCursor(3, true)
	target, ok := s.DemolishTargetAt(10, 10)
	require.True(t, ok)
	assert.Equal(t, first, target.UID)

	uid, ok := s.ScheduleDemolishAt(10, 10)
	require.True(t, ok)
	assert.Equal(t, first, uid)
	d := s.Demolishes()[0]
	assert.Equal(t, timeline.Stamp{Wave: 3, Late: true}, d.At)
	assert.Equal(t, "A", d.Name)
	assert.Equal(t, [4]int{9, 9, 2, 2}, [4]int{d.X, d.Y, d.Width, d.Height})

	// The first building is gone at the cursor now, so the ceiling one is next.
	target, ok = s.DemolishTargetAt(10, 10)
	require.True(t, ok)
	assert.Equal(t, "B", target.TemplateName)
	assert.True(t, s.RemoveDemolish(0))
	assert.False(t, s.RemoveDemolish(0))
}

func TestUpgrades(t *testing.T) {
	s := New(4, 4)
	s.SetCursor(2, false)
	s.AddUpgrade("Turret")
	s.SetCursor(4, true)
	s.AddUpgrade("Turret")

	s.SetCursor(3, false)
	assert.Len(t, s.UpgradesApplied("Turret"), 1)
	s.SetCursor(4, true)
	assert.Len(t, s.UpgradesApplied("Turret"), 2)
	assert.Empty(t, s.UpgradesApplied("Spike"))

	assert.True(t, s.RemoveUpgrade(1))
	assert.False(t, s.RemoveUpgrade(3))
	assert.Len(t, s.Upgrades(), 1)
}

func TestLayersAndTerrainReplace(t *testing.T) {
	s := New(10, 10)
	assert.Error(t, s.SetActiveLayer(3))

	s.AddLayer(2, "Upper")
	assert.Equal(t, 2, s.ActiveLayer())
	_, err := s.Paint(terrain.Floor, 0, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, terrain.Code(1), s.Store().Layer(2).Floor.At(0, 0))
	assert.Equal(t, terrain.Obstacle, s.Store().Layer(0).Floor.At(0, 0))

	_, err = s.Paint(terrain.Floor, 0, 0, 0, 9)
	assert.ErrorIs(t, err, terrain.ErrInvalidCode)

	legacy := &terrain.Layer{MajorZ: 0, Name: "Old", Elevation: terrain.NewGrid(6, 8, 0)}
	meta := DefaultMeta()
	meta.GridPixelWidth = 16
	require.NoError(t, s.ReplaceTerrain([]*terrain.Layer{legacy}, meta))
	assert.Equal(t, 0, s.ActiveLayer(), "active layer falls back when it disappears")
	assert.Equal(t, 6, s.Store().Rows())
	assert.Equal(t, 8, s.Store().Cols())
	assert.Equal(t, 16.0, s.Meta().GridPixelWidth)

	err = s.ReplaceTerrain([]*terrain.Layer{{MajorZ: 0}}, DefaultMeta())
	require.NoError(t, err, "an import without data keeps the current size")
	assert.Equal(t, 6, s.Store().Rows())

	require.NoError(t, s.Resize(3, 3))
	assert.Error(t, s.Resize(0, 3))
}

func TestAuditFindsImportedConflicts(t *testing.T) {
	s := groundScene(t)
	s.ReplaceBuildings([]Building{
		{UID: 1, TemplateName: "A", Category: terrain.Floor, X: 9, Y: 9, Width: 2, Height: 2, Created: timeline.Stamp{Wave: 1}},
		{UID: 2, TemplateName: "B", Category: terrain.Floor, X: 10, Y: 10, Width: 2, Height: 2, Created: timeline.Stamp{Wave: 2}},
		{UID: 3, TemplateName: "C", Category: terrain.Floor, X: 0, Y: 0, Width: 1, Height: 1, Created: timeline.Stamp{Wave: 1}},
	}, timeline.Events{
		Demolishes: []timeline.Demolish{{UID: 7, At: timeline.Stamp{Wave: 3}}},
	})

	findings := s.Audit()
	require.Len(t, findings, 3)
	assert.Equal(t, Finding{Kind: Overlap, UID: 1, Other: 2}, findings[0])
	assert.Equal(t, Finding{Kind: BadTerrain, UID: 3, Reason: placement.Obstacle}, findings[1])
	assert.Equal(t, Finding{Kind: DanglingDemolish, UID: 7}, findings[2])
	assert.Contains(t, findings[0].String(), "#1 and #2")
}

func TestHover(t *testing.T) {
	s := groundScene(t)
	s.Meta().GridPixelWidth = 16
	s.Meta().GridPixelHeight = 8
	_, ok := s.PlaceBuilding(tower("Turret", terrain.Floor, 1, 1), 10, 11)
	require.True(t, ok)

	h, ok := s.Hover(10, 11, terrain.Floor)
	require.True(t, ok)
	assert.Equal(t, 176.0, h.PixelX)
	assert.Equal(t, 80.0, h.PixelY)
	assert.Equal(t, terrain.Ground, h.Code)
	require.Len(t, h.Buildings, 1)
	assert.Contains(t, h.String(), "Grid: (11, 10)")
	assert.Contains(t, h.String(), "- Turret (Floor)")

	_, ok = s.Hover(40, 0, terrain.Floor)
	assert.False(t, ok)
}

func TestRecolorFrom(t *testing.T) {
	s := groundScene(t)
	uid, ok := s.PlaceBuilding(tower("Turret", terrain.Floor, 1, 1), 10, 10)
	require.True(t, ok)
	orphan, ok := s.PlaceBuilding(tower("Gone", terrain.Floor, 1, 1), 10, 11)
	require.True(t, ok)

	cat := catalog.New([]catalog.Config{{Name: "Turret", Width: 1, Height: 1, Color: [4]uint8{1, 2, 3, 255}}})
	s.RecolorFrom(cat)

	b, _ := s.Building(uid)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, b.Color)
	b, _ = s.Building(orphan)
	assert.Equal(t, color.RGBA{R: 200, A: 255}, b.Color)
}

func TestScriptCapabilityInScene(t *testing.T) {
	s := groundScene(t)
	capability, err := placement.NewScriptCapability([]byte(`allowed = category != "Ceiling"`))
	require.NoError(t, err)
	s.SetCapability(capability)

	assert.Equal(t, placement.Incapable, s.Explain(tower("Lamp", terrain.Ceiling, 1, 1), 10, 10))
	assert.True(t, s.CanPlace(tower("Turret", terrain.Floor, 1, 1), 10, 10))

	s.SetCapability(nil)
	assert.True(t, s.CanPlace(tower("Lamp", terrain.Ceiling, 1, 1), 10, 10))
}
