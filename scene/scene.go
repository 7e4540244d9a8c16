// Package scene owns the editable state of one map: the terrain store, the
// placed buildings, the event logs and the timeline cursor. The editor only
// changes a map through the methods here.
package scene

import (
	"fmt"
	"image/color"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/placement"
	"github.com/milk9111/waveplan/terrain"
	"github.com/milk9111/waveplan/timeline"
)

// BaseUID is the first uid handed out by a fresh scene.
const BaseUID = 1000

// Building is a placed instance of a template. Footprint, category and color
// are copied from the template when it is placed, so later catalog edits do
// not move or resize it.
type Building struct {
	UID          int
	TemplateName string
	Category     terrain.Category
	X, Y         int
	Width        int
	Height       int
	Color        color.RGBA
	Created      timeline.Stamp
}

// Rect returns the building footprint.
func (b Building) Rect() placement.Rect {
	return placement.Rect{Row: b.Y, Col: b.X, Width: b.Width, Height: b.Height}
}

func (b Building) occupant() placement.Occupant {
	return placement.Occupant{UID: b.UID, Category: b.Category, Rect: b.Rect(), Created: b.Created}
}

type Scene struct {
	store     *terrain.Store
	meta      Meta
	buildings []Building
	events    timeline.Events
	cursor    timeline.Stamp
	activeZ   int
	nextUID   int
	engine    placement.Engine
}

// New creates an empty scene with a rows x cols obstacle-filled default
// layer, the cursor at wave 1 and default map meta.
func New(rows, cols int) *Scene {
	return &Scene{
		store:   terrain.NewStore(rows, cols),
		meta:    DefaultMeta(),
		cursor:  timeline.Stamp{Wave: 1},
		nextUID: BaseUID,
	}
}

// SetCapability installs the terrain capability rule used by placement. nil
// restores the accept-everything default.
func (s *Scene) SetCapability(c placement.Capability) {
	s.engine.Capability = c
}

// Store exposes the terrain for rendering. Edits go through Paint and Resize.
func (s *Scene) Store() *terrain.Store { return s.store }

// Meta returns the map meta. It carries no placement invariants, so the
// editor edits it in place.
func (s *Scene) Meta() *Meta { return &s.meta }

// Buildings returns a copy of the placed buildings in placement order.
func (s *Scene) Buildings() []Building {
	return append([]Building(nil), s.buildings...)
}

// Building returns the building with uid.
func (s *Scene) Building(uid int) (Building, bool) {
	for _, b := range s.buildings {
		if b.UID == uid {
			return b, true
		}
	}
	return Building{}, false
}

func (s *Scene) Upgrades() []timeline.Upgrade {
	return append([]timeline.Upgrade(nil), s.events.Upgrades...)
}

func (s *Scene) Demolishes() []timeline.Demolish {
	return append([]timeline.Demolish(nil), s.events.Demolishes...)
}

// NextUID returns the uid the next placement will receive.
func (s *Scene) NextUID() int { return s.nextUID }

// SetCursor moves the timeline cursor.
func (s *Scene) SetCursor(wave int, late bool) {
	s.cursor = timeline.Stamp{Wave: wave, Late: late}
}

func (s *Scene) Cursor() timeline.Stamp { return s.cursor }

// Now returns the timeline key of the cursor.
func (s *Scene) Now() int { return s.cursor.Value() }

func (s *Scene) ActiveLayer() int { return s.activeZ }

// SetActiveLayer selects the layer edited and checked by placement.
func (s *Scene) SetActiveLayer(majorZ int) error {
	if _, ok := s.store.Lookup(majorZ); !ok {
		return fmt.Errorf("scene: no layer for major_z %d", majorZ)
	}
	s.activeZ = majorZ
	return nil
}

// AddLayer creates a layer and makes it active.
func (s *Scene) AddLayer(majorZ int, name string) {
	s.store.AddLayer(majorZ, name)
	s.activeZ = majorZ
}

// Paint writes value in a square brush on the active layer.
func (s *Scene) Paint(c terrain.Category, row, col, radius int, value terrain.Code) (int, error) {
	return s.store.Paint(s.activeZ, c, row, col, radius, value)
}

// Resize changes the grid dimensions of every layer.
func (s *Scene) Resize(rows, cols int) error {
	return s.store.Resize(rows, cols)
}

// DemolitionTime returns the earliest demolish time for uid, or
// timeline.Never.
func (s *Scene) DemolitionTime(uid int) int {
	return s.events.DemolitionTime(uid)
}

// IsActive reports whether b participates in the scene at the cursor.
func (s *Scene) IsActive(b Building) bool {
	return s.events.IsActive(b.Created, b.UID, s.Now())
}

// Phase returns whether b is planned, active or historical at the cursor.
func (s *Scene) Phase(b Building) timeline.Phase {
	return timeline.PhaseAt(b.Created.Value(), s.events.DemolitionTime(b.UID), s.Now())
}

// Status returns the phase of the building with uid.
func (s *Scene) Status(uid int) (timeline.Phase, bool) {
	b, ok := s.Building(uid)
	if !ok {
		return timeline.Planned, false
	}
	return s.Phase(b), true
}

func (s *Scene) request(c terrain.Category, r placement.Rect) placement.Request {
	occupants := make([]placement.Occupant, len(s.buildings))
	for i, b := range s.buildings {
		occupants[i] = b.occupant()
	}
	return placement.Request{
		Grid:       s.store.Layer(s.activeZ).Grid(c),
		Rows:       s.store.Rows(),
		Cols:       s.store.Cols(),
		Category:   c,
		Rect:       r,
		Now:        s.Now(),
		Occupants:  occupants,
		Demolition: s.events.DemolitionTime,
	}
}

func footprint(t catalog.Template, row, col int) placement.Rect {
	return placement.Rect{Row: row, Col: col, Width: t.Width, Height: t.Height}
}

// Explain reports why t could or could not be placed with its top-left cell
// at (row, col) at the cursor.
func (s *Scene) Explain(t catalog.Template, row, col int) placement.Reason {
	return s.engine.Explain(s.request(t.Category, footprint(t, row, col)))
}

// CanPlace reports whether t may be placed at (row, col) at the cursor.
func (s *Scene) CanPlace(t catalog.Template, row, col int) bool {
	return s.Explain(t, row, col) == placement.OK
}

// PlaceBuilding validates and appends a building for t at (row, col),
// created at the cursor. A rejected placement changes nothing.
func (s *Scene) PlaceBuilding(t catalog.Template, row, col int) (int, bool) {
	if !s.CanPlace(t, row, col) {
		return 0, false
	}
	uid := s.nextUID
	s.nextUID++
	s.buildings = append(s.buildings, Building{
		UID:          uid,
		TemplateName: t.Name,
		Category:     t.Category,
		X:            col,
		Y:            row,
		Width:        t.Width,
		Height:       t.Height,
		Color:        t.Color,
		Created:      s.cursor,
	})
	return uid, true
}

// EraseAt removes every building whose footprint contains (row, col),
// whatever its category or phase, then drops demolish events left without a
// building. It returns the removed uids.
func (s *Scene) EraseAt(row, col int) []int {
	var removed []int
	kept := s.buildings[:0]
	for _, b := range s.buildings {
		if b.Rect().Contains(row, col) {
			removed = append(removed, b.UID)
			continue
		}
		kept = append(kept, b)
	}
	s.buildings = kept
	if len(removed) > 0 {
		s.events.Prune(func(uid int) bool {
			_, ok := s.Building(uid)
			return ok
		})
	}
	return removed
}

// BuildingsAt returns the buildings covering (row, col) in placement order,
// only those active at the cursor when activeOnly is set.
func (s *Scene) BuildingsAt(row, col int, activeOnly bool) []Building {
	var out []Building
	for _, b := range s.buildings {
		if !b.Rect().Contains(row, col) {
			continue
		}
		if activeOnly && !s.IsActive(b) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// DemolishTargetAt returns the first building active at the cursor that
// covers (row, col).
func (s *Scene) DemolishTargetAt(row, col int) (Building, bool) {
	bs := s.BuildingsAt(row, col, true)
	if len(bs) == 0 {
		return Building{}, false
	}
	return bs[0], true
}

// ScheduleDemolish records a demolition of uid at the cursor. It returns
// false when uid is unknown or already has a demolish event.
func (s *Scene) ScheduleDemolish(uid int) bool {
	b, ok := s.Building(uid)
	if !ok {
		return false
	}
	return s.events.AddDemolish(timeline.Demolish{
		UID:    b.UID,
		Name:   b.TemplateName,
		X:      b.X,
		Y:      b.Y,
		Width:  b.Width,
		Height: b.Height,
		At:     s.cursor,
	})
}

// ScheduleDemolishAt schedules the demolish target under (row, col).
func (s *Scene) ScheduleDemolishAt(row, col int) (int, bool) {
	b, ok := s.DemolishTargetAt(row, col)
	if !ok {
		return 0, false
	}
	return b.UID, s.ScheduleDemolish(b.UID)
}

// AddUpgrade records an upgrade of every building named name at the cursor.
func (s *Scene) AddUpgrade(name string) {
	s.events.AddUpgrade(timeline.Upgrade{BuildingName: name, At: s.cursor})
}

func (s *Scene) RemoveUpgrade(i int) bool { return s.events.RemoveUpgrade(i) }

func (s *Scene) RemoveDemolish(i int) bool { return s.events.RemoveDemolish(i) }

// UpgradesApplied lists the upgrades already in effect for name at the
// cursor.
func (s *Scene) UpgradesApplied(name string) []timeline.Upgrade {
	return s.events.UpgradesFor(name, s.Now())
}

// ReplaceBuildings swaps in imported buildings and events. The uid counter
// restarts above the largest imported uid, or at BaseUID when there are no
// buildings.
func (s *Scene) ReplaceBuildings(buildings []Building, events timeline.Events) {
	s.buildings = append([]Building(nil), buildings...)
	s.events = timeline.Events{
		Upgrades:   append([]timeline.Upgrade(nil), events.Upgrades...),
		Demolishes: append([]timeline.Demolish(nil), events.Demolishes...),
	}
	s.nextUID = BaseUID
	if len(s.buildings) == 0 {
		return
	}
	max := s.buildings[0].UID
	for _, b := range s.buildings[1:] {
		if b.UID > max {
			max = b.UID
		}
	}
	s.nextUID = max + 1
}

// ReplaceTerrain swaps in imported layers and meta. On error the scene is
// unchanged.
func (s *Scene) ReplaceTerrain(layers []*terrain.Layer, meta Meta) error {
	if err := s.store.Replace(layers); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.meta = meta
	if _, ok := s.store.Lookup(s.activeZ); !ok {
		s.activeZ = 0
	}
	return nil
}

// RecolorFrom refreshes building colors from cat. Buildings whose template
// is gone keep their color.
func (s *Scene) RecolorFrom(cat *catalog.Catalog) {
	for i, b := range s.buildings {
		if t, ok := cat.Find(b.TemplateName); ok {
			s.buildings[i].Color = t.Color
		}
	}
}
