package timeline

// Upgrade is a global instruction: every building named BuildingName that
// exists at or after At is upgraded. It never changes a footprint.
type Upgrade struct {
	BuildingName string
	At           Stamp
}

// Demolish schedules the removal of one placed building. Origin and
// footprint are captured when the event is created.
type Demolish struct {
	UID    int
	Name   string
	X, Y   int
	Width  int
	Height int
	At     Stamp
}

// Events is the ordered log of upgrade and demolish instructions.
type Events struct {
	Upgrades   []Upgrade
	Demolishes []Demolish
}

// DemolitionTime returns the earliest demolish time recorded for uid, or
// Never.
func (e *Events) DemolitionTime(uid int) int {
	t := Never
	for _, d := range e.Demolishes {
		if d.UID != uid {
			continue
		}
		if v := d.At.Value(); v < t {
			t = v
		}
	}
	return t
}

// IsActive reports whether a building created at created with identity uid
// participates in the scene at now.
func (e *Events) IsActive(created Stamp, uid int, now int) bool {
	return Active(created.Value(), e.DemolitionTime(uid), now)
}

// HasDemolish reports whether a demolish event exists for uid.
func (e *Events) HasDemolish(uid int) bool {
	for _, d := range e.Demolishes {
		if d.UID == uid {
			return true
		}
	}
	return false
}

// AddUpgrade appends an upgrade. Duplicates are kept: the log is a list of
// instructions, not a set.
func (e *Events) AddUpgrade(u Upgrade) {
	e.Upgrades = append(e.Upgrades, u)
}

// AddDemolish appends d unless uid already has a demolish event.
func (e *Events) AddDemolish(d Demolish) bool {
	if e.HasDemolish(d.UID) {
		return false
	}
	e.Demolishes = append(e.Demolishes, d)
	return true
}

// RemoveUpgrade deletes the upgrade at index i. Out-of-range indexes are
// ignored.
func (e *Events) RemoveUpgrade(i int) bool {
	if i < 0 || i >= len(e.Upgrades) {
		return false
	}
	e.Upgrades = append(e.Upgrades[:i], e.Upgrades[i+1:]...)
	return true
}

// RemoveDemolish deletes the demolish event at index i.
func (e *Events) RemoveDemolish(i int) bool {
	if i < 0 || i >= len(e.Demolishes) {
		return false
	}
	e.Demolishes = append(e.Demolishes[:i], e.Demolishes[i+1:]...)
	return true
}

// Prune drops every demolish event whose uid is not kept.
func (e *Events) Prune(keep func(uid int) bool) int {
	kept := e.Demolishes[:0]
	dropped := 0
	for _, d := range e.Demolishes {
		if keep(d.UID) {
			kept = append(kept, d)
			continue
		}
		dropped++
	}
	e.Demolishes = kept
	return dropped
}

// UpgradesFor returns the upgrades for name that have already happened at now.
func (e *Events) UpgradesFor(name string, now int) []Upgrade {
	var out []Upgrade
	for _, u := range e.Upgrades {
		if u.BuildingName == name && u.At.Value() <= now {
			out = append(out, u)
		}
	}
	return out
}
