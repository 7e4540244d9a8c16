// Package timeline orders waves and holds the upgrade and demolish event
// logs. A moment on the timeline is a wave number plus a late-phase flag,
// flattened into one integer key.
package timeline

import (
	"fmt"
	"math"
)

// Never is the demolition time of a building with no demolish event. It is
// larger than any Value.
const Never = math.MaxInt

// Value returns the ordering key of (wave, late): wave*2, plus one when late.
func Value(wave int, late bool) int {
	v := wave * 2
	if late {
		v++
	}
	return v
}

// Stamp is a point on the timeline.
type Stamp struct {
	Wave int
	Late bool
}

// Value returns the ordering key of s.
func (s Stamp) Value() int { return Value(s.Wave, s.Late) }

// String renders the stamp the way the editor labels buildings: W3 or W3L.
func (s Stamp) String() string {
	if s.Late {
		return fmt.Sprintf("W%dL", s.Wave)
	}
	return fmt.Sprintf("W%d", s.Wave)
}

// Active reports whether now falls in the half-open interval [created, demolish).
func Active(created, demolish, now int) bool {
	return now >= created && now < demolish
}

// Phase is the visible status of a placed building at some time.
type Phase int

const (
	Planned Phase = iota
	ActivePhase
	Historical
)

func (p Phase) String() string {
	switch p {
	case Planned:
		return "planned"
	case ActivePhase:
		return "active"
	case Historical:
		return "historical"
	default:
		return "unknown"
	}
}

// PhaseAt derives the phase from the two timestamps. Nothing is stored, so
// moving now backwards moves a historical building back to active.
func PhaseAt(created, demolish, now int) Phase {
	switch {
	case now >= demolish:
		return Historical
	case now < created:
		return Planned
	default:
		return ActivePhase
	}
}
