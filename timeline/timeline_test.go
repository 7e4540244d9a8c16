package timeline

import "testing"

func TestValueTotalOrder(t *testing.T) {
	seen := map[int]Stamp{}
	for w := -3; w <= 20; w++ {
		for _, late := range []bool{false, true} {
			s := Stamp{Wave: w, Late: late}
			v := s.Value()
			if prev, ok := seen[v]; ok {
				t.Fatalf("%v and %v share value %d", prev, s, v)
			}
			seen[v] = s
		}
		if Value(w, true) <= Value(w, false) {
			t.Fatalf("late must sort after early in wave %d", w)
		}
		if Value(w+1, false) <= Value(w, true) {
			t.Fatalf("wave %d must sort after wave %d late", w+1, w)
		}
	}
}

func TestStampString(t *testing.T) {
	cases := []struct {
		s    Stamp
		want string
	}{
		{Stamp{Wave: 3}, "W3"},
		{Stamp{Wave: 3, Late: true}, "W3L"},
		{Stamp{Wave: 0}, "W0"},
	}
	for _, tc := range cases {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.s, got, tc.want)
		}
	}
}

func TestActiveInterval(t *testing.T) {
	created := Stamp{Wave: 2, Late: true}
	demolish := Stamp{Wave: 5}
	e := &Events{Demolishes: []Demolish{{UID: 7, At: demolish}}}

	for now := created.Value() - 4; now <= demolish.Value()+4; now++ {
		want := now >= created.Value() && now < demolish.Value()
		if got := e.IsActive(created, 7, now); got != want {
			t.Fatalf("IsActive at %d = %v, want %v", now, got, want)
		}
	}
	if e.IsActive(created, 7, demolish.Value()) {
		t.Fatalf("building must be inactive exactly at the demolish time")
	}
	if !e.IsActive(created, 8, 1_000_000) {
		t.Fatalf("building without demolish event must stay active")
	}
}

func TestDemolitionTimeUsesEarliest(t *testing.T) {
	e := &Events{Demolishes: []Demolish{
		{UID: 1, At: Stamp{Wave: 9}},
		{UID: 1, At: Stamp{Wave: 4, Late: true}},
		{UID: 2, At: Stamp{Wave: 1}},
	}}
	if got := e.DemolitionTime(1); got != Value(4, true) {
		t.Fatalf("DemolitionTime(1) = %d, want %d", got, Value(4, true))
	}
	if got := e.DemolitionTime(3); got != Never {
		t.Fatalf("DemolitionTime(3) = %d, want Never", got)
	}
}

func TestPhaseAt(t *testing.T) {
	cases := []struct {
		name string
		now  int
		want Phase
	}{
		{"before", 1, Planned},
		{"at_create", 4, ActivePhase},
		{"inside", 6, ActivePhase},
		{"at_demolish", 8, Historical},
		{"after", 20, Historical},
		{"rewound", 5, ActivePhase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PhaseAt(4, 8, tc.now); got != tc.want {
				t.Fatalf("PhaseAt(4, 8, %d) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestEventListOperations(t *testing.T) {
	e := &Events{}
	e.AddUpgrade(Upgrade{BuildingName: "Archer", At: Stamp{Wave: 1}})
	e.AddUpgrade(Upgrade{BuildingName: "Archer", At: Stamp{Wave: 1}})
	e.AddUpgrade(Upgrade{BuildingName: "Cannon", At: Stamp{Wave: 3}})
	if len(e.Upgrades) != 3 {
		t.Fatalf("duplicate upgrades must be kept, got %d", len(e.Upgrades))
	}
	if got := len(e.UpgradesFor("Archer", Value(2, false))); got != 2 {
		t.Fatalf("UpgradesFor Archer = %d, want 2", got)
	}
	if got := len(e.UpgradesFor("Cannon", Value(2, false))); got != 0 {
		t.Fatalf("future upgrade counted as applied")
	}
	if !e.RemoveUpgrade(1) || e.RemoveUpgrade(5) {
		t.Fatalf("RemoveUpgrade index handling wrong")
	}
	if e.Upgrades[1].BuildingName != "Cannon" {
		t.Fatalf("RemoveUpgrade removed the wrong entry: %+v", e.Upgrades)
	}

	if !e.AddDemolish(Demolish{UID: 5}) {
		t.Fatalf("first demolish must be added")
	}
	if e.AddDemolish(Demolish{UID: 5, At: Stamp{Wave: 9}}) {
		t.Fatalf("second demolish for the same uid must be refused")
	}
	e.AddDemolish(Demolish{UID: 6})
	if dropped := e.Prune(func(uid int) bool { return uid == 6 }); dropped != 1 {
		t.Fatalf("Prune dropped %d, want 1", dropped)
	}
	if e.HasDemolish(5) || !e.HasDemolish(6) {
		t.Fatalf("Prune kept the wrong events: %+v", e.Demolishes)
	}
	if !e.RemoveDemolish(0) || len(e.Demolishes) != 0 {
		t.Fatalf("RemoveDemolish failed")
	}
}
