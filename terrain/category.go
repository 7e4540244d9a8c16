package terrain

import (
	"encoding/json"
	"fmt"
)

// Category selects which surface grid of a layer a building occupies and is
// collision-checked against.
type Category int

const (
	Floor Category = iota
	Wall
	Ceiling
)

// Categories lists every category in display order.
var Categories = [...]Category{Floor, Wall, Ceiling}

func (c Category) String() string {
	switch c {
	case Floor:
		return "Floor"
	case Wall:
		return "Wall"
	case Ceiling:
		return "Ceiling"
	default:
		return "Unknown"
	}
}

// ParseCategory maps the wire name back to a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "Floor":
		return Floor, nil
	case "Wall":
		return Wall, nil
	case "Ceiling":
		return Ceiling, nil
	}
	return Floor, fmt.Errorf("terrain: unknown category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	if c < Floor || c > Ceiling {
		return nil, fmt.Errorf("terrain: cannot marshal category %d", int(c))
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("terrain: category: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
