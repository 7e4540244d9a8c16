// Package catalog holds the building templates a designer can place. The
// catalog is read-only to placement logic; it is only replaced wholesale by
// a load or edited through the config editor.
package catalog

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/milk9111/waveplan/terrain"
)

// DefaultName is the template synthesized when no configs are loaded.
const DefaultName = "Default (1x1)"

// Fallback is the color used for buildings whose template cannot be found.
var Fallback = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Config is one catalog entry as stored in the catalog JSON file.
type Config struct {
	Name      string           `json:"name"`
	Category  terrain.Category `json:"b_type"`
	GridIndex [2]int           `json:"grid_index"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Color     [4]uint8         `json:"color"`
	IconPath  string           `json:"icon_path"`
	Cost      int              `json:"cost"`
}

// NewConfig returns the entry added by the config editor's "add" action.
func NewConfig() Config {
	return Config{
		Name:     "New Building",
		Category: terrain.Floor,
		Width:    2,
		Height:   1,
		Color:    [4]uint8{128, 128, 128, 255},
		IconPath: "icons/default.png",
		Cost:     100,
	}
}

// Template is the immutable view of a config used for placement.
type Template struct {
	Name      string
	Category  terrain.Category
	Width     int
	Height    int
	Color     color.RGBA
	IconPath  string
	Cost      int
	GridIndex [2]int
}

func (c Config) template() Template {
	return Template{
		Name:      c.Name,
		Category:  c.Category,
		Width:     c.Width,
		Height:    c.Height,
		Color:     color.RGBA{R: c.Color[0], G: c.Color[1], B: c.Color[2], A: c.Color[3]},
		IconPath:  c.IconPath,
		Cost:      c.Cost,
		GridIndex: c.GridIndex,
	}
}

func defaultTemplate() Template {
	return Template{Name: DefaultName, Category: terrain.Floor, Width: 1, Height: 1, Color: Fallback}
}

// Catalog is an ordered list of configs plus the templates derived from them.
// It always exposes at least one template.
type Catalog struct {
	configs   []Config
	templates []Template
}

// New builds a catalog from configs. An empty list yields the default
// template only.
func New(configs []Config) *Catalog {
	c := &Catalog{configs: append([]Config(nil), configs...)}
	c.rebuild()
	return c
}

func (c *Catalog) rebuild() {
	c.templates = c.templates[:0]
	for _, cfg := range c.configs {
		c.templates = append(c.templates, cfg.template())
	}
	if len(c.templates) == 0 {
		c.templates = append(c.templates, defaultTemplate())
	}
}

// Parse decodes a catalog JSON array.
func Parse(data []byte) (*Catalog, error) {
	var configs []Config
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("catalog: unmarshal: %w", err)
	}
	return New(configs), nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return c, nil
}

// Marshal encodes the configs as indented JSON.
func (c *Catalog) Marshal() ([]byte, error) {
	configs := c.configs
	if configs == nil {
		configs = []Config{}
	}
	return json.MarshalIndent(configs, "", "  ")
}

// Save writes the configs to path, creating parent directories.
func (c *Catalog) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("catalog: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", path, err)
	}
	return nil
}

// Len returns the number of templates, never zero.
func (c *Catalog) Len() int { return len(c.templates) }

// At returns template i.
func (c *Catalog) At(i int) Template { return c.templates[i] }

// Templates returns a copy of the template list.
func (c *Catalog) Templates() []Template {
	return append([]Template(nil), c.templates...)
}

// Config returns stored config i. The synthesized default template has no
// config, so a default-only catalog reports false for every index.
func (c *Catalog) Config(i int) (Config, bool) {
	if i < 0 || i >= len(c.configs) {
		return Config{}, false
	}
	return c.configs[i], true
}

// Configs returns a copy of the stored configs.
func (c *Catalog) Configs() []Config {
	return append([]Config(nil), c.configs...)
}

// Find returns the first template named name. Names are not unique; with
// duplicates the earliest entry wins.
func (c *Catalog) Find(name string) (Template, bool) {
	if i := c.Index(name); i >= 0 {
		return c.templates[i], true
	}
	return Template{}, false
}

// Index returns the position of the first template named name, or -1.
func (c *Catalog) Index(name string) int {
	for i, t := range c.templates {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// Duplicates lists names that appear more than once, in first-seen order.
func (c *Catalog) Duplicates() []string {
	seen := make(map[string]int, len(c.configs))
	var dups []string
	for _, cfg := range c.configs {
		seen[cfg.Name]++
		if seen[cfg.Name] == 2 {
			dups = append(dups, cfg.Name)
		}
	}
	return dups
}

// ColorOf returns the color of the first template named name, or Fallback.
func (c *Catalog) ColorOf(name string) color.RGBA {
	if t, ok := c.Find(name); ok {
		return t.Color
	}
	return Fallback
}

// Add appends cfg.
func (c *Catalog) Add(cfg Config) {
	c.configs = append(c.configs, cfg)
	c.rebuild()
}

// Update replaces config i.
func (c *Catalog) Update(i int, cfg Config) error {
	if i < 0 || i >= len(c.configs) {
		return fmt.Errorf("catalog: no config at index %d", i)
	}
	c.configs[i] = cfg
	c.rebuild()
	return nil
}

// Remove deletes config i.
func (c *Catalog) Remove(i int) error {
	if i < 0 || i >= len(c.configs) {
		return fmt.Errorf("catalog: no config at index %d", i)
	}
	c.configs = append(c.configs[:i], c.configs[i+1:]...)
	c.rebuild()
	return nil
}

// ByCategory returns the indexes of the templates in category cat, ordered
// by sheet position: grid_index row first, then column.
func (c *Catalog) ByCategory(cat terrain.Category) []int {
	var out []int
	for i, t := range c.templates {
		if t.Category == cat {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		ga, gb := c.templates[out[a]].GridIndex, c.templates[out[b]].GridIndex
		if ga[1] != gb[1] {
			return ga[1] < gb[1]
		}
		return ga[0] < gb[0]
	})
	return out
}
