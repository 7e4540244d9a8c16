package placement

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/waveplan/terrain"
)

// Capability decides whether a terrain cell can carry a building category.
// It is only consulted for passable cells.
type Capability interface {
	Allows(c terrain.Category, code terrain.Code) bool
}

// AllowAll accepts every passable cell for every category.
type AllowAll struct{}

func (AllowAll) Allows(terrain.Category, terrain.Code) bool { return true }

const codeSpan = int(terrain.MaxTier-terrain.Obstacle) + 1

// ScriptCapability answers from a table filled in by running a tengo script
// once per category and elevation code. The script sees `category` (the
// category name) and `code` (an int) and sets `allowed`, which starts true.
//
//	allowed = !(category == "Ceiling" && code == 0)
type ScriptCapability struct {
	path  string
	table [len(terrain.Categories)][codeSpan]bool
}

// LoadScriptCapability compiles the script at path.
func LoadScriptCapability(path string) (*ScriptCapability, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("placement: read capability script %s: %w", path, err)
	}
	sc, err := NewScriptCapability(src)
	if err != nil {
		return nil, fmt.Errorf("placement: %s: %w", path, err)
	}
	sc.path = path
	return sc, nil
}

// NewScriptCapability compiles src and evaluates it for every category and
// valid elevation code.
func NewScriptCapability(src []byte) (*ScriptCapability, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("category", "")
	_ = script.Add("code", 0)
	_ = script.Add("allowed", true)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	sc := &ScriptCapability{}
	for ci, c := range terrain.Categories {
		for code := terrain.Obstacle; code <= terrain.MaxTier; code++ {
			if err := compiled.Set("category", c.String()); err != nil {
				return nil, err
			}
			if err := compiled.Set("code", int(code)); err != nil {
				return nil, err
			}
			if err := compiled.Set("allowed", true); err != nil {
				return nil, err
			}
			if err := compiled.Run(); err != nil {
				return nil, fmt.Errorf("run for %s/%d: %w", c, code, err)
			}
			sc.table[ci][int(code-terrain.Obstacle)] = compiled.Get("allowed").Bool()
		}
	}
	return sc, nil
}

// Path returns the script file the capability was loaded from, if any.
func (s *ScriptCapability) Path() string { return s.path }

func (s *ScriptCapability) Allows(c terrain.Category, code terrain.Code) bool {
	if !code.Valid() || c < terrain.Floor || c > terrain.Ceiling {
		return false
	}
	return s.table[int(c)][int(code-terrain.Obstacle)]
}
