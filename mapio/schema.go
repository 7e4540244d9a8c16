package mapio

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

// ErrSchema is wrapped by every schema validation failure.
var ErrSchema = errors.New("mapio: document does not match schema")

// Kind names one of the exported document types.
type Kind int

const (
	KindTerrain Kind = iota
	KindStrategy
	KindCatalog
)

func (k Kind) String() string {
	switch k {
	case KindTerrain:
		return "terrain"
	case KindStrategy:
		return "strategy"
	case KindCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// ParseKind maps "terrain", "strategy" or "catalog" to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindTerrain, KindStrategy, KindCatalog} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("mapio: unknown document kind %q", s)
}

var (
	schemasOnce sync.Once
	schemas     map[Kind]*jsonschema.Schema
	schemasErr  error
)

func loadSchemas() (map[Kind]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		out := make(map[Kind]*jsonschema.Schema, 3)
		for _, k := range []Kind{KindTerrain, KindStrategy, KindCatalog} {
			name := fmt.Sprintf("schemas/%s.schema.json", k)
			src, err := schemasFS.ReadFile(name)
			if err != nil {
				schemasErr = fmt.Errorf("mapio: read %s: %w", name, err)
				return
			}
			s, err := jsonschema.CompileString(name, string(src))
			if err != nil {
				schemasErr = fmt.Errorf("mapio: compile %s: %w", name, err)
				return
			}
			out[k] = s
		}
		schemas = out
	})
	return schemas, schemasErr
}

// Validate checks data against the embedded schema for kind. Legacy
// documents (single elevation grids, grid_pixel_size, catalogs without
// b_type) are accepted.
func Validate(kind Kind, data []byte) error {
	all, err := loadSchemas()
	if err != nil {
		return err
	}
	s, ok := all[kind]
	if !ok {
		return fmt.Errorf("mapio: no schema for %s", kind)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("mapio: %s: %w", kind, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchema, kind, err)
	}
	return nil
}
