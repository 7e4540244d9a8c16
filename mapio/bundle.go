package mapio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const bundleVersion = 1

// Bundle packs the three documents of one map into a single zstd-compressed
// JSON envelope. Strategy and Catalog may be absent.
type Bundle struct {
	Version  int             `json:"version"`
	MapName  string          `json:"map_name"`
	Terrain  json.RawMessage `json:"terrain"`
	Strategy json.RawMessage `json:"strategy,omitempty"`
	Catalog  json.RawMessage `json:"catalog,omitempty"`
}

// Pack reads the documents at the given paths. Empty strategy or catalog
// paths are skipped. Documents are validated when the codec asks for it.
func (c Codec) Pack(mapName, terrainPath, strategyPath, catalogPath string) (*Bundle, error) {
	b := &Bundle{Version: bundleVersion, MapName: mapName}
	parts := []struct {
		kind Kind
		path string
		dst  *json.RawMessage
	}{
		{KindTerrain, terrainPath, &b.Terrain},
		{KindStrategy, strategyPath, &b.Strategy},
		{KindCatalog, catalogPath, &b.Catalog},
	}
	for _, p := range parts {
		if p.path == "" {
			if p.kind == KindTerrain {
				return nil, fmt.Errorf("mapio: bundle %s: terrain is required", mapName)
			}
			continue
		}
		data, err := readFile(p.path)
		if err != nil {
			return nil, err
		}
		if err := c.check(p.kind, data); err != nil {
			return nil, fmt.Errorf("%s: %w", p.path, err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("mapio: %s: not valid JSON", p.path)
		}
		*p.dst = json.RawMessage(data)
	}
	return b, nil
}

// WriteBundle compresses b to path.
func WriteBundle(path string, b *Bundle) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mapio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapio: create %s: %w", path, err)
	}
	defer closeInto(f, path, &err)

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("mapio: zstd: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(b); err != nil {
		_ = enc.Close()
		return fmt.Errorf("mapio: encode bundle: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("mapio: zstd close %s: %w", path, err)
	}
	return nil
}

// ReadBundle decompresses the bundle at path.
func ReadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapio: open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("mapio: zstd: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mapio: decompress %s: %w", path, err)
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("mapio: bundle %s: %w", path, err)
	}
	if b.Version != bundleVersion {
		return nil, fmt.Errorf("mapio: bundle %s: unsupported version %d", path, b.Version)
	}
	if len(b.Terrain) == 0 {
		return nil, fmt.Errorf("mapio: bundle %s: missing terrain", path)
	}
	return &b, nil
}

// Unpack writes the bundled documents into the layout of b.MapName under
// outputDir and returns that layout.
func (b *Bundle) Unpack(outputDir string) (Layout, error) {
	name := b.MapName
	if name == "" {
		name = "map"
	}
	l := NewLayout(outputDir, name)
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return l, fmt.Errorf("mapio: %w", err)
	}
	files := []struct {
		path string
		data json.RawMessage
	}{
		{l.Terrain, b.Terrain},
		{l.Strategy, b.Strategy},
		{l.Catalog, b.Catalog},
	}
	for _, f := range files {
		if len(f.data) == 0 {
			continue
		}
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			return l, fmt.Errorf("mapio: write %s: %w", f.path, err)
		}
	}
	return l, nil
}
