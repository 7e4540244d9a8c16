// Command mapctl checks and converts exported map documents without the
// editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/milk9111/waveplan/catalog"
	"github.com/milk9111/waveplan/mapio"
	"github.com/milk9111/waveplan/placement"
	"github.com/milk9111/waveplan/scene"
)

const usage = `usage: mapctl <command> [flags]

commands:
  validate  -kind terrain|strategy|catalog FILE...
  migrate   [-rows N -cols N] IN OUT
  audit     -terrain T -strategy S [-catalog C] [-script X] [-layer Z] [-wave W]
  bundle    -terrain T [-strategy S] [-catalog C] [-name N] -out FILE
  unbundle  -in FILE -dir DIR
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmds := map[string]func([]string, io.Writer, io.Writer) int{
		"validate": validateCmd,
		"migrate":  migrateCmd,
		"audit":    auditCmd,
		"bundle":   bundleCmd,
		"unbundle": unbundleCmd,
	}
	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	return cmd(args[1:], stdout, stderr)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func validateCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("validate", stderr)
	kindName := fs.String("kind", "terrain", "document kind: terrain, strategy or catalog")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	kind, err := mapio.ParseKind(*kindName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "validate: no files given")
		return 2
	}

	failed := 0
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err == nil {
			err = mapio.Validate(kind, data)
		}
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "ok   %s\n", path)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// migrateCmd rewrites a terrain file, legacy or current, in the current
// three-grid format.
func migrateCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("migrate", stderr)
	rows := fs.Int("rows", 40, "grid rows used when the file carries no grid")
	cols := fs.Int("cols", 40, "grid columns used when the file carries no grid")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "migrate: want IN and OUT")
		return 2
	}
	in, out := fs.Arg(0), fs.Arg(1)

	codec := mapio.Codec{Validate: true}
	f, err := codec.ReadTerrain(in)
	if err != nil {
		fmt.Fprintln(stderr, "migrate:", err)
		return 1
	}
	s := scene.New(*rows, *cols)
	if err := codec.ImportTerrain(in, s); err != nil {
		fmt.Fprintln(stderr, "migrate:", err)
		return 1
	}
	name := f.MapName
	if name == "" {
		name = mapio.MapName(out)
	}
	if err := mapio.WriteJSON(out, mapio.BuildTerrain(name, s)); err != nil {
		fmt.Fprintln(stderr, "migrate:", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s (%d layers, %dx%d)\n", out, len(s.Store().Layers()), s.Store().Rows(), s.Store().Cols())
	return 0
}

// auditCmd loads a terrain and strategy pair and reports every building the
// editor would not have allowed. It exits 1 when anything is found.
func auditCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("audit", stderr)
	terrainPath := fs.String("terrain", "", "terrain JSON")
	strategyPath := fs.String("strategy", "", "strategy JSON")
	catalogPath := fs.String("catalog", "", "catalog JSON (optional)")
	scriptPath := fs.String("script", "", "capability script (optional)")
	layer := fs.Int("layer", 0, "major_z of the layer to check against")
	wave := fs.Int("wave", 1, "wave the scene cursor is set to")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(*terrainPath) == "" || strings.TrimSpace(*strategyPath) == "" {
		fmt.Fprintln(stderr, "audit: -terrain and -strategy are required")
		return 2
	}

	codec := mapio.Codec{Validate: true}
	s := scene.New(1, 1)
	if err := codec.ImportTerrain(*terrainPath, s); err != nil {
		fmt.Fprintln(stderr, "audit:", err)
		return 1
	}
	cat := catalog.New(nil)
	if *catalogPath != "" {
		loaded, err := codec.ReadCatalog(*catalogPath)
		if err != nil {
			fmt.Fprintln(stderr, "audit:", err)
			return 1
		}
		cat = loaded
	}
	if err := codec.ImportStrategy(*strategyPath, s, cat); err != nil {
		fmt.Fprintln(stderr, "audit:", err)
		return 1
	}
	if *scriptPath != "" {
		capability, err := placement.LoadScriptCapability(*scriptPath)
		if err != nil {
			fmt.Fprintln(stderr, "audit:", err)
			return 1
		}
		s.SetCapability(capability)
	}
	if err := s.SetActiveLayer(*layer); err != nil {
		fmt.Fprintln(stderr, "audit:", err)
		return 2
	}
	s.SetCursor(*wave, false)

	findings := s.Audit()
	for _, f := range findings {
		fmt.Fprintln(stdout, f)
	}
	if len(findings) > 0 {
		fmt.Fprintf(stdout, "%d finding(s)\n", len(findings))
		return 1
	}
	fmt.Fprintf(stdout, "ok: %d buildings\n", len(s.Buildings()))
	return 0
}

func bundleCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("bundle", stderr)
	terrainPath := fs.String("terrain", "", "terrain JSON")
	strategyPath := fs.String("strategy", "", "strategy JSON (optional)")
	catalogPath := fs.String("catalog", "", "catalog JSON (optional)")
	name := fs.String("name", "", "map name (defaults to the terrain file name)")
	out := fs.String("out", "", "bundle file to write")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *terrainPath == "" || *out == "" {
		fmt.Fprintln(stderr, "bundle: -terrain and -out are required")
		return 2
	}
	mapName := *name
	if mapName == "" {
		mapName = strings.TrimSuffix(mapio.MapName(*terrainPath), "_terrain")
	}

	b, err := mapio.Codec{Validate: true}.Pack(mapName, *terrainPath, *strategyPath, *catalogPath)
	if err != nil {
		fmt.Fprintln(stderr, "bundle:", err)
		return 1
	}
	if err := mapio.WriteBundle(*out, b); err != nil {
		fmt.Fprintln(stderr, "bundle:", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return 0
}

func unbundleCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("unbundle", stderr)
	in := fs.String("in", "", "bundle file")
	dir := fs.String("dir", "output", "output directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *in == "" {
		fmt.Fprintln(stderr, "unbundle: -in is required")
		return 2
	}
	b, err := mapio.ReadBundle(*in)
	if err != nil {
		fmt.Fprintln(stderr, "unbundle:", err)
		return 1
	}
	layout, err := b.Unpack(*dir)
	if err != nil {
		fmt.Fprintln(stderr, "unbundle:", err)
		return 1
	}
	fmt.Fprintf(stdout, "unpacked %s into %s\n", layout.MapName, layout.Dir)
	return 0
}
