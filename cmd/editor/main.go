package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/waveplan/config"
)

func main() {
	configPath := flag.String("config", "editor.yaml", "Editor settings file (YAML); missing file uses defaults")
	mapFile := flag.String("map", "", "Terrain file to open, overriding the config")
	preset := flag.Int("preset", -1, "Index of a map preset to apply on start")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mapFile != "" {
		cfg.Map.File = *mapFile
	}

	game := NewEditorGame(cfg)
	defer game.Close()
	if *preset >= 0 {
		game.applyPreset(*preset)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Wave Planner")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
