package main

import (
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moka/config"
	"github.com/plus3/moka/ecs/debugui"
	debugui_ebiten "github.com/plus3/moka/ecs/debugui/ebiten"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.Default()
	if cfg.Quiet {
		logger = log.New(io.Discard, "", 0)
	}

	game := newGame(cfg, logger)

	if cfg.DebugUI {
		game.imgui = debugui_ebiten.NewImguiBackend(cfg.WindowTitle, cfg.WindowWidth, cfg.WindowHeight)
		game.overlay = debugui.NewOverlay()
		game.timer = debugui.NewFrameTimer()
	} else {
		ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
		ebiten.SetWindowTitle(cfg.WindowTitle)
	}
	ebiten.SetTPS(cfg.TPS)

	if err := game.load(); err != nil {
		log.Fatalf("Failed to load scene %s: %v", cfg.Scene, err)
	}
	log.Printf("Loaded %s (%d entities)", cfg.Scene, game.runtime.Len())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game stopped: %v", err)
	}
}
