package main

import (
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/moka/components"
	"github.com/plus3/moka/config"
	"github.com/plus3/moka/ecs"
	"github.com/plus3/moka/ecs/debugui"
	debugui_ebiten "github.com/plus3/moka/ecs/debugui/ebiten"
	"github.com/plus3/moka/scene"
)

var background = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

// Game hosts one runtime in an ebiten window. F5 discards every entity and
// loads the scene again from disk.
type Game struct {
	cfg      config.Config
	logger   *log.Logger
	registry *scene.Registry
	triggers *scene.Triggers

	runtime   *ecs.Runtime
	scheduler *ecs.Scheduler
	err       error

	imgui   *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
	timer   *debugui.FrameTimer
}

func newGame(cfg config.Config, logger *log.Logger) *Game {
	registry := scene.NewRegistry()
	components.Register(registry,
		components.WithTextureDir(filepath.Dir(cfg.Scene)),
		components.WithLogger(logger),
	)
	triggers := scene.NewTriggers()
	components.RegisterTriggers(triggers, logger)

	rt := ecs.NewRuntime()
	return &Game{
		cfg:       cfg,
		logger:    logger,
		registry:  registry,
		triggers:  triggers,
		runtime:   rt,
		scheduler: ecs.NewScheduler(rt),
	}
}

// load reads the configured scene into the runtime. Entities are created
// by the scheduler's next frame, once the game loop runs. Each load uses a
// fresh loader so edited documents are read again.
func (g *Game) load() error {
	opts := []scene.Option{
		scene.WithTriggers(g.triggers),
		scene.WithNamespace(g.cfg.ComponentNamespace),
		scene.WithLogger(g.logger),
	}
	if g.cfg.Resources != "" {
		res, err := scene.LoadResources(g.cfg.Resources)
		if err != nil {
			return err
		}
		opts = append(opts, scene.WithResources(res))
	}

	loader := scene.NewLoader(g.runtime, g.registry, opts...)
	return loader.LoadScene(g.cfg.Scene)
}

func (g *Game) reload() error {
	g.logger.Printf("[scene] reloading %s", g.cfg.Scene)
	g.runtime.HardReset()
	return g.load()
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := g.reload(); err != nil {
			return err
		}
	}

	if err := g.scheduler.Once(1 / float64(ebiten.TPS())); err != nil {
		return err
	}

	if g.imgui != nil {
		g.imgui.Frame(g.overlay, g.runtime, g.scheduler.GetStats(), g.timer.GetDeltaTime())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if err := g.runtime.Render(screen); err != nil && g.err == nil {
		g.err = err
	}

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.cfg.WindowWidth, g.cfg.WindowHeight
}
