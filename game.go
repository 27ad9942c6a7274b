package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/frostpurge/common"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/ecs/entity"
	"github.com/milk9111/frostpurge/ecs/system"
	"github.com/milk9111/frostpurge/levels"
	"github.com/milk9111/frostpurge/prefabs"
)

type Options struct {
	Level  string
	Volume float64
	Debug  bool
	Watch  bool
}

type Game struct {
	opts Options

	world     *ecs.World
	loaded    *entity.LoadedLevel
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem

	paused  bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{opts: opts}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir)
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a fresh world for the configured level.
func (g *Game) load() error {
	lvl, err := levels.Load(g.opts.Level)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	loaded, err := entity.LoadLevelToWorld(world, lvl)
	if err != nil {
		return err
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	if g.opts.Volume > 0 {
		if err := entity.AttachAudio(world, loaded.Player, playerSpec.Audio); err != nil {
			log.Printf("audio disabled: %v", err)
		}
	}

	g.physics = system.NewPhysicsSystem(system.NewCollisionDispatcher(g.contactTuning()))
	ai := system.NewAISystem(loaded.Map, loaded.Graph)
	g.scheduler = system.NewTickScheduler(system.NewInputSystem(), g.physics, ai, nil)

	debugSpec, err := prefabs.LoadDebugSpec()
	if err != nil {
		log.Printf("debug palette: %v", err)
	}
	ts := loaded.Map.TileSize()
	view := system.FitView(float64(loaded.Map.Width())*ts, float64(loaded.Map.Height())*ts, common.ScreenWidth, common.ScreenHeight)
	g.render = system.NewRenderSystem(debugSpec, view, ts)
	g.render.ShowPaths(g.opts.Debug)

	g.world = world
	g.loaded = loaded
	g.paused = false
	return nil
}

func (g *Game) contactTuning() system.ContactTuning {
	spec, err := prefabs.LoadContactSpec()
	if err != nil {
		log.Printf("contact tuning: %v, using defaults", err)
		return system.ContactTuningFromSpec(prefabs.ContactSpec{}, g.opts.Volume)
	}
	return system.ContactTuningFromSpec(*spec, g.opts.Volume)
}

// Restart reloads the current level from scratch.
func (g *Game) Restart() {
	if err := g.load(); err != nil {
		log.Printf("restart %s: %v", g.opts.Level, err)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.finished() {
		g.Restart()
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) finished() bool {
	e, ok := ecs.First(g.world, component.GameStateComponent.Kind())
	if !ok {
		return false
	}
	gs, _ := ecs.Get(g.world, e, component.GameStateComponent.Kind())
	return gs.Phase == component.PhaseOver || gs.Phase == component.PhaseWon
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadPrefab(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watch: %v", err)
			}
		default:
			return
		}
	}
}

// reloadPrefab applies tuning files in place. Other prefabs only take effect
// on the next restart.
func (g *Game) reloadPrefab(name string) {
	switch filepath.Base(name) {
	case "contact.yaml":
		g.physics.Dispatcher().SetTuning(g.contactTuning())
		log.Printf("reloaded %s", name)
	case "debug.yaml":
		spec, err := prefabs.LoadDebugSpec()
		if err != nil {
			log.Printf("reload %s: %v", name, err)
			return
		}
		g.render.SetPalette(spec)
		log.Printf("reloaded %s", name)
	default:
		log.Printf("%s changed, press R after the run ends to pick it up", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.opts.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), screen, g.render.View())
		system.DrawAIDebug(g.world, screen, g.render.View())
		ebiten.SetWindowTitle(fmt.Sprintf("frostpurge  TPS: %.0f  FPS: %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.ScreenWidth, common.ScreenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
