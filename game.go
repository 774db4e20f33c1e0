package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/triggered/assets"
	"github.com/milk9111/triggered/component"
	"github.com/milk9111/triggered/levels"
	"github.com/milk9111/triggered/prefabs"
	"github.com/milk9111/triggered/sim"
)

type gameState int

const (
	stateMenu gameState = iota
	stateRunning
	statePaused
	stateFinished
)

type Game struct {
	frames int

	specs   prefabs.Specs
	manager *sim.Manager
	level   *sim.Level
	state   gameState

	input    *Input
	camera   *Camera
	renderer *Renderer
	sounds   *assets.Sounds
	watcher  *prefabs.Watcher

	menuUI  *ebitenui.UI
	pauseUI *ebitenui.UI

	screenW, screenH int
	debug            bool
	showInfo         bool
	quitting         bool
	banner           []string
}

type Options struct {
	Specs   prefabs.Specs
	Levels  []string
	Start   string
	Debug   bool
	Watcher *prefabs.Watcher
	Sounds  *assets.Sounds
}

// NewGame opens at the main menu, or directly in opts.Start when set.
func NewGame(opts Options) (*Game, error) {
	if opts.Debug {
		opts.Specs.Game.Debug = true
	}
	manager, err := sim.NewManager(opts.Levels, opts.Specs, nil)
	if err != nil {
		return nil, err
	}

	g := &Game{
		specs:    opts.Specs,
		manager:  manager,
		input:    NewInput(),
		camera:   NewCamera(opts.Specs.Game.WindowWidth, opts.Specs.Game.WindowHeight),
		renderer: NewRenderer(opts.Specs),
		sounds:   opts.Sounds,
		watcher:  opts.Watcher,
		screenW:  opts.Specs.Game.WindowWidth,
		screenH:  opts.Specs.Game.WindowHeight,
		debug:    opts.Debug || opts.Specs.Game.Debug,
	}
	g.menuUI = NewMainMenuUI(g)
	g.pauseUI = NewPauseUI(g)

	if opts.Start != "" {
		if err := g.manager.Set(levels.Name(opts.Start)); err != nil {
			return nil, err
		}
		if err := g.load(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) load() error {
	lvl, err := g.manager.Load()
	if err != nil {
		return err
	}
	g.enter(lvl)
	return nil
}

func (g *Game) enter(lvl *sim.Level) {
	g.level = lvl
	g.state = stateRunning
	g.banner = nil
	w, h := lvl.Grid().Size()
	g.camera.Follow(lvl.Player().Position(), w, h)
}

func (g *Game) start(name string) {
	if err := g.manager.Set(name); err != nil {
		log.Printf("Game: %v", err)
		return
	}
	if err := g.load(); err != nil {
		log.Printf("Game: %v", err)
		g.banner = []string{"Could not load " + name, err.Error()}
	}
}

func (g *Game) resume() {
	if g.state == statePaused {
		g.state = stateRunning
	}
}

func (g *Game) restart() {
	if err := g.load(); err != nil {
		log.Printf("Game: restart: %v", err)
		g.banner = []string{"Could not reload " + g.manager.CurrentName(), err.Error()}
	}
}

func (g *Game) next() {
	lvl, err := g.manager.Next()
	switch {
	case err != nil:
		log.Printf("Game: next level: %v", err)
		g.banner = []string{"Could not load " + g.manager.CurrentName(), err.Error(), "Press Esc for the menu"}
	case g.manager.Completed():
		g.banner = []string{"All levels cleared", fmt.Sprintf("%d levels", len(g.manager.Names())), "Press Esc for the menu"}
	default:
		g.enter(lvl)
	}
}

func (g *Game) toMenu() {
	g.state = stateMenu
	g.level = nil
	g.banner = nil
}

func (g *Game) quit() {
	g.quitting = true
}

func (g *Game) Update() error {
	g.frames++
	if g.quitting {
		return ebiten.Termination
	}

	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showInfo = !g.showInfo
	}

	switch g.state {
	case stateMenu:
		g.menuUI.Update()
	case stateRunning:
		g.updateRunning()
	case statePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.resume()
			break
		}
		g.pauseUI.Update()
	case stateFinished:
		g.updateFinished()
	}
	return nil
}

func (g *Game) updateRunning() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.state = statePaused
		return
	}

	lvl := g.level
	g.input.Update(g.camera, lvl.Player().Position())
	lvl.Update(g.specs.Game.Dt(), g.input.State())
	g.playEvents(lvl.Events())

	w, h := lvl.Grid().Size()
	g.camera.Follow(lvl.Player().Position(), w, h)

	switch lvl.Status() {
	case sim.Passed:
		g.state = stateFinished
		g.banner = []string{"Level passed", "Press Enter to continue"}
	case sim.Failed:
		g.state = stateFinished
		g.banner = []string{"You died", "Press R to restart or Esc for the menu"}
	}
}

func (g *Game) updateFinished() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.toMenu()
	case inpututil.IsKeyJustPressed(ebiten.KeyR) && g.level != nil && g.level.Status() == sim.Failed:
		g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.level != nil && g.level.Status() == sim.Passed && !g.manager.Completed():
		g.next()
	}
}

func (g *Game) playEvents(events []component.CombatEvent) {
	for _, evt := range events {
		switch evt.Type {
		case component.EventFire:
			g.sounds.Play("shot")
		case component.EventHit:
			g.sounds.Play("hit")
		case component.EventDeath:
			g.sounds.Play("death")
			if g.debug {
				log.Printf("Game: %s died at tick %d", evt.Target, evt.Tick)
			}
		}
	}
}

// drainWatcher applies file changes reported since the last tick.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadFile(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reloadFile(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeSpec:
		specs, err := prefabs.LoadSpecs()
		if err != nil {
			log.Printf("Game: reload specs: %v", err)
			return
		}
		if g.debug {
			specs.Game.Debug = true
		}
		g.specs = specs
		g.manager.SetSpecs(specs)
		g.renderer.SetSpecs(specs)
		log.Printf("Game: reloaded specs after %s changed", change.Path)
	case prefabs.ChangeLevel:
		if change.Name != g.manager.CurrentName() {
			return
		}
	case prefabs.ChangeScript:
	default:
		return
	}

	if g.level == nil || g.state == stateMenu {
		return
	}
	log.Printf("Game: reloading %s", g.manager.CurrentName())
	g.restart()
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.state {
	case stateMenu:
		screen.Fill(backgroundColor)
		g.menuUI.Draw(screen)
		if len(g.banner) > 0 {
			g.renderer.DrawBanner(screen, g.banner...)
		}
		return
	}

	lvl := g.level
	g.renderer.DrawLevel(screen, lvl, g.camera, g.debug)
	g.renderer.DrawHUD(screen, lvl)
	if g.showInfo {
		g.renderer.DrawInfo(screen, lvl)
	}

	switch g.state {
	case stateRunning:
		g.renderer.DrawCrosshair(screen, g.input.State().Aim, g.camera)
	case statePaused:
		g.pauseUI.Draw(screen)
	case stateFinished:
		g.renderer.DrawBanner(screen, g.banner...)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Tick: %d", g.frames, ebiten.ActualFPS(), lvl.Ticks()), 10, g.screenH-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.screenW), float64(g.screenH)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
