package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/lpk/common"
	"github.com/milk9111/lpk/ecs/system"
	"github.com/milk9111/lpk/prefabs"
	"github.com/milk9111/lpk/sim"
	"golang.org/x/image/font/basicfont"
)

var backgroundColor = color.NRGBA{R: 0x1b, G: 0x1d, B: 0x24, A: 0xff}

type GameConfig struct {
	ScenePath string
	Debug     bool
	Watch     bool
	Seed      uint64
	Logger    *log.Logger
}

type Game struct {
	frames int
	cfg    GameConfig

	sim     *sim.Sim
	watcher *prefabs.Watcher

	debug  bool
	paused bool

	pauseUI *ebitenui.UI
	hudFace ebtext.Face
}

func NewGame(cfg GameConfig) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		debug:   cfg.Debug,
		hudFace: ebtext.NewGoXFace(basicfont.Face7x13),
	}
	if err := g.reload(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Watch {
		dirs := []string{prefabs.Dir}
		if _, err := os.Stat("levels"); err == nil {
			dirs = append(dirs, "levels")
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// reload rebuilds the world from the scene file. One-shot behaviors apply
// again on the first tick of the new world.
func (g *Game) reload() error {
	s, err := sim.Load(g.cfg.ScenePath, sim.Options{
		Seed:       g.cfg.Seed,
		Logger:     g.cfg.Logger,
		ForceDebug: g.debug,
	})
	if err != nil {
		return err
	}
	g.sim = s
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) toggleDebug() {
	g.debug = !g.debug
	g.sim.Angular.SetForceDebug(g.debug)
}

func (g *Game) pollWatcher() {
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
			log.Printf("reloading scene: %s changed", name)
			if err := g.reload(); err != nil {
				log.Printf("reload failed: %v", err)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.toggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reload(); err != nil {
			log.Printf("reload failed: %v", err)
		}
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.sim.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.sim.Scheduler.Draw(g.sim.World, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.sim.Physics.Space(), screen)
		system.DrawAngularVelocityDebug(g.sim.World, screen, 10, 40)
	}

	hud := fmt.Sprintf("%s  tick %d  FPS %.1f\n[Esc] pause  [R] reload  [F1] debug", g.sim.Scene.Name, g.sim.Ticks(), ebiten.ActualFPS())
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(10, 8)
	op.LineSpacing = 14
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, hud, g.hudFace, op)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
