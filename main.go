package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (physics overlay and behavior traces)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	scenePath := flag.String("scene", "spin_demo.yaml", "scene file (disk path or embedded name in levels/)")
	watch := flag.Bool("watch", false, "reload the scene when prefab or scene files change on disk")
	seed := flag.Uint64("seed", 0, "random seed for angular velocity variance (0 = random)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("lpk")

	game, err := NewGame(GameConfig{
		ScenePath: *scenePath,
		Debug:     *debug,
		Watch:     *watch,
		Seed:      *seed,
		Logger:    log.New(os.Stderr, "lpk: ", log.LstdFlags),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
