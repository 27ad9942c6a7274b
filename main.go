package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/frostpurge/common"
)

func main() {
	levelName := flag.String("level", "frost1", "level name in levels/ (basename, .yaml optional)")
	volume := flag.Float64("volume", 1, "master volume for sound cues, 0 to mute")
	debug := flag.Bool("debug", false, "draw colliders, enemy paths and AI state")
	watch := flag.Bool("watch", false, "reload prefabs/contact.yaml and debug.yaml when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.ScreenWidth*2, common.ScreenHeight*2)
	ebiten.SetWindowTitle("frostpurge")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Level:  *levelName,
		Volume: *volume,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
