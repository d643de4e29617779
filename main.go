package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"
)

func main() {
	worldPath := flag.String("world", "", "world YAML file on disk (default: the embedded résumé)")
	assetsDir := flag.String("assets", "", "asset directory holding manifest.yaml (default: embedded assets)")
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "reload the world file when it changes on disk")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	clipboardOK := false
	if *debug {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
		} else {
			clipboardOK = true
		}
	}

	game, err := NewGame(Options{
		WorldPath: *worldPath,
		AssetsDir: *assetsDir,
		Debug:     *debug,
		Watch:     *watch,
		Clipboard: clipboardOK,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Layout(0, 0)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("folio")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
