package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/triggered/levels"
	"golang.design/x/clipboard"
)

func main() {
	levelName := flag.String("level", "", "level to open (basename, .json optional)")
	levelsDir := flag.String("levels-dir", levels.Dir, "directory levels are saved to and opened from")
	newLevel := flag.Bool("new", false, "start a new level instead of opening one")
	w := flag.Int("w", 16, "width in cells of new levels")
	h := flag.Int("h", 10, "height in cells of new levels")
	flag.Parse()

	levels.Dir = *levelsDir

	names, err := levels.List()
	if err != nil {
		log.Fatal(err)
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("Editor: clipboard disabled: %v", err)
		clipboardOK = false
	}

	editor, err := NewEditor(EditorOptions{
		Names:       names,
		Level:       *levelName,
		New:         *newLevel,
		NewW:        *w,
		NewH:        *h,
		ClipboardOK: clipboardOK,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("triggered editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(editor); err != nil {
		log.Fatal(err)
	}
}
