package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/triggered/assets"
	"github.com/milk9111/triggered/levels"
	"github.com/milk9111/triggered/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "start directly in this level (basename, .json optional)")
	levelsDir := flag.String("levels-dir", levels.Dir, "directory with level files that override the embedded ones")
	prefabsDir := flag.String("prefabs-dir", prefabs.Dir, "directory with spec and script files that override the embedded ones")
	watch := flag.Bool("watch", false, "reload specs, scripts and the current level when they change on disk")
	mute := flag.Bool("mute", false, "disable sound effects")
	flag.Parse()

	levels.Dir = *levelsDir
	prefabs.Dir = *prefabsDir

	specs, err := prefabs.LoadSpecs()
	if err != nil {
		log.Fatal(err)
	}

	names, err := levels.List()
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(existingDirs(prefabs.Dir, prefabs.Dir+"/scripts", levels.Dir)...)
		if err != nil {
			log.Fatal(err)
		}
		defer watcher.Close()
	}

	var sounds *assets.Sounds
	if !*mute {
		sounds = assets.LoadSounds(0.4)
	}

	game, err := NewGame(Options{
		Specs:   specs,
		Levels:  names,
		Start:   *levelName,
		Debug:   *debug,
		Watcher: watcher,
		Sounds:  sounds,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(specs.Game.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(specs.Game.WindowWidth, specs.Game.WindowHeight)
	ebiten.SetWindowTitle("triggered")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func existingDirs(dirs ...string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}
