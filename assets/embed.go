package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

//go:embed *.wav
var assetsFS embed.FS

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the process wide audio context, creating it on first use.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// Names lists the embedded sound names without extension.
func Names() []string {
	matches, err := fs.Glob(assetsFS, "*.wav")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".wav"))
	}
	sort.Strings(names)
	return names
}

// LoadAudioPlayer loads an embedded wav asset and creates an audio player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return Context().NewPlayer(stream)
}

// Sounds plays short combat effects by name.
type Sounds struct {
	players map[string]*audio.Player
	Muted   bool
}

// LoadSounds decodes every embedded effect. Effects that fail to load are
// logged and skipped so a broken file never stops the game.
func LoadSounds(volume float64) *Sounds {
	s := &Sounds{players: make(map[string]*audio.Player)}
	for _, name := range Names() {
		p, err := LoadAudioPlayer(name + ".wav")
		if err != nil {
			log.Printf("Sounds: load %s: %v", name, err)
			continue
		}
		p.SetVolume(volume)
		s.players[name] = p
	}
	return s
}

// Play restarts the named effect.
func (s *Sounds) Play(name string) {
	if s == nil || s.Muted {
		return
	}
	p, ok := s.players[name]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		log.Printf("Sounds: rewind %s: %v", name, err)
		return
	}
	p.Play()
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		return s[idx+len("/assets/"):]
	}
	s = strings.TrimPrefix(s, "assets/")
	if filepath.Ext(s) == "" {
		s += ".wav"
	}
	return s
}
