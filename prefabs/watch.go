package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ChangeKind says which reload a changed file calls for.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota + 1
	ChangeScript
	ChangeLevel
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSpec:
		return "spec"
	case ChangeScript:
		return "script"
	case ChangeLevel:
		return "level"
	default:
		return "unknown"
	}
}

// Change is one debounced file change. Name is the base name without its
// extension, which for levels is the level name.
type Change struct {
	Kind ChangeKind
	Path string
	Name string
}

// Watcher reports changed spec, script and level files.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	last := make(map[Change]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := classify(event)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[change]; ok && now.Sub(t) < debounce {
				continue
			}
			last[change] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// classify drops events that cannot change what the game runs. A removed
// level keeps running from memory, so only writes and creates of levels
// count, and a rename is the old name going away.
func classify(event fsnotify.Event) (Change, bool) {
	kind, ok := Classify(event.Name)
	if !ok {
		return Change{}, false
	}
	ops := fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	if kind == ChangeLevel {
		ops = fsnotify.Write | fsnotify.Create
	}
	if event.Op&ops == 0 {
		return Change{}, false
	}
	base := filepath.Base(event.Name)
	return Change{
		Kind: kind,
		Path: event.Name,
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}, true
}

// Classify maps a path to the reload it needs. Hidden files and editor
// backups are ignored.
func Classify(path string) (ChangeKind, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return 0, false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	case ".json":
		return ChangeLevel, true
	}
	return 0, false
}

// IsWatched reports whether path names a file the game reloads.
func IsWatched(path string) bool {
	_, ok := Classify(path)
	return ok
}
