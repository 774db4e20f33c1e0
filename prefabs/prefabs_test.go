package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestLoadSpecsEmbedded(t *testing.T) {
	useDir(t, t.TempDir())

	specs, err := LoadSpecs()
	require.NoError(t, err)

	assert.Equal(t, 60, specs.Game.TPS)
	assert.InDelta(t, 1.0/60, specs.Game.Dt(), 1e-12)
	assert.Equal(t, 100.0, specs.Game.NodeSize)
	assert.Equal(t, 900.0, specs.Player.Health)
	assert.Equal(t, 350, specs.Player.Ammo)
	assert.Equal(t, 300.0, specs.Enemy.ChaseRadius)
	assert.Equal(t, 150.0, specs.Enemy.AttackRadius)
	assert.Equal(t, 10, specs.Enemy.AttackFrequency)
	assert.Equal(t, 500.0, specs.Bullet.Speed)
	assert.NotNil(t, specs.Enemy.Color.Color)
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bullet.yaml"), []byte("speed: 42\nradius: 3\n"), 0o644))

	spec, err := LoadSpec[BulletSpec]("prefabs/bullet.yaml")
	require.NoError(t, err)
	assert.Equal(t, 42.0, spec.Speed)

	// Files missing from disk still come from the embedded set.
	enemy, err := LoadSpec[EnemySpec]("enemy")
	require.NoError(t, err)
	assert.Equal(t, 300.0, enemy.ChaseRadius)
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "enemy.yaml", cleanPath("prefabs/enemy", "", ".yaml"))
	assert.Equal(t, "game.yaml", cleanPath("game.yaml", "", ".yaml"))
	assert.Equal(t, "scripts/survive.tengo", cleanPath("prefabs/scripts/survive", "scripts", ".tengo"))
	assert.Equal(t, "scripts/survive.tengo", cleanPath("survive.tengo", "scripts", ".tengo"))
	assert.Equal(t, "", cleanPath("", "scripts", ".tengo"))
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bullet.yaml"), []byte("speed: [1"), 0o644))

	_, err := LoadSpec[BulletSpec]("bullet.yaml")
	assert.ErrorContains(t, err, "prefabs: unmarshal bullet.yaml")

	_, err = LoadSpec[BulletSpec]("missing.yaml")
	assert.ErrorContains(t, err, "prefabs: load missing.yaml")
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: `"#ff0000"`, want: color.NRGBA{R: 255, A: 255}},
		{in: `"#00ff0080"`, want: color.NRGBA{G: 255, A: 128}},
		{in: `white`, want: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: `"#abc"`, wantErr: true},
		{in: `"#zzzzzz"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.Color)
		})
	}

	var unset YAMLColor
	assert.Equal(t, color.Black, unset.Or(color.Black))
}

func TestLoadScript(t *testing.T) {
	useDir(t, t.TempDir())

	for _, name := range []string{"survive", "scripts/survive.tengo", "prefabs/scripts/survive"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "done :=")
	}
}

func TestIsWatched(t *testing.T) {
	assert.True(t, IsWatched("prefabs/enemy.yaml"))
	assert.True(t, IsWatched("levels/level_one.JSON"))
	assert.True(t, IsWatched("prefabs/scripts/survive.tengo"))
	assert.False(t, IsWatched("levels/notes.txt"))
	assert.False(t, IsWatched("levels/.level_one.json"))
	assert.False(t, IsWatched("prefabs/enemy.yaml~"))
}

func TestClassifyLevelEvents(t *testing.T) {
	change, ok := classify(fsnotify.Event{Name: "levels/level_two.json", Op: fsnotify.Write})
	require.True(t, ok)
	assert.Equal(t, Change{Kind: ChangeLevel, Path: "levels/level_two.json", Name: "level_two"}, change)

	_, ok = classify(fsnotify.Event{Name: "levels/level_two.json", Op: fsnotify.Remove})
	assert.False(t, ok, "a removed level keeps running")
	_, ok = classify(fsnotify.Event{Name: "levels/level_two.json", Op: fsnotify.Chmod})
	assert.False(t, ok)

	change, ok = classify(fsnotify.Event{Name: "prefabs/enemy.yaml", Op: fsnotify.Remove})
	require.True(t, ok, "a removed override falls back to the embedded spec")
	assert.Equal(t, ChangeSpec, change.Kind)
	assert.Equal(t, "enemy", change.Name)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "enemy.yaml")
	require.NoError(t, os.WriteFile(target, []byte("speed: 1\n"), 0o644))

	select {
	case change := <-w.Events:
		assert.Equal(t, target, change.Path)
		assert.Equal(t, ChangeSpec, change.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
