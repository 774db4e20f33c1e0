package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Dir is the on-disk directory whose files override the embedded prefabs.
var Dir = "prefabs"

// Load reads a spec file such as "enemy.yaml" or "prefabs/enemy".
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, cleanPath(name, "", ".yaml"))
}

// LoadScript reads an objective script such as "survive" or "scripts/survive.tengo".
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanPath(name, "scripts", ".tengo"))
}

// read prefers the file under Dir and falls back to the embedded copy.
func read(embedded fs.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, clean)
}

// cleanPath strips a leading "prefabs/" and sub directory, adds ext when
// the name has none and returns the embed path under sub.
func cleanPath(name, sub, ext string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "prefabs/")
	if sub != "" {
		s = strings.TrimPrefix(s, sub+"/")
	}
	if path.Ext(s) == "" {
		s += ext
	}
	return path.Join(sub, s)
}
