package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is the on-disk directory searched before the embedded levels.
var Dir = "levels"

// LoadFS reads name (".json" optional) from fsys.
func LoadFS(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, fileName(name))
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return decode(name, data)
}

// Load reads a level file from disk.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return decode(path, data)
}

// Open loads name from Dir, falling back to the embedded levels.
func Open(name string) (*Level, error) {
	if lvl, err := Load(Path(name)); err == nil {
		return lvl, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return LoadFS(LevelsFS, name)
}

func decode(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	lvl.normalize()
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

// Save writes lvl as indented JSON, creating parent directories.
func Save(path string, lvl *Level) error {
	if err := lvl.Validate(); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	data, err := Encode(lvl)
	if err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func Encode(lvl *Level) ([]byte, error) {
	data, err := json.MarshalIndent(lvl, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// List returns level names found in Dir and in the embedded set, sorted
// and without duplicates.
func List() ([]string, error) {
	seen := make(map[string]struct{})
	add := func(entries []fs.DirEntry) {
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
				continue
			}
			seen[Name(e.Name())] = struct{}{}
		}
	}

	entries, err := os.ReadDir(Dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("levels: list %s: %w", Dir, err)
	}
	add(entries)

	embedded, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: list embedded: %w", err)
	}
	add(embedded)

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Path is the on-disk file for a level name.
func Path(name string) string {
	return filepath.Join(Dir, fileName(name))
}

// Name strips directories and the ".json" extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return name
	}
	return name + ".json"
}
