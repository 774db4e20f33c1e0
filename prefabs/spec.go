package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec holds loop and window settings.
type GameSpec struct {
	TPS               int     `yaml:"tps"`
	NodeSize          float64 `yaml:"node_size"`
	WindowWidth       int     `yaml:"window_width"`
	WindowHeight      int     `yaml:"window_height"`
	PhysicsIterations int     `yaml:"physics_iterations"`
	Debug             bool    `yaml:"debug"`
	FirstLevel        string  `yaml:"first_level"`
}

// Dt is the fixed timestep in seconds.
func (g GameSpec) Dt() float64 {
	if g.TPS <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(g.TPS)
}

type PlayerSpec struct {
	Speed         float64    `yaml:"speed"`
	RunMultiplier float64    `yaml:"run_multiplier"`
	Radius        float64    `yaml:"radius"`
	Health        float64    `yaml:"health"`
	DamageTaken   float64    `yaml:"damage_taken"`
	Ammo          int        `yaml:"ammo"`
	FireFrequency int        `yaml:"fire_frequency"`
	Muzzle        VectorSpec `yaml:"muzzle"`
	Color         YAMLColor  `yaml:"color"`
}

type EnemySpec struct {
	Speed           float64    `yaml:"speed"`
	Radius          float64    `yaml:"radius"`
	Health          float64    `yaml:"health"`
	DamageTaken     float64    `yaml:"damage_taken"`
	ChaseRadius     float64    `yaml:"chase_radius"`
	AttackRadius    float64    `yaml:"attack_radius"`
	AttackFrequency int        `yaml:"attack_frequency"`
	Epsilon         float64    `yaml:"epsilon"`
	Muzzle          VectorSpec `yaml:"muzzle"`
	Color           YAMLColor  `yaml:"color"`
}

type BulletSpec struct {
	Speed  float64   `yaml:"speed"`
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
}

// Specs bundles every tuning file the simulation reads.
type Specs struct {
	Game   GameSpec
	Player PlayerSpec
	Enemy  EnemySpec
	Bullet BulletSpec
}

// LoadSpecs reads game.yaml, player.yaml, enemy.yaml and bullet.yaml.
func LoadSpecs() (Specs, error) {
	var s Specs
	var err error
	if s.Game, err = LoadSpec[GameSpec]("game.yaml"); err != nil {
		return Specs{}, err
	}
	if s.Player, err = LoadSpec[PlayerSpec]("player.yaml"); err != nil {
		return Specs{}, err
	}
	if s.Enemy, err = LoadSpec[EnemySpec]("enemy.yaml"); err != nil {
		return Specs{}, err
	}
	if s.Bullet, err = LoadSpec[BulletSpec]("bullet.yaml"); err != nil {
		return Specs{}, err
	}
	return s, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c was never set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
