package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

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

type PlayerSpec struct {
	Name            string       `yaml:"name"`
	Health          int          `yaml:"health"`
	MoveForce       float64      `yaml:"move_force"`
	AccelSpeedLimit float64      `yaml:"accel_speed_limit"`
	Brake           float64      `yaml:"brake"`
	Friction        float64      `yaml:"friction"`
	BoostForce      float64      `yaml:"boost_force"`
	BoostCharges    int          `yaml:"boost_charges"`
	BoostCooldown   float64      `yaml:"boost_cooldown"`
	InvincibleTime  float64      `yaml:"invincible_time"`
	ShakeTime       float64      `yaml:"shake_time"`
	Collider        ColliderSpec `yaml:"collider"`
	Audio           []AudioSpec  `yaml:"audio"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EnemySpec struct {
	Name         string       `yaml:"name"`
	Variant      string       `yaml:"variant"`
	MoveSpeed    float64      `yaml:"move_speed"`
	DetectRadius float64      `yaml:"detect_radius"`
	LoseRadius   float64      `yaml:"lose_radius"`
	RepathTicks  int          `yaml:"repath_ticks"`
	DetectScript string       `yaml:"detect_script"`
	Collider     ColliderSpec `yaml:"collider"`
}

// LoadEnemySpec loads an enemy prefab by variant file name, e.g. "flies.yaml".
func LoadEnemySpec(filename string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ColliderSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// ContactSpec tunes collision responses. Zero fields fall back to the
// built-in defaults.
type ContactSpec struct {
	HitDamage   int           `yaml:"hit_damage"`
	Repulsion   float64       `yaml:"repulsion"`
	CueCooldown float64       `yaml:"cue_cooldown"`
	FliesSlow   float64       `yaml:"flies_slow"`
	FliesDamage int           `yaml:"flies_damage"`
	BounceScale float64       `yaml:"bounce_scale"`
	BreakSpeed  float64       `yaml:"break_speed"`
	StaggerTime float64       `yaml:"stagger_time"`
	Volumes     CueVolumeSpec `yaml:"volumes"`
}

type CueVolumeSpec struct {
	Hit     float64 `yaml:"hit"`
	Collide float64 `yaml:"collide"`
	Break   float64 `yaml:"break"`
	Bounce  float64 `yaml:"bounce"`
}

func LoadContactSpec() (*ContactSpec, error) {
	spec, err := LoadSpec[ContactSpec]("contact.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// DebugSpec configures the debug overlay palette, keyed by tile type name
// plus "player", "enemy" and "path".
type DebugSpec struct {
	Colors map[string]*YAMLColor `yaml:"colors"`
}

func LoadDebugSpec() (*DebugSpec, error) {
	spec, err := LoadSpec[DebugSpec]("debug.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
