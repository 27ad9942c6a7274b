package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/frostpurge/level"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrBadLayout = errors.New("levels: bad layout")

// Level is a tile layout plus spawn placements. Rows are listed top row
// first, one rune per column:
//
//	. open   # obstacle   ~ swamp   G goal   B bouncy   X breakable
type Level struct {
	Name     string       `yaml:"name"`
	TileSize float64      `yaml:"tile_size"`
	Rows     []string     `yaml:"rows"`
	Player   level.Coord  `yaml:"player"`
	Enemies  []EnemySpawn `yaml:"enemies"`
}

type EnemySpawn struct {
	Prefab  string        `yaml:"prefab"`
	Anchors []level.Coord `yaml:"anchors"`
}

var tileRunes = map[rune]level.TileType{
	'.': level.Open,
	'#': level.Obstacle,
	'~': level.Swamp,
	'G': level.Goal,
	'B': level.Bouncy,
	'X': level.Breakable,
}

// Load reads and decodes an embedded level by name, with or without the
// .yaml extension.
func Load(name string) (*Level, error) {
	if path.Ext(name) == "" {
		name += ".yaml"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, path.Ext(name))
	}
	return &lvl, nil
}

// Names lists the embedded levels in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(out)
	return out
}

func (l *Level) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len([]rune(l.Rows[0]))
}

func (l *Level) Height() int { return len(l.Rows) }

// BuildMap turns the layout into a tile map.
func (l *Level) BuildMap() (*level.Map, error) {
	m, err := level.NewMap(l.Width(), l.Height(), l.TileSize)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.Name, err)
	}
	for i, line := range l.Rows {
		row := l.Height() - 1 - i
		cols := []rune(line)
		if len(cols) != l.Width() {
			return nil, fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrBadLayout, l.Name, i, len(cols), l.Width())
		}
		for col, r := range cols {
			typ, ok := tileRunes[r]
			if !ok {
				return nil, fmt.Errorf("%w: %s unknown tile %q at col %d row %d", ErrBadLayout, l.Name, r, col, row)
			}
			if err := m.SetType(level.Coord{Col: col, Row: row}, typ); err != nil {
				return nil, fmt.Errorf("levels: %s: %w", l.Name, err)
			}
		}
	}
	if !m.InBounds(l.Player) {
		return nil, fmt.Errorf("%w: %s player spawn %v outside map", ErrBadLayout, l.Name, l.Player)
	}
	return m, nil
}
