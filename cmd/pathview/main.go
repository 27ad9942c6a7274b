// Command pathview prints a level in the terminal and overlays the route each
// enemy walks between its patrol anchors.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/frostpurge/level"
	"github.com/milk9111/frostpurge/levels"
)

type viewer struct {
	lvl      *levels.Level
	m        *level.Map
	graph    *level.Graph
	selected int
}

func newViewer(name string) (*viewer, error) {
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	m, err := lvl.BuildMap()
	if err != nil {
		return nil, err
	}
	return &viewer{lvl: lvl, m: m, graph: level.BuildGraph(m)}, nil
}

// route returns the selected enemy's patrol route, or nil with a reason.
func (v *viewer) route() (level.Path, string) {
	if len(v.lvl.Enemies) == 0 {
		return nil, "no enemies"
	}
	spawn := v.lvl.Enemies[v.selected]
	if len(spawn.Anchors) < 2 || spawn.Anchors[0] == spawn.Anchors[1] {
		return nil, "idle"
	}
	p, ok := v.graph.FindPath(spawn.Anchors[0], spawn.Anchors[1])
	if !ok {
		return nil, "unreachable"
	}
	return p, fmt.Sprintf("%d steps", len(p)-1)
}

func (v *viewer) next() {
	if n := len(v.lvl.Enemies); n > 0 {
		v.selected = (v.selected + 1) % n
	}
}

// breakAll smashes every breakable tile; the graph picks up the new cells.
func (v *viewer) breakAll() {
	for _, t := range v.m.Tiles() {
		if t.Intact() {
			t.Deactivate()
		}
	}
}

func tileRune(t *level.Tile) rune {
	switch t.Type {
	case level.Obstacle:
		return '#'
	case level.Swamp:
		return '~'
	case level.Goal:
		return 'G'
	case level.Bouncy:
		return 'B'
	case level.Breakable:
		if t.Broken() {
			return ','
		}
		return 'X'
	}
	return '.'
}

func tileStyle(t *level.Tile) tcell.Style {
	st := tcell.StyleDefault
	switch t.Type {
	case level.Obstacle:
		return st.Foreground(tcell.ColorGray)
	case level.Swamp:
		return st.Foreground(tcell.ColorOliveDrab)
	case level.Goal:
		return st.Foreground(tcell.ColorGold).Bold(true)
	case level.Bouncy:
		return st.Foreground(tcell.ColorHotPink)
	case level.Breakable:
		return st.Foreground(tcell.ColorSienna)
	}
	return st.Foreground(tcell.ColorSilver)
}

// draw renders the map with the top row first, since rows grow upward.
func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	h := v.m.Height()
	// Screen row 0 holds the header.
	toY := func(row int) int { return h - row }

	for _, t := range v.m.Tiles() {
		screen.SetContent(t.Col, toY(t.Row), tileRune(t), nil, tileStyle(t))
	}

	pathStyle := tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	path, status := v.route()
	for _, c := range path {
		screen.SetContent(c.Col, toY(c.Row), '*', nil, pathStyle)
	}
	if len(v.lvl.Enemies) > 0 {
		for _, a := range v.lvl.Enemies[v.selected].Anchors {
			screen.SetContent(a.Col, toY(a.Row), 'A', nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		}
	}
	screen.SetContent(v.lvl.Player.Col, toY(v.lvl.Player.Row), 'P', nil, tcell.StyleDefault.Foreground(tcell.ColorDeepSkyBlue).Bold(true))

	header := fmt.Sprintf("%s  enemy %d/%d (%s): %s", v.lvl.Name, v.selected+1, len(v.lvl.Enemies), v.prefab(), status)
	putText(screen, 0, 0, header, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	putText(screen, 0, h+2, "tab: next enemy  b: break tiles  q: quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	screen.Show()
}

func (v *viewer) prefab() string {
	if len(v.lvl.Enemies) == 0 {
		return "-"
	}
	return v.lvl.Enemies[v.selected].Prefab
}

func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x++
	}
}

// handle applies one key event and reports whether to keep running.
func (v *viewer) handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		v.next()
		return true
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case 'b', 'B':
		v.breakAll()
	case 'n', 'N':
		v.next()
	}
	return true
}

func run(screen tcell.Screen, v *viewer) {
	for {
		v.draw(screen)
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !v.handle(ev) {
				return
			}
		}
	}
}

func main() {
	name := flag.String("level", "frost1", "level name in levels/")
	list := flag.Bool("list", false, "list embedded levels and exit")
	flag.Parse()

	if *list {
		for _, n := range levels.Names() {
			fmt.Println(n)
		}
		return
	}

	v, err := newViewer(*name)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, v)
}
