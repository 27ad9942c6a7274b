package system

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/frostpurge/common"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
	"github.com/milk9111/frostpurge/prefabs"
	"golang.org/x/image/colornames"
)

const shakeAmplitude = 3

// RenderSystem draws the level as flat shapes: tiles from the palette, the
// player and enemies as discs, and a one-line HUD.
type RenderSystem struct {
	palette  map[string]color.Color
	view     View
	tileSize float64
	showPath bool
}

func NewRenderSystem(debug *prefabs.DebugSpec, view View, tileSize float64) *RenderSystem {
	r := &RenderSystem{palette: defaultPalette(), view: view, tileSize: tileSize}
	r.SetPalette(debug)
	return r
}

func defaultPalette() map[string]color.Color {
	return map[string]color.Color{
		level.Obstacle.String():  colornames.Slategray,
		level.Swamp.String():     colornames.Darkolivegreen,
		level.Goal.String():      colornames.Gold,
		level.Bouncy.String():    colornames.Hotpink,
		level.Breakable.String(): colornames.Sienna,
		"player":                 colornames.Lightskyblue,
		"enemy":                  colornames.Crimson,
		"flies":                  colornames.Yellowgreen,
		"path":                   color.NRGBA{R: 0x88, G: 0xc0, B: 0xd0, A: 0x80},
	}
}

// SetPalette overlays the colours from spec; unknown keys are kept too.
func (r *RenderSystem) SetPalette(spec *prefabs.DebugSpec) {
	if spec == nil {
		return
	}
	for name, c := range spec.Colors {
		if c != nil && c.Color != nil {
			r.palette[name] = c.Color
		}
	}
}

func (r *RenderSystem) SetView(v View) { r.view = v }

func (r *RenderSystem) View() View { return r.view }

// ShowPaths toggles the enemy route overlay.
func (r *RenderSystem) ShowPaths(on bool) { r.showPath = on }

func (r *RenderSystem) color(name string) color.Color {
	if c, ok := r.palette[name]; ok {
		return c
	}
	return colornames.White
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Aliceblue)

	view := r.view
	pe, hasPlayer := ecs.First(w, component.PlayerComponent.Kind())
	if hasPlayer {
		if pl, ok := ecs.Get(w, pe, component.PlayerComponent.Kind()); ok && pl.Shake {
			view = view.Shifted((rand.Float64()*2-1)*shakeAmplitude, (rand.Float64()*2-1)*shakeAmplitude)
		}
	}

	ecs.ForEach(w, component.TileRefComponent.Kind(), func(_ ecs.Entity, ref *component.TileRef) {
		r.drawTile(screen, view, ref.Tile)
	})

	if r.showPath {
		ecs.ForEach(w, component.PathfindingComponent.Kind(), func(_ ecs.Entity, pf *component.Pathfinding) {
			r.drawPath(screen, view, pf)
		})
	}

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, tr *component.Transform) {
		name := "enemy"
		if enemy.Flies() {
			name = "flies"
		}
		r.drawDisc(screen, view, w, e, tr, r.color(name))
	})

	if hasPlayer {
		if tr, ok := ecs.Get(w, pe, component.TransformComponent.Kind()); ok {
			clr := r.color("player")
			if ecs.Has(w, pe, component.InvulnerableComponent.Kind()) {
				clr = colornames.White
			}
			r.drawDisc(screen, view, w, pe, tr, clr)
		}
	}

	r.drawHUD(w, screen)
}

func (r *RenderSystem) drawTile(screen *ebiten.Image, view View, t *level.Tile) {
	if t == nil || t.Type == level.Open || t.Broken() {
		return
	}
	b := t.Bounds
	x0, y0 := view.ToScreen(b.MinX, b.MaxY)
	x1, y1 := view.ToScreen(b.MaxX, b.MinY)
	clr := r.color(t.Type.String())
	vector.FillRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), clr, false)
	if t.Activated() {
		vector.StrokeRect(screen, float32(x0)+1, float32(y0)+1, float32(x1-x0)-2, float32(y1-y0)-2, 2, colornames.White, false)
	}
}

func (r *RenderSystem) drawPath(screen *ebiten.Image, view View, pf *component.Pathfinding) {
	if len(pf.Path) < 2 {
		return
	}
	clr := r.color("path")
	for i := 1; i < len(pf.Path); i++ {
		ax, ay := r.cellCenter(view, pf.Path[i-1])
		bx, by := r.cellCenter(view, pf.Path[i])
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 2, clr, true)
	}
}

func (r *RenderSystem) cellCenter(view View, c level.Coord) (float64, float64) {
	return view.ToScreen((float64(c.Col)+0.5)*r.tileSize, (float64(c.Row)+0.5)*r.tileSize)
}

func (r *RenderSystem) drawDisc(screen *ebiten.Image, view View, w *ecs.World, e ecs.Entity, tr *component.Transform, clr color.Color) {
	radius := 6.0
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Radius > 0 {
		radius = pb.Radius
	}
	cx, cy := view.ToScreen(tr.X, tr.Y)
	rad := radius * view.Zoom
	vector.FillCircle(screen, float32(cx), float32(cy), float32(rad), clr, true)
	// Facing tick; screen y grows downward.
	hx := cx + math.Cos(tr.Rotation)*rad
	hy := cy - math.Sin(tr.Rotation)*rad
	vector.StrokeLine(screen, float32(cx), float32(cy), float32(hx), float32(hy), 1.5, colornames.Black, true)
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	var text string
	if ge, ok := ecs.First(w, component.GameStateComponent.Kind()); ok {
		gs, _ := ecs.Get(w, ge, component.GameStateComponent.Kind())
		text = fmt.Sprintf("%s  %s  %.1fs", gs.Level, gs.Phase, float64(gs.Ticks)*common.TickSeconds)
		switch gs.Phase {
		case component.PhaseIntro:
			text += "  press enter"
		case component.PhaseOver:
			text += "  frozen solid"
		case component.PhaseWon:
			text += "  purged!"
		}
	}
	if pe, ok := ecs.First(w, component.PlayerComponent.Kind()); ok {
		pl, _ := ecs.Get(w, pe, component.PlayerComponent.Kind())
		if h, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); ok {
			text += fmt.Sprintf("  hp %d/%d", h.Current, h.Max)
		}
		text += fmt.Sprintf("  boost %d", pl.BoostCharges)
	}
	ebitenutil.DebugPrintAt(screen, text, 6, 4)
}
