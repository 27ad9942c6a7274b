package system

import (
	"log"
	"math"
	"runtime"

	"github.com/milk9111/frostpurge/common"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
	"golang.org/x/sync/errgroup"
)

// AISystem runs the enemy patrol/chase/return/idle machine. Transitions are
// decided serially, path queries fan out over the read-only tile graph, and
// all component writes happen serially afterwards.
type AISystem struct {
	m     *level.Map
	graph *level.Graph
	rules map[string]*DetectRule
}

func NewAISystem(m *level.Map, graph *level.Graph) *AISystem {
	return &AISystem{m: m, graph: graph, rules: make(map[string]*DetectRule)}
}

type aiAgent struct {
	entity ecs.Entity
	ai     *component.AI
	state  *component.AIState
	path   *component.Pathfinding
	x, y   float64
	at     level.Coord

	plan    bool
	planned level.Path
	found   bool
}

type playerView struct {
	present bool
	active  bool
	x, y    float64
	at      level.Coord
	hp      int
}

func (s *AISystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.m == nil || s.graph == nil || !playing(w) {
		return
	}

	pv := s.player(w)

	var agents []*aiAgent
	ecs.ForEach3(w, component.AIComponent.Kind(), component.AIStateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ai *component.AI, st *component.AIState, tr *component.Transform) {
		pf, ok := ecs.Get(w, e, component.PathfindingComponent.Kind())
		if !ok {
			pf = &component.Pathfinding{}
			if err := ecs.Add(w, e, component.PathfindingComponent.Kind(), pf); err != nil {
				return
			}
		}
		at, _ := s.m.CoordAt(tr.X, tr.Y)
		agents = append(agents, &aiAgent{entity: e, ai: ai, state: st, path: pf, x: tr.X, y: tr.Y, at: at})
	})
	if len(agents) == 0 {
		return
	}

	for _, a := range agents {
		prev := a.state.Current
		s.transition(a, pv)
		if a.state.Current != prev {
			w.Events().Push(ecs.Event{Kind: ecs.EventEnemyState, Entity: a.entity, Data: a.state.Current})
		}
		a.plan = needsPlan(a)
	}

	s.planPaths(agents)

	for _, a := range agents {
		s.apply(w, a)
	}
}

func (s *AISystem) player(w *ecs.World) playerView {
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return playerView{}
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return playerView{}
	}
	pv := playerView{present: true, active: !p.GameOver && !p.Win, x: tr.X, y: tr.Y}
	pv.at, _ = s.m.CoordAt(tr.X, tr.Y)
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		pv.hp = h.Current
	}
	return pv
}

func (s *AISystem) transition(a *aiAgent, pv playerView) {
	st := a.state
	dist := math.Inf(1)
	if pv.present {
		dist = common.Dist(a.x, a.y, pv.x, pv.y)
	}

	switch st.Current {
	case component.StateChase:
		if !pv.active || dist > a.ai.LoseRadius {
			st.Current = component.StateReturn
			st.Target = homeAnchor(st)
			return
		}
		st.Target = pv.at
	case component.StateReturn:
		if s.detects(a, pv, dist) {
			st.Current = component.StateChase
			st.Target = pv.at
			return
		}
		st.Target = homeAnchor(st)
		if a.at == st.Target {
			st.Current = restState(st)
		}
	case component.StatePatrol:
		if s.detects(a, pv, dist) {
			st.Current = component.StateChase
			st.Target = pv.at
			return
		}
		if !canPatrol(st) {
			st.Current = component.StateIdle
			st.Target = st.Home
			return
		}
		st.Target = st.Anchors[st.PatrolIndex]
		if a.at == st.Target {
			st.PatrolIndex = (st.PatrolIndex + 1) % 2
			st.Target = st.Anchors[st.PatrolIndex]
		}
	default:
		st.Current = component.StateIdle
		if s.detects(a, pv, dist) {
			st.Current = component.StateChase
			st.Target = pv.at
			return
		}
		st.Target = st.Home
	}
}

// detects is the "start chasing" test: the radius check, or the enemy's
// scripted rule when it has one.
func (s *AISystem) detects(a *aiAgent, pv playerView, dist float64) bool {
	if !pv.active {
		return false
	}
	if rule := s.rule(a.ai.DetectRule); rule != nil {
		ok, err := rule.eval(ruleInput{
			Dist:         dist,
			DetectRadius: a.ai.DetectRadius,
			LoseRadius:   a.ai.LoseRadius,
			PlayerHP:     pv.hp,
			State:        a.state.Current,
		})
		if err == nil {
			return ok
		}
		log.Printf("AI: entity=%v detect rule: %v", a.entity, err)
	}
	return dist <= a.ai.DetectRadius
}

func (s *AISystem) rule(src string) *DetectRule {
	if src == "" {
		return nil
	}
	if r, ok := s.rules[src]; ok {
		return r
	}
	r, err := CompileDetectRule(src)
	if err != nil {
		log.Printf("AI: detect rule disabled: %v", err)
	}
	s.rules[src] = r
	return r
}

func canPatrol(st *component.AIState) bool {
	return len(st.Anchors) >= 2 && st.Anchors[0] != st.Anchors[1]
}

func homeAnchor(st *component.AIState) level.Coord {
	if canPatrol(st) {
		return st.Anchors[st.PatrolIndex]
	}
	return st.Home
}

func restState(st *component.AIState) component.StateID {
	if canPatrol(st) {
		return component.StatePatrol
	}
	return component.StateIdle
}

func needsPlan(a *aiAgent) bool {
	pf := a.path
	switch {
	case pf.Path == nil, pf.LastTarget != a.state.Target, pf.LastStart != a.at:
		return true
	case a.state.Current == component.StateChase:
		return pf.FrameCounter >= a.ai.RepathTicks
	}
	return false
}

func (s *AISystem) planPaths(agents []*aiAgent) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, a := range agents {
		if !a.plan {
			continue
		}
		g.Go(func() error {
			a.planned, a.found = s.graph.FindPath(a.at, a.state.Target)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *AISystem) apply(w *ecs.World, a *aiAgent) {
	pf := a.path
	if a.plan {
		pf.FrameCounter = 0
		pf.LastStart = a.at
		pf.LastTarget = a.state.Target
		pf.Path = a.planned
		pf.Unreachable = !a.found
	} else {
		pf.FrameCounter++
	}

	steer, ok := ecs.Get(w, a.entity, component.SteeringComponent.Kind())
	if !ok {
		steer = &component.Steering{}
		if err := ecs.Add(w, a.entity, component.SteeringComponent.Kind(), steer); err != nil {
			return
		}
	}

	if pf.Unreachable || len(pf.Path) < 2 {
		pf.HasNext = false
		*steer = component.Steering{Hold: true}
		return
	}

	pf.Next = pf.Path[1]
	pf.HasNext = true
	cx, cy := s.m.Center(pf.Next)
	dx, dy := cx-a.x, cy-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		*steer = component.Steering{Hold: true}
		return
	}
	*steer = component.Steering{HeadingX: dx / l, HeadingY: dy / l, Speed: a.ai.MoveSpeed}
}
