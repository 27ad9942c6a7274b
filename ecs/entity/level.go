package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
	"github.com/milk9111/frostpurge/levels"
)

// LoadedLevel is what the game keeps after building a level into a world.
type LoadedLevel struct {
	Name    string
	Map     *level.Map
	Graph   *level.Graph
	Player  ecs.Entity
	Enemies []ecs.Entity
}

// LoadLevelToWorld builds the tile map and graph, then creates tile, player,
// enemy and session singleton entities.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) (*LoadedLevel, error) {
	m, err := lvl.BuildMap()
	if err != nil {
		return nil, err
	}
	out := &LoadedLevel{Name: lvl.Name, Map: m, Graph: level.BuildGraph(m)}

	for _, t := range m.Tiles() {
		if t.Type == level.Open {
			continue
		}
		if _, err := NewTile(w, t); err != nil {
			return nil, err
		}
	}

	px, py := m.Center(lvl.Player)
	out.Player, err = NewPlayerAt(w, px, py)
	if err != nil {
		return nil, err
	}

	for i, spawn := range lvl.Enemies {
		e, err := NewEnemy(w, m, spawn.Prefab, spawn.Anchors)
		if err != nil {
			return nil, fmt.Errorf("level %s: enemy %d: %w", lvl.Name, i, err)
		}
		out.Enemies = append(out.Enemies, e)
	}

	if err := newSession(w, lvl.Name); err != nil {
		return nil, err
	}

	log.Printf("Level: loaded %s (%dx%d, %d graph nodes, %d enemies)", lvl.Name, m.Width(), m.Height(), out.Graph.Len(), len(out.Enemies))
	return out, nil
}

func newSession(w *ecs.World, name string) error {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.GameStateComponent.Kind(), &component.GameState{Phase: component.PhaseIntro, Level: name}); err != nil {
		return fmt.Errorf("session: add game state: %w", err)
	}
	if err := ecs.Add(w, entity, component.CueQueueComponent.Kind(), &component.CueQueue{}); err != nil {
		return fmt.Errorf("session: add cue queue: %w", err)
	}
	return nil
}
