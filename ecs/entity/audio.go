package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/frostpurge/assets"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/prefabs"
)

// AttachAudio adds an Audio component with one player per clip.
func AttachAudio(w *ecs.World, e ecs.Entity, clips []prefabs.AudioSpec) error {
	audioComp, err := buildAudioComponent(clips, assets.LoadAudioPlayer)
	if err != nil {
		return err
	}
	if audioComp == nil {
		return nil
	}
	if err := ecs.Add(w, e, component.AudioComponent.Kind(), audioComp); err != nil {
		return fmt.Errorf("audio: add component: %w", err)
	}
	return nil
}

func buildAudioComponent(clips []prefabs.AudioSpec, load func(string) (*audio.Player, error)) (*component.Audio, error) {
	n := len(clips)
	if n == 0 {
		return nil, nil
	}

	out := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
	}
	for i, clip := range clips {
		player, err := load(clip.File)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		out.Names = append(out.Names, clip.Name)
		out.Players = append(out.Players, player)
		out.Volume = append(out.Volume, clip.Volume)
	}
	return out, nil
}
