package system

import (
	"github.com/milk9111/frostpurge/common"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
)

const recentCues = 8

// AudioSystem drains cue requests into matching Audio entries and plays them.
// Entries without a player are still marked so headless runs can observe
// what would have played.
type AudioSystem struct {
	recent []component.CueRequest
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// Recent returns the last few cue requests, oldest first.
func (a *AudioSystem) Recent() []component.CueRequest {
	out := make([]component.CueRequest, len(a.recent))
	copy(out, a.recent)
	return out
}

func (a *AudioSystem) Update(w *ecs.World) {
	var requests []component.CueRequest
	if qe, ok := ecs.First(w, component.CueQueueComponent.Kind()); ok {
		q, _ := ecs.Get(w, qe, component.CueQueueComponent.Kind())
		requests = q.Requests
		q.Requests = nil
	}
	a.recent = append(a.recent, requests...)
	if n := len(a.recent); n > recentCues {
		a.recent = append(a.recent[:0], a.recent[n-recentCues:]...)
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		gain := make([]float64, len(audioComp.Names))
		for _, req := range requests {
			for i, name := range audioComp.Names {
				if name == string(req.Cue) && i < len(audioComp.Play) {
					audioComp.Play[i] = true
					gain[i] = req.Volume
				}
			}
		}

		count := min(len(audioComp.Play), len(audioComp.Players))
		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player == nil {
				continue
			}
			base := 1.0
			if i < len(audioComp.Volume) {
				base = audioComp.Volume[i]
			}
			if gain[i] == 0 {
				gain[i] = 1
			}
			player.SetVolume(common.Clamp(base*gain[i], 0, 1))
			player.Rewind()
			player.Play()
			audioComp.Play[i] = false
		}
	})
}
