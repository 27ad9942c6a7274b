package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named players. Players may be nil when running headless; the
// audio system still records which entries were requested.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
}

var AudioComponent = NewComponent[Audio]()
