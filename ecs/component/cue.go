package component

// Cue names a sound effect request.
type Cue string

const (
	CueCollide Cue = "collide"
	CueBreak   Cue = "break"
	CueBounce  Cue = "bounce"
	CueHit     Cue = "hit"
)

type CueRequest struct {
	Cue    Cue
	Volume float64
}

// CueQueue collects cue requests raised during a tick until the audio system
// drains them.
type CueQueue struct {
	Requests []CueRequest
}

func (q *CueQueue) Push(cue Cue, volume float64) {
	q.Requests = append(q.Requests, CueRequest{Cue: cue, Volume: volume})
}

var CueQueueComponent = NewComponent[CueQueue]()
