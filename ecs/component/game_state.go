package component

type GamePhase string

const (
	PhaseIntro GamePhase = "intro"
	PhasePlay  GamePhase = "play"
	PhaseOver  GamePhase = "over"
	PhaseWon   GamePhase = "won"
)

type GameState struct {
	Phase GamePhase
	Level string
	Ticks int
}

var GameStateComponent = NewComponent[GameState]()
