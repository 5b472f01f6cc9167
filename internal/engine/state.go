package engine

// State is the lifecycle state of a Session. Transitions follow a fixed
// graph: Initializing -> Running <-> Paused, Running -> GameOver,
// Running/Paused -> Terminated (quit), GameOver -> Terminated.
// GameOver and Terminated are absorbing.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StatePaused
	StateGameOver
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
