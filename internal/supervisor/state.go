// internal/supervisor/state.go
package supervisor

// State is a supervisor loop state.
type State int

const (
	Checking State = iota
	IdleRoutine
	IdleQuiet
	Recovering
	Terminated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case IdleRoutine:
		return "idle_routine"
	case IdleQuiet:
		return "idle_quiet"
	case Recovering:
		return "recovering"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}
