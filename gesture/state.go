package gesture

//go:generate go tool stringer -type=State -trimprefix=State

// State is the phase of a pan gesture.
type State int

const (
	StatePossible State = iota
	StateBegan
	StateChanged
	StateEnded
	StateCancelled
)

// Active reports whether a gesture is in progress.
func (s State) Active() bool {
	return s == StateBegan || s == StateChanged
}
