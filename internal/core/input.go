package core

// Input is the per-tick logical paddle command, abstracted from physical key state.
type Input int

const (
	InputIdle  Input = iota
	InputLeft        // A, Left arrow
	InputRight       // D, Right arrow
)

// String returns a human-readable name for the input.
func (in Input) String() string {
	switch in {
	case InputIdle:
		return "Idle"
	case InputLeft:
		return "Left"
	case InputRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// InputFrame holds the raw directional state for a single simulation tick.
// Both directions may be asserted at once; Logical resolves the conflict.
type InputFrame struct {
	Left  bool
	Right bool
}

// Logical collapses the frame into a single Input.
// Right is checked first, so it wins when both directions are held.
func (f InputFrame) Logical() Input {
	if f.Right {
		return InputRight
	}
	if f.Left {
		return InputLeft
	}
	return InputIdle
}
