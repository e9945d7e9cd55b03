package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the engine to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionJump             // Space, W, Up - upward impulse; also starts a run from Idle
	ActionMoveLeft         // A, Left - one horizontal step left
	ActionMoveRight        // D, Right - one horizontal step right
	ActionRestart          // R - start a fresh run after game over
	ActionQuit             // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the intents issued during one simulation tick.
// Horizontal moves are counted since several key repeats may land in one tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Moves is the net horizontal step count (negative = left).
	Moves int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	switch a {
	case ActionMoveLeft:
		f.Moves--
		return
	case ActionMoveRight:
		f.Moves++
		return
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	switch a {
	case ActionMoveLeft:
		return f.Moves < 0
	case ActionMoveRight:
		return f.Moves > 0
	}
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether the frame carries no intents.
func (f InputFrame) Empty() bool {
	return f.Moves == 0 && len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Moves = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Moves = f.Moves
	return clone
}
