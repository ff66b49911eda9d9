package core

// Action is a semantic sandbox command, abstracted from physical keys.
type Action int

const (
	ActionNone         Action = iota
	ActionPause               // Space - pause/resume physics
	ActionToggleEdit          // E - enter/leave edit mode
	ActionToggleAir           // A - air resistance on/off
	ActionToggleNodes         // N - draw point markers
	ActionExtend              // +, wheel up - append a segment
	ActionShrink              // -, wheel down - drop the last segment
	ActionDeleteSelect        // X, Delete - delete the selected point
	ActionRestart             // R - rebuild the scene
	ActionQuit                // Q, Ctrl+C - leave the sandbox
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionToggleEdit:
		return "ToggleEdit"
	case ActionToggleAir:
		return "ToggleAir"
	case ActionToggleNodes:
		return "ToggleNodes"
	case ActionExtend:
		return "Extend"
	case ActionShrink:
		return "Shrink"
	case ActionDeleteSelect:
		return "Delete"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerButton identifies the mouse button behind a pointer event.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonRight
)

// PointerKind is what happened to the pointer.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerPress
	PointerRelease
)

// PointerEvent is a mouse event in screen cell coordinates.
type PointerEvent struct {
	X, Y   int
	Kind   PointerKind
	Button PointerButton
}

// InputFrame collects everything the user did between two ticks.
// Actions are a set; pointer events keep their arrival order because a
// press followed by a move is not the same as a move followed by a press.
type InputFrame struct {
	Actions  map[Action]bool
	Pointers []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer appends a pointer event.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointers = append(f.Pointers, ev)
}

// Clear resets the frame for the next tick, keeping allocated storage.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointers = f.Pointers[:0]
}
