package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rope/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to sandbox input.
// This centralizes bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a sandbox action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "p":
		return core.ActionPause, false
	case "e":
		return core.ActionToggleEdit, false
	case "a":
		return core.ActionToggleAir, false
	case "n":
		return core.ActionToggleNodes, false
	case "+", "=":
		return core.ActionExtend, false
	case "-", "_":
		return core.ActionShrink, false
	case "x", "delete", "backspace":
		return core.ActionDeleteSelect, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame updates an input frame based on a mouse message.
// The wheel extends and shrinks the chain; everything else becomes a
// pointer event in cell coordinates.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			frame.Set(core.ActionExtend)
		}
		return
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			frame.Set(core.ActionShrink)
		}
		return
	}

	ev := core.PointerEvent{X: msg.X, Y: msg.Y, Button: mapButton(msg.Button)}
	switch msg.Action {
	case tea.MouseActionPress:
		if ev.Button == core.ButtonNone {
			return
		}
		ev.Kind = core.PointerPress
	case tea.MouseActionRelease:
		ev.Kind = core.PointerRelease
	default:
		ev.Kind = core.PointerMove
	}
	frame.AddPointer(ev)
}

func mapButton(b tea.MouseButton) core.PointerButton {
	switch b {
	case tea.MouseButtonLeft:
		return core.ButtonLeft
	case tea.MouseButtonRight:
		return core.ButtonRight
	default:
		return core.ButtonNone
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionLayouts
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "l", "tab":
		return MenuActionLayouts
	}

	return MenuActionNone
}
