package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// KeyMapper translates key messages to game and menu actions.
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper creates a key mapper with arrow, WASD and vim bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: map[string]core.Action{
			"up": core.ActionUp, "w": core.ActionUp, "k": core.ActionUp,
			"down": core.ActionDown, "s": core.ActionDown, "j": core.ActionDown,
			"left": core.ActionLeft, "a": core.ActionLeft, "h": core.ActionLeft,
			"right": core.ActionRight, "d": core.ActionRight, "l": core.ActionRight,
			"enter": core.ActionConfirm,
			"b":     core.ActionBack, "esc": core.ActionBack,
			"p": core.ActionPause, " ": core.ActionPause,
			"r": core.ActionRestart,
		},
		menu: map[string]MenuAction{
			"up": MenuActionUp, "w": MenuActionUp, "k": MenuActionUp,
			"down": MenuActionDown, "s": MenuActionDown, "j": MenuActionDown,
			"enter": MenuActionSelect, " ": MenuActionSelect,
			"b": MenuActionBack, "esc": MenuActionBack,
			"tab": MenuActionScoreboard,
		},
	}
}

// MapKey returns the game action for a key and whether it requests quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return core.ActionQuit, true
	}
	return km.game[key], false
}

// MapKeyToFrame records the key's action in frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a menu-level intent.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return MenuActionQuit
	}
	return km.menu[key]
}
