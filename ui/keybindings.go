package ui

import (
	"github.com/gdamore/tcell/v2"
)

// KeyAction represents an action that can be triggered by keybindings
type KeyAction struct {
	name    string
	handler func()
}

// NewKeyAction creates a named action
func NewKeyAction(name string, handler func()) KeyAction {
	return KeyAction{name: name, handler: handler}
}

// KeyBindingManager manages all keybindings and dispatches events
type KeyBindingManager struct {
	bindings  map[tcell.Key]KeyAction // special key -> action mapping
	runeMap   map[rune]KeyAction      // rune -> action mapping
	sequences map[string]KeyAction    // multi-key sequences like "gg"
	pending   string                  // pending prefix of a multi-key sequence
}

// NewKeyBindingManager creates a new key binding manager
func NewKeyBindingManager() *KeyBindingManager {
	return &KeyBindingManager{
		bindings:  make(map[tcell.Key]KeyAction),
		runeMap:   make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}
}

// RegisterKeyBinding registers a single key binding
func (km *KeyBindingManager) RegisterKeyBinding(action KeyAction, keys []tcell.Key, runes []rune) {
	for _, key := range keys {
		km.bindings[key] = action
	}
	for _, r := range runes {
		km.runeMap[r] = action
	}
}

// RegisterSequence registers a multi-key rune sequence such as "gg"
func (km *KeyBindingManager) RegisterSequence(sequence string, action KeyAction) {
	km.sequences[sequence] = action
}

// HandleKey handles a keyboard event and returns true if it was consumed
func (km *KeyBindingManager) HandleKey(event *tcell.EventKey) bool {
	// Check for special keys first
	if event.Key() != tcell.KeyRune {
		km.pending = "" // reset pending sequence on non-rune key
		if action, ok := km.bindings[event.Key()]; ok {
			action.handler()
			return true
		}
		return false
	}

	r := event.Rune()
	candidate := km.pending + string(r)

	// Complete sequence wins over everything
	if action, ok := km.sequences[candidate]; ok {
		km.pending = ""
		action.handler()
		return true
	}

	// Candidate is a strict prefix of a registered sequence: hold it
	if km.hasSequencePrefix(candidate) {
		km.pending = candidate
		return true
	}

	// Abandoned sequence: fall back to the current rune as standalone
	km.pending = ""
	if action, ok := km.runeMap[r]; ok {
		action.handler()
		return true
	}
	return false
}

func (km *KeyBindingManager) hasSequencePrefix(prefix string) bool {
	for sequence := range km.sequences {
		if len(sequence) > len(prefix) && sequence[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// ResetPending resets the pending key sequence
func (km *KeyBindingManager) ResetPending() {
	km.pending = ""
}
