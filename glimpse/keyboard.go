package glimpse

import (
	"maps"
	"sync"
)

// Keyboard tracks the pressed state of each key. It is written by the
// window event callbacks and read once per frame by the update loop.
// A key that was never set is not pressed.
//
// All methods are safe for concurrent use.
type Keyboard struct {
	mu      sync.RWMutex
	pressed map[Key]bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{pressed: make(map[Key]bool, 32)}
}

// SetKey records the new state of key. Setting the same state twice has no
// further effect.
func (kb *Keyboard) SetKey(key Key, pressed bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if kb.pressed == nil {
		kb.pressed = map[Key]bool{}
	}

	kb.pressed[key] = pressed
}

// Reset marks every key as released.
func (kb *Keyboard) Reset() {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	clear(kb.pressed)
}

func (kb *Keyboard) IsPressed(key Key) bool {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	return kb.pressed[key]
}

func (kb *Keyboard) Shift() bool {
	return kb.either(KeyLeftShift, KeyRightShift)
}

func (kb *Keyboard) Win() bool {
	return kb.either(KeyLeftSuper, KeyRightSuper)
}

func (kb *Keyboard) Alt() bool {
	return kb.either(KeyLeftAlt, KeyRightAlt)
}

func (kb *Keyboard) Ctrl() bool {
	return kb.either(KeyLeftControl, KeyRightControl)
}

func (kb *Keyboard) either(left, right Key) bool {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	return kb.pressed[left] || kb.pressed[right]
}

// Snapshot returns a copy of the current state. The snapshot does not
// change when keys are set afterward.
func (kb *Keyboard) Snapshot() KeyState {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	pressed := make(map[Key]bool, len(kb.pressed))
	maps.Copy(pressed, kb.pressed)

	return KeyState{pressed: pressed}
}

// KeyState is an immutable view of the keyboard at one point in time.
// The zero value has no key pressed.
type KeyState struct {
	pressed map[Key]bool
}

func (s KeyState) IsPressed(key Key) bool {
	return s.pressed[key]
}

func (s KeyState) Shift() bool {
	return s.pressed[KeyLeftShift] || s.pressed[KeyRightShift]
}

func (s KeyState) Win() bool {
	return s.pressed[KeyLeftSuper] || s.pressed[KeyRightSuper]
}

func (s KeyState) Alt() bool {
	return s.pressed[KeyLeftAlt] || s.pressed[KeyRightAlt]
}

func (s KeyState) Ctrl() bool {
	return s.pressed[KeyLeftControl] || s.pressed[KeyRightControl]
}
