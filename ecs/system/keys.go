package system

import "github.com/milk9111/pong/ecs/component"

// KeySource is the host's keyboard as seen by the input system.
type KeySource interface {
	// Held reports whether key is down this frame.
	Held(key component.Key) bool
	// JustPressed reports whether key went down this frame.
	JustPressed(key component.Key) bool
}

// KeyState is a KeySource driven by code. Headless runs and tests press and
// release keys on it and call EndFrame after each world update.
type KeyState struct {
	held    map[component.Key]bool
	pressed map[component.Key]bool
}

func NewKeyState() *KeyState {
	return &KeyState{
		held:    make(map[component.Key]bool),
		pressed: make(map[component.Key]bool),
	}
}

// Press holds key down; the first frame counts as just pressed.
func (k *KeyState) Press(key component.Key) {
	if !k.held[key] {
		k.pressed[key] = true
	}
	k.held[key] = true
}

// Release lets go of key.
func (k *KeyState) Release(key component.Key) {
	delete(k.held, key)
	delete(k.pressed, key)
}

// Tap presses key for a single frame.
func (k *KeyState) Tap(key component.Key) {
	k.pressed[key] = true
}

// EndFrame clears just-pressed edges and single-frame taps.
func (k *KeyState) EndFrame() {
	for key := range k.pressed {
		delete(k.pressed, key)
	}
}

func (k *KeyState) Held(key component.Key) bool {
	return k.held[key] || k.pressed[key]
}

func (k *KeyState) JustPressed(key component.Key) bool {
	return k.pressed[key]
}
