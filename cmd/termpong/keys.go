package main

import (
	"time"

	"github.com/gdamore/tcell"
	"github.com/milk9111/pong/ecs/component"
)

// holdKeys turns terminal key events into held keys. Terminals report
// presses and auto-repeats but never releases, so a key stays held until
// hold has passed without another event for it.
type holdKeys struct {
	hold    time.Duration
	now     func() time.Time
	until   map[component.Key]time.Time
	pressed map[component.Key]bool
}

func newHoldKeys(hold time.Duration) *holdKeys {
	return &holdKeys{
		hold:    hold,
		now:     time.Now,
		until:   make(map[component.Key]time.Time),
		pressed: make(map[component.Key]bool),
	}
}

func (k *holdKeys) handle(ev *tcell.EventKey) {
	key := translateKey(ev)
	if key == component.KeyUnknown {
		return
	}
	now := k.now()
	if !k.heldAt(key, now) {
		k.pressed[key] = true
	}
	k.until[key] = now.Add(k.hold)
}

func (k *holdKeys) endFrame() {
	for key := range k.pressed {
		delete(k.pressed, key)
	}
}

func (k *holdKeys) heldAt(key component.Key, now time.Time) bool {
	until, ok := k.until[key]
	return ok && now.Before(until)
}

func (k *holdKeys) Held(key component.Key) bool {
	return k.pressed[key] || k.heldAt(key, k.now())
}

func (k *holdKeys) JustPressed(key component.Key) bool {
	return k.pressed[key]
}

func translateKey(ev *tcell.EventKey) component.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return component.KeyArrowUp
	case tcell.KeyDown:
		return component.KeyArrowDown
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return component.KeyEscape
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return component.KeyW
		case 's', 'S':
			return component.KeyS
		case 'p', 'P':
			return component.KeyP
		case ' ':
			return component.KeySpace
		}
	}
	return component.KeyUnknown
}
