package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pong/ecs/component"
)

var ebitenKeyMap = map[component.Key]ebiten.Key{
	component.KeyW:         ebiten.KeyW,
	component.KeyS:         ebiten.KeyS,
	component.KeyArrowUp:   ebiten.KeyArrowUp,
	component.KeyArrowDown: ebiten.KeyArrowDown,
	component.KeySpace:     ebiten.KeySpace,
	component.KeyEscape:    ebiten.KeyEscape,
	component.KeyP:         ebiten.KeyP,
}

// ebitenKeys reads the keyboard through ebiten.
type ebitenKeys struct{}

func (ebitenKeys) Held(key component.Key) bool {
	k, ok := ebitenKeyMap[key]
	return ok && ebiten.IsKeyPressed(k)
}

func (ebitenKeys) JustPressed(key component.Key) bool {
	k, ok := ebitenKeyMap[key]
	return ok && inpututil.IsKeyJustPressed(k)
}
