package main

import (
	"bytes"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/pong/common"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	backgroundColor = color.NRGBA{R: 0x14, G: 0x14, B: 0x1c, A: 0xff}
	netColor        = color.NRGBA{R: 0x3c, G: 0x3c, B: 0x4a, A: 0xff}
	scoreColor      = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
)

func newScoreFaceSource() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
}

type drawable struct {
	shape *component.Shape
	x, y  float64
}

// drawWorld draws every enabled shape, lowest layer first, then the net.
func drawWorld(screen *ebiten.Image, w *ecs.World) {
	screen.Fill(backgroundColor)

	for y := 0.0; y < common.BaseHeight; y += 30 {
		vector.FillRect(screen, common.BaseWidth/2-2, float32(y), 4, 15, netColor, false)
	}

	var items []drawable
	ecs.ForEach2(w, component.ShapeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Shape, t *component.Transform) {
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			return
		}
		items = append(items, drawable{shape: s, x: t.X, y: t.Y})
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].shape.Layer < items[j].shape.Layer })

	for _, it := range items {
		sx, sy := common.WorldToScreen(it.x, it.y)
		switch it.shape.Kind {
		case component.ShapeCircle:
			r := it.shape.Radius * common.PixelsPerUnit
			vector.FillCircle(screen, float32(sx), float32(sy), float32(r), it.shape.Color, true)
		default:
			wpx := it.shape.Width * common.PixelsPerUnit
			hpx := it.shape.Height * common.PixelsPerUnit
			vector.FillRect(screen, float32(sx-wpx/2), float32(sy-hpx/2), float32(wpx), float32(hpx), it.shape.Color, false)
		}
	}
}

// drawScores renders the score text sinks at their transforms.
func drawScores(screen *ebiten.Image, w *ecs.World, src *text.GoTextFaceSource) {
	if src == nil {
		return
	}
	ecs.ForEach2(w, component.ScoreTextComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, st *component.ScoreText, t *component.Transform) {
		size := st.Size
		if size <= 0 {
			size = 32
		}
		x, y := common.WorldToScreen(t.X, t.Y)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(scoreColor)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, st.Text, &text.GoTextFace{Source: src, Size: size}, op)
	})
}
