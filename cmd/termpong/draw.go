package main

import (
	"sort"

	"github.com/gdamore/tcell"
	"github.com/milk9111/pong/common"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/milk9111/pong/ecs/system"
)

// Visible world extents; a little wider than the arena so walls and
// paddles are never clipped.
const (
	viewHalfWidth  = common.ArenaHalfWidth + 0.5
	viewHalfHeight = common.ArenaHalfHeight + 0.5
)

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	netStyle        = backgroundStyle.Foreground(tcell.ColorGray)
)

// cellOf maps a world point onto a cols x rows grid, clamped to the grid.
func cellOf(x, y float64, cols, rows int) (int, int) {
	col := int((x + viewHalfWidth) / (2 * viewHalfWidth) * float64(cols))
	row := int((viewHalfHeight - y) / (2 * viewHalfHeight) * float64(rows))
	return clampInt(col, 0, cols-1), clampInt(row, 0, rows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type cellShape struct {
	shape *component.Shape
	x, y  float64
}

func drawWorld(screen tcell.Screen, w *ecs.World) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	screen.Clear()

	mid, _ := cellOf(0, 0, cols, rows)
	for row := 0; row < rows; row += 2 {
		screen.SetContent(mid, row, '┆', nil, netStyle)
	}

	var items []cellShape
	ecs.ForEach2(w, component.ShapeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Shape, t *component.Transform) {
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			return
		}
		items = append(items, cellShape{shape: s, x: t.X, y: t.Y})
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].shape.Layer < items[j].shape.Layer })

	for _, it := range items {
		c := it.shape.Color
		style := backgroundStyle.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		if it.shape.Kind == component.ShapeCircle {
			col, row := cellOf(it.x, it.y, cols, rows)
			screen.SetContent(col, row, '●', nil, style)
			continue
		}
		left, top := cellOf(it.x-it.shape.Width/2, it.y+it.shape.Height/2, cols, rows)
		right, bottom := cellOf(it.x+it.shape.Width/2, it.y-it.shape.Height/2, cols, rows)
		for row := top; row <= bottom; row++ {
			for col := left; col <= right; col++ {
				screen.SetContent(col, row, '█', nil, style)
			}
		}
	}

	ecs.ForEach2(w, component.ScoreTextComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, st *component.ScoreText, t *component.Transform) {
		col, row := cellOf(t.X, t.Y, cols, rows)
		drawText(screen, col-len(st.Text)/2, row, st.Text, backgroundStyle)
	})

	switch {
	case !system.MatchRunning(w):
		drawCentered(screen, rows/2, "PONG  -  space to serve, esc to quit")
	case system.MatchPaused(w):
		drawCentered(screen, rows/2, "paused  -  p to resume")
	}
}

func drawCentered(screen tcell.Screen, row int, s string) {
	cols, _ := screen.Size()
	drawText(screen, (cols-len([]rune(s)))/2, row, s, backgroundStyle.Bold(true))
}

func drawText(screen tcell.Screen, col, row int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(col, row, r, nil, style)
		col++
	}
}
