package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pong/common"
	"golang.org/x/image/font/basicfont"
)

var overlayTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func overlayPanel() *widget.Container {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
}

func overlayLabel(s string, face *ebtext.Face) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, overlayTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func overlayUI(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func basicFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

// NewTitleUI is shown until the match starts.
func NewTitleUI() *ebitenui.UI {
	face := basicFace()
	panel := overlayPanel()
	panel.AddChild(overlayLabel("PONG", &face))
	panel.AddChild(overlayLabel("W / S        left paddle", &face))
	panel.AddChild(overlayLabel("Up / Down    right paddle", &face))
	panel.AddChild(overlayLabel("Space to serve, P to pause, Esc to quit", &face))
	return overlayUI(panel)
}

// NewPauseUI is shown while the match is paused.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := basicFace()
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: overlayTextColor}

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.resume()
		}),
	)
	quitBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Quit", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.requestQuit()
		}),
	)

	panel := overlayPanel()
	panel.AddChild(overlayLabel("Paused", &face))
	panel.AddChild(resumeBtn)
	panel.AddChild(quitBtn)
	return overlayUI(panel)
}
