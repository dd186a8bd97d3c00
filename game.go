package main

import (
	"fmt"
	"math/rand/v2"
	"path"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/pong/common"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/milk9111/pong/ecs/entity"
	"github.com/milk9111/pong/ecs/system"
	"github.com/milk9111/pong/prefabs"
	"github.com/sirupsen/logrus"
)

type GameOptions struct {
	Debug    bool
	CPU      bool
	DeadZone float64
	Seed     uint64
	Watch    bool
}

type Game struct {
	frames int
	debug  bool
	quit   bool

	world    *ecs.World
	match    *entity.Match
	pipeline *system.Pipeline

	watcher *prefabs.Watcher
	titleUI *ebitenui.UI
	pauseUI *ebitenui.UI
	fontSrc *text.GoTextFaceSource
}

func NewGame(opts GameOptions) (*Game, error) {
	g := &Game{debug: opts.Debug, world: ecs.NewWorld()}

	var scripted []component.Side
	if opts.CPU {
		scripted = append(scripted, component.Side2)
	}
	m, err := entity.BuildMatch(g.world, entity.MatchOptions{Scripted: scripted, DeadZone: opts.DeadZone})
	if err != nil {
		return nil, err
	}
	g.match = m

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logrus.WithFields(logrus.Fields{"match": m.ID, "seed": seed, "cpu": opts.CPU}).Info("new game")

	g.pipeline = system.NewPipeline(ebitenKeys{}, rand.New(rand.NewPCG(seed, seed^0x5eed)), g.requestQuit)
	g.pipeline.Install(g.world)

	g.fontSrc, err = newScoreFaceSource()
	if err != nil {
		return nil, fmt.Errorf("load score font: %w", err)
	}
	g.titleUI = NewTitleUI()
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			logrus.WithError(err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) requestQuit() {
	g.quit = true
}

func (g *Game) resume() {
	if match, ok := ecs.Get(g.world, g.match.Scoreboard, component.MatchComponent.Kind()); ok {
		match.Paused = false
	}
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.reloadPrefabs()
	g.world.Update(1.0 / float64(ebiten.TPS()))

	switch {
	case !system.MatchRunning(g.world):
		g.titleUI.Update()
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	case system.MatchPaused(g.world):
		g.pauseUI.Update()
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	default:
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		logrus.WithError(err).Warn("prefab watcher")
	default:
	}

	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	for _, name := range changed {
		if path.Ext(name) == ".tengo" {
			g.pipeline.PaddleScript.Reset()
			logrus.WithField("script", name).Info("paddle scripts reloaded")
			break
		}
	}
	if _, err := entity.ReloadTunables(g.world, changed); err != nil {
		logrus.WithError(err).Warn("prefab reload failed")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world)
	drawScores(screen, g.world, g.fontSrc)

	switch {
	case !system.MatchRunning(g.world):
		g.titleUI.Draw(screen)
	case system.MatchPaused(g.world):
		g.pauseUI.Draw(screen)
	}

	if g.debug {
		drawPhysicsDebug(g.pipeline.Physics.Space(), screen)
		drawMatchDebug(g.world, g.match.Ball, screen)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Match: %s", g.frames, ebiten.ActualFPS(), g.match.ID))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
