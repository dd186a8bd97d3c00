// Command termpong plays the match in a terminal.
package main

import (
	"flag"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell"
	"github.com/milk9111/pong/config"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/milk9111/pong/ecs/entity"
	"github.com/milk9111/pong/ecs/system"
	"github.com/milk9111/pong/logger"
	"github.com/sirupsen/logrus"
)

const tps = 60

func main() {
	configPath := flag.String("config", "", "path to a pong.yaml settings file")
	cpu := flag.Bool("cpu", false, "let the script play the right paddle")
	hold := flag.Duration("hold", 220*time.Millisecond, "how long a key counts as held after its last repeat")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	// The terminal is the screen; logs go to a file.
	if cfg.Log.File == "" {
		cfg.Log.File = "termpong.log"
	}
	closer, err := logger.Setup(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("set up logging")
	}
	defer closer.Close()

	w := ecs.NewWorld()
	opts := entity.MatchOptions{DeadZone: cfg.Game.ScriptDeadZone}
	if *cpu || cfg.Game.CPUOpponent {
		opts.Scripted = []component.Side{component.Side2}
	}
	m, err := entity.BuildMatch(w, opts)
	if err != nil {
		logrus.WithError(err).Fatal("build match")
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logrus.WithFields(logrus.Fields{"match": m.ID, "seed": seed}).Info("termpong start")

	screen, err := tcell.NewScreen()
	if err != nil {
		logrus.WithError(err).Fatal("open terminal")
	}
	if err := screen.Init(); err != nil {
		logrus.WithError(err).Fatal("init terminal")
	}
	defer screen.Fini()
	screen.SetStyle(backgroundStyle)
	screen.HideCursor()

	keys := newHoldKeys(*hold)
	quit := false
	system.NewPipeline(keys, rand.New(rand.NewPCG(seed, seed^0x5eed)), func() { quit = true }).Install(w)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / tps)
	defer ticker.Stop()
	for !quit {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys.handle(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			w.Update(1.0 / tps)
			keys.endFrame()
			drawWorld(screen, w)
			screen.Show()
		}
	}

	if score, ok := ecs.Get(w, m.Scoreboard, component.ScoreComponent.Kind()); ok {
		logrus.WithFields(logrus.Fields{"match": m.ID, "p1": score.P1, "p2": score.P2}).Info("termpong quit")
	}
}
