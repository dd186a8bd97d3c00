package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pong/config"
	"github.com/milk9111/pong/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a pong.yaml settings file")
	debug := flag.Bool("debug", false, "enable debug mode (debug logs, FPS overlay, prefab hot reload)")
	cpu := flag.Bool("cpu", false, "let the CPU play the right paddle")
	seed := flag.Uint64("seed", 0, "serve RNG seed (0 = random)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if *debug {
		cfg.Log.Level = "debug"
		cfg.Game.WatchPrefabs = true
	}
	if *cpu {
		cfg.Game.CPUOpponent = true
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	closer, err := logger.Setup(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("set up logging")
	}
	defer closer.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(GameOptions{
		Debug:    *debug,
		CPU:      cfg.Game.CPUOpponent,
		DeadZone: cfg.Game.ScriptDeadZone,
		Seed:     cfg.Game.Seed,
		Watch:    cfg.Game.WatchPrefabs,
	})
	if err != nil {
		logrus.WithError(err).Fatal("new game")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logrus.WithError(err).Error("game exited")
		os.Exit(1)
	}
	logrus.Info("bye")
}
