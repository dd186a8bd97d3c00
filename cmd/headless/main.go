package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/pong/config"
	"github.com/milk9111/pong/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a pong.yaml settings file")
	runs := flag.Int("runs", 5, "number of matches to simulate")
	seed := flag.Uint64("seed", 1, "seed of the first run; run i uses seed+i")
	seconds := flag.Float64("seconds", 120, "simulated seconds per match")
	deadZone := flag.Float64("dead-zone", -1, "script dead zone (negative = from config)")
	p2DeadZone := flag.Float64("p2-dead-zone", 1.5, "dead zone of the right paddle; wider than the paddle makes it miss")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	closer, err := logger.Setup(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("set up logging")
	}
	defer closer.Close()

	dz := cfg.Game.ScriptDeadZone
	if *deadZone >= 0 {
		dz = *deadZone
	}

	failed := false
	for i := 0; i < *runs; i++ {
		res, err := runMatch(*seed+uint64(i), runSettings{Seconds: *seconds, DeadZone: dz, P2DeadZone: *p2DeadZone})
		if err != nil {
			logrus.WithError(err).WithField("seed", *seed+uint64(i)).Error("run failed")
			failed = true
			continue
		}
		fmt.Printf("seed=%d match=%s frames=%d p1=%d p2=%d launches=%d contacts=%d\n",
			res.Seed, res.MatchID, res.Frames, res.Score.P1, res.Score.P2, res.Launches, res.Contacts)
	}
	if failed {
		os.Exit(1)
	}
}
