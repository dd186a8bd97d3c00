package system

import (
	"math/rand/v2"

	"github.com/milk9111/pong/ecs"
)

// Pipeline is the match's system set in frame order. Every host installs
// the same pipeline and only differs in its KeySource and Quit hook.
type Pipeline struct {
	Input        *InputSystem
	ScoreKeeper  *ScoreKeeperSystem
	PaddleScript *PaddleScriptSystem
	Paddle       *PaddleSystem
	Physics      *PhysicsSystem
	Launcher     *BallLauncherSystem
	ScoreDisplay *ScoreDisplaySystem
}

func NewPipeline(keys KeySource, rng *rand.Rand, quit func()) *Pipeline {
	return &Pipeline{
		Input:        NewInputSystem(keys),
		ScoreKeeper:  NewScoreKeeperSystem(quit),
		PaddleScript: NewPaddleScriptSystem(),
		Paddle:       NewPaddleSystem(),
		Physics:      NewPhysicsSystem(),
		Launcher:     NewBallLauncherSystem(rng),
		ScoreDisplay: NewScoreDisplaySystem(),
	}
}

// Install adds the systems to w. Launcher runs after Physics so goal
// triggers raised by this frame's step are handled in the same frame.
func (p *Pipeline) Install(w *ecs.World) {
	for _, s := range []ecs.System{
		p.Input,
		p.ScoreKeeper,
		p.PaddleScript,
		p.Paddle,
		p.Physics,
		p.Launcher,
		p.ScoreDisplay,
	} {
		w.AddSystem(s)
	}
}
