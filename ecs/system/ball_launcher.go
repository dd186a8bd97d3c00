package system

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pong/common"
	"github.com/milk9111/pong/ecs"
	"github.com/milk9111/pong/ecs/component"
	"github.com/sirupsen/logrus"
)

// BallLauncherSystem serves the ball. It schedules the opening serve when it
// first sees a ball, advances pending relaunch timers by the frame delta,
// re-serves the ball when a timer fires, and turns goal triggers into a
// point plus a new relaunch. It runs after PhysicsSystem so this frame's
// triggers are visible.
type BallLauncherSystem struct {
	rng    *rand.Rand
	served map[ecs.Entity]bool
}

func NewBallLauncherSystem(rng *rand.Rand) *BallLauncherSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &BallLauncherSystem{
		rng:    rng,
		served: make(map[ecs.Entity]bool),
	}
}

func (s *BallLauncherSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.scheduleOpeningServes(w)
	if MatchPaused(w) {
		return
	}

	dt := w.Clock().Delta
	ecs.ForEach2(w, component.BallComponent.Kind(), component.RelaunchComponent.Kind(), func(e ecs.Entity, ball *component.Ball, relaunch *component.Relaunch) {
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			return
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || !body.Ready() {
			return
		}
		if !relaunch.Advance(dt) {
			return
		}
		if err := s.relaunch(w, e, ball, relaunch, body); err != nil {
			panic("ball launcher: " + err.Error())
		}
	})

	for _, c := range ecs.Collisions(w) {
		if !ecs.Has(w, c.Entity, component.BallComponent.Kind()) {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"match": matchID(w),
			"ball":  c.Entity.String(),
			"other": c.OtherTag,
		}).Debug("ball contact")
	}

	for _, trig := range ecs.Triggers(w) {
		if _, err := s.HandleGoal(w, trig.Entity, trig.RegionTag); err != nil {
			panic("ball launcher: " + err.Error())
		}
	}
}

func (s *BallLauncherSystem) scheduleOpeningServes(w *ecs.World) {
	for e := range s.served {
		if !w.IsAlive(e) {
			delete(s.served, e)
		}
	}
	ecs.ForEach2(w, component.BallComponent.Kind(), component.RelaunchComponent.Kind(), func(e ecs.Entity, ball *component.Ball, relaunch *component.Relaunch) {
		if s.served[e] {
			return
		}
		s.served[e] = true
		direction := common.RandSign(s.rng)
		relaunch.Schedule(direction, ball.Delay)
		logrus.WithFields(logrus.Fields{
			"match":     matchID(w),
			"ball":      e.String(),
			"direction": direction,
			"delay":     ball.Delay,
		}).Debug("opening serve scheduled")
	})
}

// HandleGoal processes a ball entering the region tagged regionTag. The side
// defending that region concedes: the other side gets a point and the ball
// is re-served toward the conceding side. Triggers for non-goal regions and
// triggers arriving while a relaunch is already pending are ignored; the
// returned bool reports whether a point was awarded.
func (s *BallLauncherSystem) HandleGoal(w *ecs.World, ballEntity ecs.Entity, regionTag string) (bool, error) {
	ball, ok := ecs.Get(w, ballEntity, component.BallComponent.Kind())
	if !ok {
		return false, nil
	}
	relaunch, ok := ecs.Get(w, ballEntity, component.RelaunchComponent.Kind())
	if !ok {
		return false, fmt.Errorf("goal %q: ball %s has no relaunch timer", regionTag, ballEntity)
	}

	conceding := goalSide(w, regionTag)
	if conceding == component.SideNone {
		return false, nil
	}

	if relaunch.Pending() {
		logrus.WithFields(logrus.Fields{
			"match":  matchID(w),
			"ball":   ballEntity.String(),
			"region": regionTag,
		}).Warn("goal ignored: relaunch already pending")
		return false, nil
	}

	scorer := conceding.Opponent()
	score, err := AwardPoint(w, scorer)
	if err != nil {
		return false, fmt.Errorf("goal %q: %w", regionTag, err)
	}

	direction := conceding.Direction()
	relaunch.Schedule(direction, ball.Delay)

	logrus.WithFields(logrus.Fields{
		"match":     matchID(w),
		"scorer":    scorer.String(),
		"p1":        score.P1,
		"p2":        score.P2,
		"direction": direction,
		"delay":     ball.Delay,
	}).Info("goal")
	return true, nil
}

func goalSide(w *ecs.World, regionTag string) component.Side {
	side := component.SideNone
	ecs.ForEach(w, component.GoalComponent.Kind(), func(_ ecs.Entity, goal *component.Goal) {
		if side == component.SideNone && goal.Tag == regionTag {
			side = goal.Side
		}
	})
	return side
}

// relaunch re-serves the ball from the centre line: a random height in the
// spawn band, a random angle in the angle band, horizontal sign from the
// timer, vertical sign at random. The old velocity is discarded before the
// impulse is applied.
func (s *BallLauncherSystem) relaunch(w *ecs.World, e ecs.Entity, ball *component.Ball, relaunch *component.Relaunch, body *component.PhysicsBody) error {
	y, err := common.RandRange(s.rng, ball.SpawnMinY, ball.SpawnMaxY)
	if err != nil {
		return fmt.Errorf("relaunch %s: spawn height: %w", e, err)
	}
	deg, err := common.RandRange(s.rng, ball.AngleMinDeg, ball.AngleMaxDeg)
	if err != nil {
		return fmt.Errorf("relaunch %s: angle: %w", e, err)
	}
	theta := common.DegToRad(deg)
	dirY := common.RandSign(s.rng)

	ix := math.Cos(theta) * float64(relaunch.Direction)
	iy := math.Sin(theta) * float64(dirY)

	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = 0
		t.Y = y
	}

	pos := cp.Vector{X: 0, Y: y}
	body.Body.SetPosition(pos)
	body.Body.SetVelocityVector(cp.Vector{})
	body.Body.SetAngularVelocity(0)
	body.Body.ApplyImpulseAtWorldPoint(cp.Vector{X: ix * ball.Force, Y: iy * ball.Force}, pos)

	launch, ok := ecs.Get(w, e, component.LaunchComponent.Kind())
	if !ok {
		launch = &component.Launch{}
		if err := ecs.Add(w, e, component.LaunchComponent.Kind(), launch); err != nil {
			return fmt.Errorf("relaunch %s: record launch: %w", e, err)
		}
	}
	launch.Count++
	launch.SpawnY = y
	launch.AngleRad = theta
	launch.ImpulseX = ix
	launch.ImpulseY = iy

	logrus.WithFields(logrus.Fields{
		"match":     matchID(w),
		"ball":      e.String(),
		"spawn_y":   y,
		"angle_deg": deg,
		"impulse_x": ix,
		"impulse_y": iy,
	}).Info("ball relaunched")
	return nil
}
