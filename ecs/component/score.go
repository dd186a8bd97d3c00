package component

// Score holds both players' points. Counters only grow.
type Score struct {
	P1 int
	P2 int
}

func (s *Score) AddPointP1() {
	s.P1++
}

func (s *Score) AddPointP2() {
	s.P2++
}

// AddPoint credits side with one point. It reports false for SideNone.
func (s *Score) AddPoint(side Side) bool {
	switch side {
	case Side1:
		s.AddPointP1()
	case Side2:
		s.AddPointP2()
	default:
		return false
	}
	return true
}

// Of returns the points of side.
func (s Score) Of(side Side) int {
	switch side {
	case Side1:
		return s.P1
	case Side2:
		return s.P2
	default:
		return 0
	}
}

var ScoreComponent = NewComponent[Score]()

// ScoreChanged marks the score entity after a point so the display refreshes
// once instead of every frame.
type ScoreChanged struct{}

var ScoreChangedComponent = NewComponent[ScoreChanged]()

// ScoreText is a display sink for one side's counter.
type ScoreText struct {
	Side Side
	Text string
	Size float64
}

var ScoreTextComponent = NewComponent[ScoreText]()
