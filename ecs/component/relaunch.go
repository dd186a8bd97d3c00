package component

// RelaunchState is the phase of a deferred relaunch.
type RelaunchState int

const (
	RelaunchIdle RelaunchState = iota
	RelaunchPending
	RelaunchFired
)

func (s RelaunchState) String() string {
	switch s {
	case RelaunchIdle:
		return "idle"
	case RelaunchPending:
		return "pending"
	case RelaunchFired:
		return "fired"
	default:
		return "unknown"
	}
}

// relaunchEpsilon absorbs float drift when summing frame deltas so a delay
// of 1s fires after ten 0.1s frames.
const relaunchEpsilon = 1e-9

// Relaunch is a one-shot timer advanced by frame deltas. While Pending the
// ball is waiting to be re-served toward Direction.
type Relaunch struct {
	State     RelaunchState
	Remaining float64
	Direction int
}

// Schedule arms the timer. It refuses while another relaunch is pending so
// a stray second trigger cannot queue a second serve.
func (r *Relaunch) Schedule(direction int, delay float64) bool {
	if r.State == RelaunchPending {
		return false
	}
	if delay < 0 {
		delay = 0
	}
	r.State = RelaunchPending
	r.Remaining = delay
	r.Direction = direction
	return true
}

// Cancel drops a pending relaunch.
func (r *Relaunch) Cancel() bool {
	if r.State != RelaunchPending {
		return false
	}
	r.State = RelaunchIdle
	r.Remaining = 0
	return true
}

// Pending reports whether a relaunch is waiting to fire.
func (r *Relaunch) Pending() bool {
	return r.State == RelaunchPending
}

// Advance consumes dt seconds and reports true on the frame the timer fires.
func (r *Relaunch) Advance(dt float64) bool {
	if r.State != RelaunchPending {
		return false
	}
	if dt > 0 {
		r.Remaining -= dt
	}
	if r.Remaining > relaunchEpsilon {
		return false
	}
	r.Remaining = 0
	r.State = RelaunchFired
	return true
}

var RelaunchComponent = NewComponent[Relaunch]()
