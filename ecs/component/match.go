package component

// Match is owned by the score keeper. Running flips to true once and never
// back; quitting ends the process instead.
type Match struct {
	ID           string
	Running      bool
	Paused       bool
	StartedFrame uint64
}

var MatchComponent = NewComponent[Match]()
