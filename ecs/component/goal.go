package component

// Goal is the sensor region behind a side's paddle. Tag is the region label
// delivered with trigger events.
type Goal struct {
	Side Side
	Tag  string
}

var GoalComponent = NewComponent[Goal]()
