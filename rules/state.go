package rules

// State is the life stage of a single cell
type State uint8

const (
	// Dead is the zero value so a freshly allocated buffer is all dead
	Dead State = iota
	Alive
	Dying
)

// String returns the lower-case state name
func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// IsPresent reports whether the state counts as a neighbor
func (s State) IsPresent() bool {
	return s == Alive || s == Dying
}

// Valid reports whether s is one of the three defined states
func (s State) Valid() bool {
	return s <= Dying
}

// ParseState maps a state name back to its State
func ParseState(name string) (State, bool) {
	switch name {
	case "alive":
		return Alive, true
	case "dying":
		return Dying, true
	case "dead":
		return Dead, true
	}
	return Dead, false
}
