package rules

// DefaultDecay is the number of steps a freshly dying cell lingers
const DefaultDecay = 3

/*
ApplyDecayRules computes the next state and decay timer of a single cell.

Alive cells survive with 2 or 3 neighbors and otherwise start dying with a
full decay timer. Dying cells count down and only become dead on the step
after their timer reads zero. Dead cells are born with exactly 3 neighbors.
Neighbors include both alive and dying cells.
*/
func ApplyDecayRules(state State, timer, neighbors, decay int) (State, int) {
	switch state {
	case Alive:
		if neighbors < 2 || neighbors > 3 {
			return Dying, decay
		}
		return Alive, 0
	case Dying:
		if timer <= 0 {
			return Dead, 0
		}
		return Dying, timer - 1
	default:
		if neighbors == 3 {
			return Alive, 0
		}
		return Dead, 0
	}
}
