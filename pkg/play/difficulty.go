package play

// Difficulty selects how hard the card-play AI tries. Levels below Expert
// differ only in search depth; Expert additionally routes through the exact
// solver when one is available.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
	Expert
)

func (d Difficulty) String() string {
	if d < Beginner || d > Expert {
		return "unknown"
	}
	return [...]string{"beginner", "intermediate", "advanced", "expert"}[d]
}

// defaultDepths is indexed by Difficulty. Expert uses the deepest search as
// its fallback behind the solver.
var defaultDepths = [...]int{1, 3, 6, 8}

// Depth returns the default search depth for the level.
func (d Difficulty) Depth() int {
	if d < Beginner || d > Expert {
		return defaultDepths[Intermediate]
	}
	return defaultDepths[d]
}

// ParseDifficulty maps a level name to its Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	for d := Beginner; d <= Expert; d++ {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}
