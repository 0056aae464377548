package milp

// Status is the outcome reported by a solver run. The scheduling engine
// surfaces it verbatim and never retries on its own.
type Status int

const (
	// NotSolved means the solver gave up before proving anything, for
	// example because the node budget ran out with no incumbent.
	NotSolved Status = iota
	// Optimal means an integral solution was found and proven optimal.
	Optimal
	// Feasible means an integral solution was found but optimality was not
	// proven before the solver stopped.
	Feasible
	// Infeasible means no integral solution exists.
	Infeasible
	// Unbounded means the relaxation is unbounded.
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "not-solved"
	}
}

// Solved reports whether the run produced a usable assignment.
func (s Status) Solved() bool { return s == Optimal || s == Feasible }
