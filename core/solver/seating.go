package solver

import (
	"fmt"

	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/internal/milp"
)

// SolveSeating seats startups at tables per round given OS/OC tables already
// fixed by the index. With a nil tableFit it is a pure feasibility model;
// otherwise total seated table fit is maximised.
//
// The returned status is the solver's verdict verbatim. A schedule is only
// returned when the status is optimal or feasible, and it is always complete:
// no partial schedules.
func (e *Engine) SolveSeating(idx *session.Index, cfg session.Config, tableFit map[TableFitKey]float64) (milp.Status, Schedule, error) {
	if err := cfg.Validate(); err != nil {
		return milp.NotSolved, nil, fmt.Errorf("session config: %w", err)
	}

	m := milp.NewModel()

	// x[s][t][k] = 1 when startup s sits at table t in round k.
	x := make(map[string]map[int][]milp.Var, len(idx.Startups))
	for _, s := range idx.Startups {
		x[s] = make(map[int][]milp.Var, len(idx.Tables))
		for _, t := range idx.Tables {
			vars := make([]milp.Var, cfg.Rounds)
			for k := 1; k <= cfg.Rounds; k++ {
				vars[k-1] = m.Binary(fmt.Sprintf("x_%s_%d_%d", s, t, k))
			}
			x[s][t] = vars
		}
	}

	// Each startup occupies exactly one table per round.
	for _, s := range idx.Startups {
		for k := 1; k <= cfg.Rounds; k++ {
			var row milp.Expr
			for _, t := range idx.Tables {
				row = row.Add(x[s][t][k-1], 1)
			}
			m.AddConstraint(row, milp.Equal, 1, fmt.Sprintf("one_table_%s_k%d", s, k))
		}
	}

	// Each table hosts at most one startup per round.
	for _, t := range idx.Tables {
		for k := 1; k <= cfg.Rounds; k++ {
			var row milp.Expr
			for _, s := range idx.Startups {
				row = row.Add(x[s][t][k-1], 1)
			}
			m.AddConstraint(row, milp.LessEq, 1, fmt.Sprintf("capacity_t%d_k%d", t, k))
		}
	}

	// No startup revisits a table across rounds.
	for _, s := range idx.Startups {
		for _, t := range idx.Tables {
			m.AddConstraint(milp.Sum(x[s][t]...), milp.LessEq, 1, fmt.Sprintf("one_visit_%s_t%d", s, t))
		}
	}

	for _, s := range idx.Startups {
		osT := idx.OSTable[s]
		ocT := idx.OCTable[s]

		// The OS table hosts the startup in exactly one round, restricted to
		// the OS-eligible set; all other rounds are forced to zero. Same for
		// the OC table.
		m.AddConstraint(milp.Sum(x[s][osT]...), milp.Equal, 1, "os_once_"+s)
		m.AddConstraint(milp.Sum(x[s][ocT]...), milp.Equal, 1, "oc_once_"+s)
		for k := 1; k <= cfg.Rounds; k++ {
			if !cfg.OSAllowed(k) {
				m.AddConstraint(milp.Sum(x[s][osT][k-1]), milp.LessEq, 0, fmt.Sprintf("os_round_%s_k%d", s, k))
			}
			if !cfg.OCAllowed(k) {
				m.AddConstraint(milp.Sum(x[s][ocT][k-1]), milp.LessEq, 0, fmt.Sprintf("oc_round_%s_k%d", s, k))
			}
		}

		// Precedence: in a round eligible for both roles the startup cannot
		// occupy both mandatory tables, so OS lands strictly earlier.
		for _, k := range cfg.SharedRounds() {
			m.AddConstraint(milp.Sum(x[s][osT][k-1], x[s][ocT][k-1]), milp.LessEq, 1, fmt.Sprintf("precedence_%s_k%d", s, k))
		}
	}

	if tableFit != nil {
		var obj milp.Expr
		for _, s := range idx.Startups {
			for _, t := range idx.Tables {
				fit := tableFit[TableFitKey{StartupID: s, Table: t}]
				if fit == 0 {
					continue
				}
				for k := 1; k <= cfg.Rounds; k++ {
					obj = obj.Add(x[s][t][k-1], fit)
				}
			}
		}
		m.Maximize(obj)
	}

	sol, err := e.run("seating", m)
	if err != nil {
		return milp.NotSolved, nil, err
	}
	if !sol.Status.Solved() {
		return sol.Status, nil, nil
	}

	var sched Schedule
	for _, s := range idx.Startups {
		for _, t := range idx.Tables {
			for k := 1; k <= cfg.Rounds; k++ {
				if sol.IsOne(x[s][t][k-1]) {
					sched = append(sched, Seat{StartupID: s, Table: t, Round: k})
				}
			}
		}
	}
	return sol.Status, sched, nil
}
