package solver

import (
	"fmt"
	"sort"

	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/internal/milp"
)

// JointResult is the outcome of a joint assignment-and-scheduling solve. It
// is a plain value: nothing in the caller's startup slice is touched until
// ApplyAssignments is called.
type JointResult struct {
	Status    milp.Status
	Schedule  Schedule
	OSMentor  map[string]string // startup id -> chosen OS mentor id
	OCMentor  map[string]string // startup id -> chosen OC mentor id
	Objective float64
}

type jointKey struct {
	startup string
	mentor  string
	round   int
}

// SolveJoint simultaneously selects OS/OC mentors and seats startups per
// round, maximising total fit. Missing fit entries score 0.0 in the
// objective.
//
// The round-precedence encoding assumes the default three-round structure
// with a single round eligible for both roles; other layouts are rejected.
func (e *Engine) SolveJoint(mentors []model.Mentor, startups []model.Startup, fit model.FitMatrix, cfg session.Config) (*JointResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	shared := cfg.SharedRounds()
	if cfg.Rounds != 3 || len(shared) != 1 {
		return nil, fmt.Errorf("joint solver supports exactly 3 rounds with a single shared round, got %d rounds and %d shared", cfg.Rounds, len(shared))
	}
	sharedRound := shared[0]

	mentorByID := make(map[string]model.Mentor, len(mentors))
	tableSet := make(map[int]struct{})
	for _, mt := range mentors {
		mentorByID[mt.ID] = mt
		tableSet[mt.TableID] = struct{}{}
	}
	var tables []int
	for t := range tableSet {
		tables = append(tables, t)
	}
	sort.Ints(tables)

	m := milp.NewModel()

	// Seating variables x[s][t][k].
	x := make(map[string]map[int][]milp.Var, len(startups))
	for _, st := range startups {
		x[st.ID] = make(map[int][]milp.Var, len(tables))
		for _, t := range tables {
			vars := make([]milp.Var, cfg.Rounds)
			for k := 1; k <= cfg.Rounds; k++ {
				vars[k-1] = m.Binary(fmt.Sprintf("x_%s_%d_%d", st.ID, t, k))
			}
			x[st.ID][t] = vars
		}
	}

	// Choice variables: wOS[s,m,k] over OS-eligible rounds, wOC over
	// OC-eligible rounds.
	wOS := make(map[jointKey]milp.Var)
	wOC := make(map[jointKey]milp.Var)
	for _, st := range startups {
		for _, mt := range mentors {
			for _, k := range cfg.OSRounds {
				wOS[jointKey{st.ID, mt.ID, k}] = m.Binary(fmt.Sprintf("wOS_%s_%s_%d", st.ID, mt.ID, k))
			}
			for _, k := range cfg.OCRounds {
				wOC[jointKey{st.ID, mt.ID, k}] = m.Binary(fmt.Sprintf("wOC_%s_%s_%d", st.ID, mt.ID, k))
			}
		}
	}

	// Objective: total fit of chosen OS and OC meetings.
	var obj milp.Expr
	for _, st := range startups {
		for _, mt := range mentors {
			score := fit.ScoreOrZero(st.ID, mt.ID)
			if score == 0 {
				continue
			}
			for _, k := range cfg.OSRounds {
				obj = obj.Add(wOS[jointKey{st.ID, mt.ID, k}], score)
			}
			for _, k := range cfg.OCRounds {
				obj = obj.Add(wOC[jointKey{st.ID, mt.ID, k}], score)
			}
		}
	}
	m.Maximize(obj)

	// Seating: one table per round, table capacity one, no revisits.
	for _, st := range startups {
		for k := 1; k <= cfg.Rounds; k++ {
			var row milp.Expr
			for _, t := range tables {
				row = row.Add(x[st.ID][t][k-1], 1)
			}
			m.AddConstraint(row, milp.Equal, 1, fmt.Sprintf("one_table_%s_k%d", st.ID, k))
		}
		for _, t := range tables {
			m.AddConstraint(milp.Sum(x[st.ID][t]...), milp.LessEq, 1, fmt.Sprintf("one_visit_%s_t%d", st.ID, t))
		}
	}
	for _, t := range tables {
		for k := 1; k <= cfg.Rounds; k++ {
			var row milp.Expr
			for _, st := range startups {
				row = row.Add(x[st.ID][t][k-1], 1)
			}
			m.AddConstraint(row, milp.LessEq, 1, fmt.Sprintf("capacity_t%d_k%d", t, k))
		}
	}

	// A mentor is credited with a meeting only if the startup is actually
	// seated at the mentor's table in that round; role-ineligible mentors
	// have their choice variables forced to zero.
	for _, st := range startups {
		for _, mt := range mentors {
			for _, k := range cfg.OSRounds {
				w := wOS[jointKey{st.ID, mt.ID, k}]
				if !mt.CanBeOS {
					m.AddConstraint(milp.Sum(w), milp.LessEq, 0, fmt.Sprintf("os_ineligible_%s_%s_%d", st.ID, mt.ID, k))
					continue
				}
				m.AddConstraint(milp.Expr{}.Add(w, 1).Add(x[st.ID][mt.TableID][k-1], -1), milp.LessEq, 0,
					fmt.Sprintf("link_os_%s_%s_%d", st.ID, mt.ID, k))
			}
			for _, k := range cfg.OCRounds {
				w := wOC[jointKey{st.ID, mt.ID, k}]
				if !mt.CanBeOC {
					m.AddConstraint(milp.Sum(w), milp.LessEq, 0, fmt.Sprintf("oc_ineligible_%s_%s_%d", st.ID, mt.ID, k))
					continue
				}
				m.AddConstraint(milp.Expr{}.Add(w, 1).Add(x[st.ID][mt.TableID][k-1], -1), milp.LessEq, 0,
					fmt.Sprintf("link_oc_%s_%s_%d", st.ID, mt.ID, k))
			}
		}
	}

	// Exactly one OS and one OC choice per startup, never the same mentor.
	for _, st := range startups {
		var osRow, ocRow milp.Expr
		for _, mt := range mentors {
			var pair milp.Expr
			for _, k := range cfg.OSRounds {
				osRow = osRow.Add(wOS[jointKey{st.ID, mt.ID, k}], 1)
				pair = pair.Add(wOS[jointKey{st.ID, mt.ID, k}], 1)
			}
			for _, k := range cfg.OCRounds {
				ocRow = ocRow.Add(wOC[jointKey{st.ID, mt.ID, k}], 1)
				pair = pair.Add(wOC[jointKey{st.ID, mt.ID, k}], 1)
			}
			m.AddConstraint(pair, milp.LessEq, 1, fmt.Sprintf("distinct_mentor_%s_%s", st.ID, mt.ID))
		}
		m.AddConstraint(osRow, milp.Equal, 1, "one_os_"+st.ID)
		m.AddConstraint(ocRow, milp.Equal, 1, "one_oc_"+st.ID)
	}

	// Per-mentor OS/OC caps across the whole session.
	for _, mt := range mentors {
		var osRow, ocRow milp.Expr
		for _, st := range startups {
			for _, k := range cfg.OSRounds {
				osRow = osRow.Add(wOS[jointKey{st.ID, mt.ID, k}], 1)
			}
			for _, k := range cfg.OCRounds {
				ocRow = ocRow.Add(wOC[jointKey{st.ID, mt.ID, k}], 1)
			}
		}
		m.AddConstraint(osRow, milp.LessEq, float64(cfg.MaxOSPerMentor), "os_cap_"+mt.ID)
		m.AddConstraint(ocRow, milp.LessEq, float64(cfg.MaxOCPerMentor), "oc_cap_"+mt.ID)
	}

	// An OC choice in the shared round requires an OS choice in a strictly
	// earlier round.
	for _, st := range startups {
		var ocShared, osEarlier milp.Expr
		for _, mt := range mentors {
			ocShared = ocShared.Add(wOC[jointKey{st.ID, mt.ID, sharedRound}], 1)
			for _, k := range cfg.OSRounds {
				if k < sharedRound {
					osEarlier = osEarlier.Add(wOS[jointKey{st.ID, mt.ID, k}], -1)
				}
			}
		}
		m.AddConstraint(append(ocShared, osEarlier...), milp.LessEq, 0, "precedence_"+st.ID)
	}

	// OS and OC tables differ: per table, at most one of the startup's
	// OS/OC selections may land there.
	for _, st := range startups {
		for _, t := range tables {
			var row milp.Expr
			for _, mt := range mentors {
				if mt.TableID != t {
					continue
				}
				for _, k := range cfg.OSRounds {
					row = row.Add(wOS[jointKey{st.ID, mt.ID, k}], 1)
				}
				for _, k := range cfg.OCRounds {
					row = row.Add(wOC[jointKey{st.ID, mt.ID, k}], 1)
				}
			}
			if len(row) > 0 {
				m.AddConstraint(row, milp.LessEq, 1, fmt.Sprintf("distinct_table_%s_t%d", st.ID, t))
			}
		}
	}

	sol, err := e.run("joint", m)
	if err != nil {
		return nil, err
	}
	res := &JointResult{
		Status:   sol.Status,
		OSMentor: make(map[string]string),
		OCMentor: make(map[string]string),
	}
	if !sol.Status.Solved() {
		return res, nil
	}
	res.Objective = sol.Objective

	for _, st := range startups {
		for _, t := range tables {
			for k := 1; k <= cfg.Rounds; k++ {
				if sol.IsOne(x[st.ID][t][k-1]) {
					res.Schedule = append(res.Schedule, Seat{StartupID: st.ID, Table: t, Round: k})
				}
			}
		}
		for _, mt := range mentors {
			for _, k := range cfg.OSRounds {
				if sol.IsOne(wOS[jointKey{st.ID, mt.ID, k}]) {
					res.OSMentor[st.ID] = mt.ID
				}
			}
			for _, k := range cfg.OCRounds {
				if sol.IsOne(wOC[jointKey{st.ID, mt.ID, k}]) {
					res.OCMentor[st.ID] = mt.ID
				}
			}
		}
	}
	return res, nil
}

// ApplyAssignments merges the solved OS/OC choices into a fresh copy of the
// startup slice. The input is left untouched so the same startups can be
// reused across repair rounds without aliasing hazards.
func ApplyAssignments(startups []model.Startup, res *JointResult) []model.Startup {
	out := append([]model.Startup(nil), startups...)
	if res == nil || !res.Status.Solved() {
		return out
	}
	for i := range out {
		if id, ok := res.OSMentor[out[i].ID]; ok {
			out[i].OSMentorID = id
		}
		if id, ok := res.OCMentor[out[i].ID]; ok {
			out[i].OCMentorID = id
		}
	}
	return out
}
