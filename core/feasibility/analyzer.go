package feasibility

import (
	"fmt"

	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
)

// Overload flags one table whose load exceeds a capacity.
type Overload struct {
	Table  int
	Load   int
	Excess int
}

// Report is the structured result of a feasibility analysis. It is a plain
// diagnostic value: an infeasible report is not an error, so callers can
// choose to repair instead of aborting.
type Report struct {
	OK         bool
	Messages   []string
	Suggestion string

	OSLoad    map[int]int // per-table opening-meeting load
	OCLoad    map[int]int // per-table closing-meeting load
	TotalLoad map[int]int // OS + OC per table

	OSOverloaded    []Overload
	OCOverloaded    []Overload
	TotalOverloaded []Overload

	OSCapacity  int // per-table OS capacity = len(OS-eligible rounds)
	OCCapacity  int // per-table OC capacity = len(OC-eligible rounds)
	NumStartups int
	NumTables   int

	// Necessary lower bounds on table count from each role's capacity.
	MinTablesFromOS int
	MinTablesFromOC int
}

// Analyze builds the index from the current mentor/startup state and runs the
// structural checks. It returns a ValidationError when the input is
// malformed; infeasibility itself is reported inside the Report.
func Analyze(mentors []model.Mentor, startups []model.Startup, cfg session.Config) (*Report, error) {
	idx, err := session.BuildIndex(mentors, startups)
	if err != nil {
		return nil, err
	}
	return AnalyzeIndex(idx, cfg), nil
}

// AnalyzeIndex runs the structural checks against prebuilt mappings. It is a
// pure function: cheap upfront pruning before any solver is touched, and it
// never invokes one.
func AnalyzeIndex(idx *session.Index, cfg session.Config) *Report {
	r := &Report{
		OSLoad:      make(map[int]int, len(idx.Tables)),
		OCLoad:      make(map[int]int, len(idx.Tables)),
		TotalLoad:   make(map[int]int, len(idx.Tables)),
		OSCapacity:  cfg.OSCapacity(),
		OCCapacity:  cfg.OCCapacity(),
		NumStartups: len(idx.Startups),
		NumTables:   len(idx.Tables),
	}

	// Pigeonhole on per-round seating: every startup needs a table in every
	// round.
	if r.NumStartups > r.NumTables {
		r.Messages = append(r.Messages, fmt.Sprintf(
			"per-round capacity violated: %d startups but only %d tables; add tables or reduce startups",
			r.NumStartups, r.NumTables))
	}

	for _, t := range idx.Tables {
		r.OSLoad[t] = 0
		r.OCLoad[t] = 0
	}
	for _, s := range idx.Startups {
		r.OSLoad[idx.OSTable[s]]++
		r.OCLoad[idx.OCTable[s]]++
	}
	for _, t := range idx.Tables {
		r.TotalLoad[t] = r.OSLoad[t] + r.OCLoad[t]
	}

	for _, t := range idx.Tables {
		if c := r.OSLoad[t]; c > r.OSCapacity {
			r.OSOverloaded = append(r.OSOverloaded, Overload{Table: t, Load: c, Excess: c - r.OSCapacity})
			r.Messages = append(r.Messages, fmt.Sprintf(
				"table %d has %d startups needing OS there, but with OS allowed in rounds %v it can host at most %d OS meetings",
				t, c, cfg.OSRounds, r.OSCapacity))
		}
	}
	if len(r.OSOverloaded) > 0 {
		r.Messages = append(r.Messages,
			"to fix OS overloads: add tables and move OS mentors, or reduce startups whose OS is on overloaded tables")
	}

	for _, t := range idx.Tables {
		if c := r.OCLoad[t]; c > r.OCCapacity {
			r.OCOverloaded = append(r.OCOverloaded, Overload{Table: t, Load: c, Excess: c - r.OCCapacity})
			r.Messages = append(r.Messages, fmt.Sprintf(
				"table %d has %d startups needing OC there, but with OC allowed in rounds %v it can host at most %d OC meetings",
				t, c, cfg.OCRounds, r.OCCapacity))
		}
	}
	if len(r.OCOverloaded) > 0 {
		r.Messages = append(r.Messages,
			"to fix OC overloads: add tables and move OC mentors, or reduce startups whose OC is on overloaded tables")
	}

	// Each mandatory OS/OC meeting at a table needs its own round slot there.
	for _, t := range idx.Tables {
		if c := r.TotalLoad[t]; c > cfg.Rounds {
			r.TotalOverloaded = append(r.TotalOverloaded, Overload{Table: t, Load: c, Excess: c - cfg.Rounds})
			r.Messages = append(r.Messages, fmt.Sprintf(
				"table %d has %d mandatory OS/OC meetings in total, but with %d rounds it can host at most %d",
				t, c, cfg.Rounds, cfg.Rounds))
		}
	}
	if len(r.TotalOverloaded) > 0 {
		r.Messages = append(r.Messages,
			"to fix combined overloads: move OS/OC mentors to other tables or reduce startups attached to them")
	}

	r.MinTablesFromOS = ceilDiv(r.NumStartups, r.OSCapacity)
	r.MinTablesFromOC = ceilDiv(r.NumStartups, r.OCCapacity)

	r.OK = len(r.Messages) == 0
	if r.OK {
		r.Suggestion = "no structural capacity issues detected; solver infeasibility, if any, would come from finer constraints"
	} else {
		r.Suggestion = "session structurally infeasible. "
		if r.NumStartups > r.NumTables {
			r.Suggestion += "Consider increasing tables or decreasing startups. "
		}
		if len(r.OSOverloaded) > 0 || len(r.OCOverloaded) > 0 || len(r.TotalOverloaded) > 0 {
			r.Suggestion += "Consider redistributing OS/OC mentors across more tables, or decreasing startups linked to overloaded tables."
		}
	}
	return r
}

// OverloadExcess returns the per-table excess maps used by the repair engine
// to score offenders.
func (r *Report) OverloadExcess() (osExcess, ocExcess, totalExcess map[int]int) {
	osExcess = make(map[int]int, len(r.OSOverloaded))
	ocExcess = make(map[int]int, len(r.OCOverloaded))
	totalExcess = make(map[int]int, len(r.TotalOverloaded))
	for _, o := range r.OSOverloaded {
		osExcess[o.Table] = o.Excess
	}
	for _, o := range r.OCOverloaded {
		ocExcess[o.Table] = o.Excess
	}
	for _, o := range r.TotalOverloaded {
		totalExcess[o.Table] = o.Excess
	}
	return osExcess, ocExcess, totalExcess
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
