package solver

import (
	"fmt"

	"github.com/kilianp07/mentormatch/core/model"
)

// TableFitKey identifies one (startup, table) aggregated affinity entry.
type TableFitKey struct {
	StartupID string
	Table     int
}

// TableFit aggregates mentor-level fit to table level: the score of a table
// for a startup is the best mentor fit on that table. A missing mentor pair
// is an error; the fit matrix must cover every (startup, mentor) combination.
func TableFit(mentors []model.Mentor, startups []model.Startup, fit model.FitMatrix) (map[TableFitKey]float64, error) {
	byTable := make(map[int][]model.Mentor)
	for _, m := range mentors {
		byTable[m.TableID] = append(byTable[m.TableID], m)
	}

	out := make(map[TableFitKey]float64, len(startups)*len(byTable))
	for _, st := range startups {
		for t, ms := range byTable {
			best := 0.0
			for _, m := range ms {
				v, err := fit.Score(st.ID, m.ID)
				if err != nil {
					return nil, fmt.Errorf("table fit: %w", err)
				}
				if v > best {
					best = v
				}
			}
			out[TableFitKey{StartupID: st.ID, Table: t}] = best
		}
	}
	return out, nil
}
