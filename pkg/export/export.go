// Package export serialises solved schedules and mentor assignments for
// downstream tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/solver"
)

// Plan bundles a solved schedule with the final mentor assignments.
type Plan struct {
	Startups []model.Startup `json:"startups"`
	Schedule solver.Schedule `json:"schedule"`
}

// WriteJSON writes the plan to w in JSON format.
func WriteJSON(w io.Writer, p Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// WriteCSV writes the seating plan to w in CSV format, one row per seat.
func WriteCSV(w io.Writer, p Plan) error {
	osMentor := make(map[string]string, len(p.Startups))
	ocMentor := make(map[string]string, len(p.Startups))
	for _, st := range p.Startups {
		osMentor[st.ID] = st.OSMentorID
		ocMentor[st.ID] = st.OCMentorID
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"startup_id", "round", "table", "os_mentor_id", "oc_mentor_id"}); err != nil {
		return err
	}
	for _, seat := range p.Schedule {
		rec := []string{
			seat.StartupID,
			strconv.Itoa(seat.Round),
			strconv.Itoa(seat.Table),
			osMentor[seat.StartupID],
			ocMentor[seat.StartupID],
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
