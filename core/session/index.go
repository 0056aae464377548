package session

import (
	"fmt"
	"sort"

	"github.com/kilianp07/mentormatch/core/model"
)

// ValidationError reports malformed mentor/startup input. It is always
// surfaced immediately and never recovered locally.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Index holds the derived id sets and startup-to-table mappings every
// feasibility check and solve starts from.
type Index struct {
	Startups []string // sorted startup ids
	Tables   []int    // sorted table ids
	OSTable  map[string]int
	OCTable  map[string]int
}

// BuildIndex resolves each startup's OS/OC mentor to its table. It fails
// with a ValidationError when a startup lacks a mentor reference or a
// referenced mentor id is absent from the mentor collection.
func BuildIndex(mentors []model.Mentor, startups []model.Startup) (*Index, error) {
	mentorTable := make(map[string]int, len(mentors))
	tableSet := make(map[int]struct{})
	for _, m := range mentors {
		mentorTable[m.ID] = m.TableID
		tableSet[m.TableID] = struct{}{}
	}

	idx := &Index{
		Startups: make([]string, 0, len(startups)),
		Tables:   make([]int, 0, len(tableSet)),
		OSTable:  make(map[string]int, len(startups)),
		OCTable:  make(map[string]int, len(startups)),
	}
	for t := range tableSet {
		idx.Tables = append(idx.Tables, t)
	}
	sort.Ints(idx.Tables)

	for _, st := range startups {
		if st.OSMentorID == "" || st.OCMentorID == "" {
			return nil, validationErrorf("startup %s is missing an OS or OC mentor id", st.ID)
		}
		osTable, ok := mentorTable[st.OSMentorID]
		if !ok {
			return nil, validationErrorf("OS mentor %s not found for startup %s", st.OSMentorID, st.ID)
		}
		ocTable, ok := mentorTable[st.OCMentorID]
		if !ok {
			return nil, validationErrorf("OC mentor %s not found for startup %s", st.OCMentorID, st.ID)
		}
		idx.Startups = append(idx.Startups, st.ID)
		idx.OSTable[st.ID] = osTable
		idx.OCTable[st.ID] = ocTable
	}
	sort.Strings(idx.Startups)

	return idx, nil
}

// Clone returns a deep copy of the index so callers can mutate mappings
// without touching the original.
func (idx *Index) Clone() *Index {
	cp := &Index{
		Startups: append([]string(nil), idx.Startups...),
		Tables:   append([]int(nil), idx.Tables...),
		OSTable:  make(map[string]int, len(idx.OSTable)),
		OCTable:  make(map[string]int, len(idx.OCTable)),
	}
	for s, t := range idx.OSTable {
		cp.OSTable[s] = t
	}
	for s, t := range idx.OCTable {
		cp.OCTable[s] = t
	}
	return cp
}
