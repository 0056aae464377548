package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/mentormatch/core/metrics"
	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/internal/milp"
)

type captureSink struct {
	solves  []metrics.SolveEvent
	repairs []metrics.RepairEvent
}

func (c *captureSink) RecordSolve(ev metrics.SolveEvent) error {
	c.solves = append(c.solves, ev)
	return nil
}

func (c *captureSink) RecordRepair(ev metrics.RepairEvent) error {
	c.repairs = append(c.repairs, ev)
	return nil
}

func mentorAt(id string, table int) model.Mentor {
	return model.Mentor{ID: id, TableID: table, CanBeOS: true, CanBeOC: true}
}

// assertScheduleInvariants checks the hard seating rules on a solved schedule:
// one table per startup per round, at most one startup per table per round, no
// revisits, and the mandatory OS/OC visits in eligible rounds with OS strictly
// before OC.
func assertScheduleInvariants(t *testing.T, sched Schedule, idx *session.Index, cfg session.Config) {
	t.Helper()

	perRound := make(map[string]map[int]int)   // startup -> round -> table
	occupied := make(map[[2]int]string)        // (table, round) -> startup
	visits := make(map[string]map[int]int)     // startup -> table -> count
	for _, seat := range sched {
		if perRound[seat.StartupID] == nil {
			perRound[seat.StartupID] = make(map[int]int)
			visits[seat.StartupID] = make(map[int]int)
		}
		_, dup := perRound[seat.StartupID][seat.Round]
		assert.False(t, dup, "startup %s seated twice in round %d", seat.StartupID, seat.Round)
		perRound[seat.StartupID][seat.Round] = seat.Table

		key := [2]int{seat.Table, seat.Round}
		prev, taken := occupied[key]
		assert.False(t, taken, "table %d round %d holds both %s and %s", seat.Table, seat.Round, prev, seat.StartupID)
		occupied[key] = seat.StartupID

		visits[seat.StartupID][seat.Table]++
	}

	for _, s := range idx.Startups {
		require.Len(t, perRound[s], cfg.Rounds, "startup %s must be seated every round", s)
		for table, n := range visits[s] {
			assert.LessOrEqual(t, n, 1, "startup %s revisits table %d", s, table)
		}

		osRound, ocRound := 0, 0
		for k, table := range perRound[s] {
			if table == idx.OSTable[s] {
				osRound = k
			}
			if table == idx.OCTable[s] {
				ocRound = k
			}
		}
		require.NotZero(t, osRound, "startup %s never visits its OS table", s)
		require.NotZero(t, ocRound, "startup %s never visits its OC table", s)
		assert.True(t, cfg.OSAllowed(osRound), "startup %s meets OS in ineligible round %d", s, osRound)
		assert.True(t, cfg.OCAllowed(ocRound), "startup %s meets OC in ineligible round %d", s, ocRound)
		assert.Less(t, osRound, ocRound, "startup %s has OS in round %d but OC in round %d", s, osRound, ocRound)
	}
}

func TestSolveSeatingFeasible(t *testing.T) {
	mentors := []model.Mentor{mentorAt("M1", 1), mentorAt("M2", 2), mentorAt("M3", 3)}
	startups := []model.Startup{
		{ID: "S1", OSMentorID: "M1", OCMentorID: "M2"},
		{ID: "S2", OSMentorID: "M2", OCMentorID: "M3"},
		{ID: "S3", OSMentorID: "M3", OCMentorID: "M1"},
	}
	cfg := session.DefaultConfig()

	idx, err := session.BuildIndex(mentors, startups)
	require.NoError(t, err)

	sink := &captureSink{}
	eng := New(nil, nil, sink)
	status, sched, err := eng.SolveSeating(idx, cfg, nil)
	require.NoError(t, err)

	require.Equal(t, milp.Optimal, status)
	assertScheduleInvariants(t, sched, idx, cfg)

	require.Len(t, sink.solves, 1)
	assert.Equal(t, "seating", sink.solves[0].Component)
	assert.Equal(t, "optimal", sink.solves[0].Status)
	assert.NotEmpty(t, sink.solves[0].RunID)
}

func TestSolveSeatingInfeasible(t *testing.T) {
	// Three startups need their OS meeting at table 1, but only two rounds
	// are OS-eligible there.
	mentors := []model.Mentor{mentorAt("M1", 1), mentorAt("M2", 2), mentorAt("M3", 3)}
	startups := []model.Startup{
		{ID: "S1", OSMentorID: "M1", OCMentorID: "M2"},
		{ID: "S2", OSMentorID: "M1", OCMentorID: "M3"},
		{ID: "S3", OSMentorID: "M1", OCMentorID: "M2"},
	}
	cfg := session.DefaultConfig()

	idx, err := session.BuildIndex(mentors, startups)
	require.NoError(t, err)

	eng := New(nil, nil, nil)
	status, sched, err := eng.SolveSeating(idx, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, milp.Infeasible, status)
	assert.Nil(t, sched, "an unsolved status must never come with a partial schedule")
}

func TestSolveSeatingMaximisesTableFit(t *testing.T) {
	// One startup, four tables: OS at table 1, OC at table 2, one free round.
	// Table 4 scores far better than table 3, so the free round goes there.
	mentors := []model.Mentor{mentorAt("M1", 1), mentorAt("M2", 2), mentorAt("M3", 3), mentorAt("M4", 4)}
	startups := []model.Startup{{ID: "S1", OSMentorID: "M1", OCMentorID: "M2"}}
	cfg := session.DefaultConfig()

	idx, err := session.BuildIndex(mentors, startups)
	require.NoError(t, err)

	tableFit := map[TableFitKey]float64{
		{StartupID: "S1", Table: 1}: 0.5,
		{StartupID: "S1", Table: 2}: 0.5,
		{StartupID: "S1", Table: 3}: 0.2,
		{StartupID: "S1", Table: 4}: 0.9,
	}

	eng := New(nil, nil, nil)
	status, sched, err := eng.SolveSeating(idx, cfg, tableFit)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, status)

	seen := make(map[int]bool)
	for _, seat := range sched {
		seen[seat.Table] = true
	}
	assert.True(t, seen[4], "free round should pick the best scoring table")
	assert.False(t, seen[3])
}

func TestSolveSeatingRejectsInvalidConfig(t *testing.T) {
	idx := &session.Index{}
	eng := New(nil, nil, nil)
	_, _, err := eng.SolveSeating(idx, session.Config{}, nil)
	assert.Error(t, err)
}

func TestTableFit(t *testing.T) {
	mentors := []model.Mentor{mentorAt("M1", 1), mentorAt("M2", 1), mentorAt("M3", 2)}
	startups := []model.Startup{{ID: "S1"}}
	fit := model.FitMatrix{
		{StartupID: "S1", MentorID: "M1"}: 0.3,
		{StartupID: "S1", MentorID: "M2"}: 0.7,
		{StartupID: "S1", MentorID: "M3"}: 0.4,
	}

	tf, err := TableFit(mentors, startups, fit)
	require.NoError(t, err)
	assert.Equal(t, 0.7, tf[TableFitKey{StartupID: "S1", Table: 1}])
	assert.Equal(t, 0.4, tf[TableFitKey{StartupID: "S1", Table: 2}])
}

func TestTableFitMissingPair(t *testing.T) {
	mentors := []model.Mentor{mentorAt("M1", 1)}
	startups := []model.Startup{{ID: "S1"}}

	_, err := TableFit(mentors, startups, model.FitMatrix{})
	assert.Error(t, err)
}
