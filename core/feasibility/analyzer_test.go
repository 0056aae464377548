package feasibility

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/session"
	"github.com/kilianp07/mentormatch/internal/toygen"
)

func mentorAt(id string, table int) model.Mentor {
	return model.Mentor{ID: id, TableID: table, CanBeOS: true, CanBeOC: true}
}

func TestAnalyzeSafeToySession(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	gcfg := toygen.Config{NumTables: 10, NumStartups: 10, MentorsPerTable: 3, Seed: 42}
	scfg := session.DefaultConfig()

	mentors, startups, _, err := toygen.Generate(gcfg, scfg, rng)
	require.NoError(t, err)
	require.Len(t, mentors, 30)
	require.Len(t, startups, 10)

	rep, err := Analyze(mentors, startups, scfg)
	require.NoError(t, err)

	assert.True(t, rep.OK, "capacity-safe generation must pass the structural checks: %v", rep.Messages)
	assert.Empty(t, rep.OSOverloaded)
	assert.Empty(t, rep.OCOverloaded)
	assert.Empty(t, rep.TotalOverloaded)
	assert.Equal(t, 10, rep.NumStartups)
	assert.Equal(t, 10, rep.NumTables)
}

func TestAnalyzeOSOverload(t *testing.T) {
	// Three startups point their OS at table 1; two OS-eligible rounds.
	mentors := []model.Mentor{mentorAt("M1", 1), mentorAt("M2", 2), mentorAt("M3", 3), mentorAt("M4", 4)}
	startups := []model.Startup{
		{ID: "S1", OSMentorID: "M1", OCMentorID: "M2"},
		{ID: "S2", OSMentorID: "M1", OCMentorID: "M3"},
		{ID: "S3", OSMentorID: "M1", OCMentorID: "M4"},
	}

	rep, err := Analyze(mentors, startups, session.DefaultConfig())
	require.NoError(t, err)

	assert.False(t, rep.OK)
	require.Len(t, rep.OSOverloaded, 1)
	assert.Equal(t, Overload{Table: 1, Load: 3, Excess: 1}, rep.OSOverloaded[0])
	assert.Empty(t, rep.OCOverloaded)
	assert.Empty(t, rep.TotalOverloaded)
	assert.NotEmpty(t, rep.Suggestion)
}

func TestAnalyzeCombinedOverload(t *testing.T) {
	// Table 1 stays within each role capacity (2 OS, 2 OC) but needs four
	// mandatory meetings in three rounds.
	mentors := []model.Mentor{mentorAt("M1", 1), mentorAt("M2", 2), mentorAt("M3", 3), mentorAt("M4", 4)}
	startups := []model.Startup{
		{ID: "S1", OSMentorID: "M1", OCMentorID: "M2"},
		{ID: "S2", OSMentorID: "M1", OCMentorID: "M3"},
		{ID: "S3", OSMentorID: "M2", OCMentorID: "M1"},
		{ID: "S4", OSMentorID: "M3", OCMentorID: "M1"},
	}

	rep, err := Analyze(mentors, startups, session.DefaultConfig())
	require.NoError(t, err)

	assert.False(t, rep.OK)
	assert.Empty(t, rep.OSOverloaded)
	assert.Empty(t, rep.OCOverloaded)
	require.Len(t, rep.TotalOverloaded, 1)
	assert.Equal(t, Overload{Table: 1, Load: 4, Excess: 1}, rep.TotalOverloaded[0])
}

func TestAnalyzePigeonhole(t *testing.T) {
	mentors := []model.Mentor{mentorAt("M1", 1), mentorAt("M2", 2)}
	startups := []model.Startup{
		{ID: "S1", OSMentorID: "M1", OCMentorID: "M2"},
		{ID: "S2", OSMentorID: "M2", OCMentorID: "M1"},
		{ID: "S3", OSMentorID: "M1", OCMentorID: "M2"},
	}

	rep, err := Analyze(mentors, startups, session.DefaultConfig())
	require.NoError(t, err)

	assert.False(t, rep.OK)
	assert.Contains(t, rep.Messages[0], "3 startups but only 2 tables")
}

func TestAnalyzeLowerBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gcfg := toygen.Config{NumTables: 5, NumStartups: 7, MentorsPerTable: 2, Seed: 7}
	scfg := session.DefaultConfig()

	mentors, startups, _, err := toygen.Generate(gcfg, scfg, rng)
	require.NoError(t, err)

	rep, err := Analyze(mentors, startups, scfg)
	require.NoError(t, err)

	// ceil(7/2) with two eligible rounds per role.
	assert.Equal(t, 4, rep.MinTablesFromOS)
	assert.Equal(t, 4, rep.MinTablesFromOC)
}

func TestAnalyzeValidationError(t *testing.T) {
	mentors := []model.Mentor{mentorAt("M1", 1)}
	startups := []model.Startup{{ID: "S1", OSMentorID: "M1", OCMentorID: "M9"}}

	_, err := Analyze(mentors, startups, session.DefaultConfig())
	var verr *session.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOverloadExcess(t *testing.T) {
	rep := &Report{
		OSOverloaded:    []Overload{{Table: 1, Excess: 2}},
		OCOverloaded:    []Overload{{Table: 2, Excess: 1}},
		TotalOverloaded: []Overload{{Table: 1, Excess: 1}},
	}
	osEx, ocEx, totEx := rep.OverloadExcess()
	assert.Equal(t, map[int]int{1: 2}, osEx)
	assert.Equal(t, map[int]int{2: 1}, ocEx)
	assert.Equal(t, map[int]int{1: 1}, totEx)
}
