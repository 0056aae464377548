package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitMatrixScore(t *testing.T) {
	fit := FitMatrix{
		{StartupID: "S1", MentorID: "M1"}: 0.8,
	}

	v, err := fit.Score("S1", "M1")
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)

	_, err = fit.Score("S1", "M2")
	assert.Error(t, err)

	assert.Equal(t, 0.0, fit.ScoreOrZero("S1", "M2"))
	assert.Equal(t, 0.8, fit.ScoreOrZero("S1", "M1"))
}

func TestFitMatrixValidate(t *testing.T) {
	fit := FitMatrix{
		{StartupID: "S1", MentorID: "M1"}: 1.2,
	}
	assert.Error(t, fit.Validate())

	fit[FitKey{StartupID: "S1", MentorID: "M1"}] = 1.0
	assert.NoError(t, fit.Validate())
}

func TestMentorValidate(t *testing.T) {
	assert.Error(t, Mentor{TableID: 1}.Validate())
	assert.Error(t, Mentor{ID: "M1", TableID: -1}.Validate())
	assert.NoError(t, Mentor{ID: "M1", TableID: 1}.Validate())
}

func TestMentorHasDomain(t *testing.T) {
	m := Mentor{ID: "M1", Domains: []string{"AI", "Biotech"}}
	assert.True(t, m.HasDomain("AI"))
	assert.False(t, m.HasDomain("Retail"))
}

func TestStartupAssigned(t *testing.T) {
	assert.Error(t, Startup{}.Validate())
	st := Startup{ID: "S1"}
	assert.NoError(t, st.Validate())
	assert.False(t, st.Assigned())
	st.OSMentorID = "M1"
	st.OCMentorID = "M2"
	assert.True(t, st.Assigned())
}
