package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/mentormatch/core/model"
	"github.com/kilianp07/mentormatch/core/solver"
)

func testPlan() Plan {
	return Plan{
		Startups: []model.Startup{
			{ID: "S1", OSMentorID: "M1", OCMentorID: "M4"},
		},
		Schedule: solver.Schedule{
			{StartupID: "S1", Table: 1, Round: 1},
			{StartupID: "S1", Table: 2, Round: 2},
			{StartupID: "S1", Table: 3, Round: 3},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testPlan()))

	var decoded Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testPlan(), decoded)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testPlan()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "startup_id,round,table,os_mentor_id,oc_mentor_id", lines[0])
	assert.Equal(t, "S1,1,1,M1,M4", lines[1])
	assert.Equal(t, "S1,3,3,M1,M4", lines[3])
}
