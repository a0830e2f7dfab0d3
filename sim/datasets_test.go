package sim

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 2, 9, 17, 45, 0, time.UTC)
}

func testRoster(t *testing.T) *Roster {
	t.Helper()
	roster, err := DefaultRoster()
	require.NoError(t, err)
	return roster
}

// columnIndex resolves a header name to its row position.
func columnIndex(t *testing.T, g Generator, header string) int {
	t.Helper()
	for i, h := range g.Headers() {
		if h == header {
			return i
		}
	}
	t.Fatalf("dataset %s has no header %q", g.Name(), header)
	return -1
}

func atoiField(t *testing.T, row Row, idx int) int {
	t.Helper()
	v, err := strconv.Atoi(row[idx])
	require.NoError(t, err, "field %d = %q is not an integer", idx, row[idx])
	return v
}

func TestGenerators_Determinism_AllDatasets(t *testing.T) {
	roster := testRoster(t)
	for _, d := range Datasets {
		t.Run(string(d), func(t *testing.T) {
			g1, err := NewGenerator(string(d), NewProviderWithClock(123, testClock), roster)
			require.NoError(t, err)
			g2, err := NewGenerator(string(d), NewProviderWithClock(123, testClock), roster)
			require.NoError(t, err)

			rows1, err := Build(g1, 40)
			require.NoError(t, err)
			rows2, err := Build(g2, 40)
			require.NoError(t, err)
			assert.Equal(t, rows1, rows2, "same seed must produce identical row sequences")
		})
	}
}

func TestGenerators_RowWidthMatchesHeaders(t *testing.T) {
	roster := testRoster(t)
	for _, d := range Datasets {
		t.Run(string(d), func(t *testing.T) {
			g, err := NewGenerator(string(d), NewProviderWithClock(7, testClock), roster)
			require.NoError(t, err)
			rows, err := Build(g, 15)
			require.NoError(t, err)
			for _, row := range rows {
				assert.Len(t, row, len(g.Headers()))
			}
		})
	}
}

func TestGenerators_SharedIntervalPerBatch(t *testing.T) {
	roster := testRoster(t)
	for _, d := range Datasets {
		t.Run(string(d), func(t *testing.T) {
			g, err := NewGenerator(string(d), NewProviderWithClock(7, testClock), roster)
			require.NoError(t, err)
			rows, err := Build(g, 20)
			require.NoError(t, err)

			startIdx := columnIndex(t, g, "Interval Start")
			endIdx := columnIndex(t, g, "Interval End")
			// Seconds zeroed from 09:17:45, one 5-minute bucket per batch.
			wantStart := "2025-06-02 09:17:00"
			wantEnd := "2025-06-02 09:22:00"
			for _, row := range rows {
				assert.Equal(t, wantStart, row[startIdx])
				assert.Equal(t, wantEnd, row[endIdx])
			}
		})
	}
}

func TestGenerators_RoleConformance(t *testing.T) {
	roster := testRoster(t)
	employeeRole := make(map[string]Role)
	for _, emp := range roster.Employees() {
		employeeRole[emp.ID] = emp.Role
	}

	gated := []Dataset{DatasetACQ, DatasetProductivity, DatasetQCBS, DatasetRESC, DatasetDials, DatasetIBCalls}
	for _, d := range gated {
		t.Run(string(d), func(t *testing.T) {
			g, err := NewGenerator(string(d), NewProviderWithClock(31, testClock), roster)
			require.NoError(t, err)
			rows, err := Build(g, 200)
			require.NoError(t, err)

			idIdx := columnIndex(t, g, "Agent Id")
			allowed := make(map[Role]bool)
			for _, r := range RoleRules[d] {
				allowed[r] = true
			}
			for _, row := range rows {
				role, ok := employeeRole[row[idIdx]]
				require.True(t, ok, "row references unknown employee %s", row[idIdx])
				assert.True(t, allowed[role], "role %s not eligible for %s", role, d)
			}
		})
	}
}

func TestACQ_HandleRange(t *testing.T) {
	g, err := NewGenerator("ACQ", NewProviderWithClock(17, testClock), testRoster(t))
	require.NoError(t, err)
	rows, err := Build(g, 500)
	require.NoError(t, err)

	idx := columnIndex(t, g, "Handle")
	for _, row := range rows {
		h := atoiField(t, row, idx)
		assert.GreaterOrEqual(t, h, 0)
		assert.LessOrEqual(t, h, 25)
	}
}

func TestProductivity_BucketsNeverExceedLoggedIn(t *testing.T) {
	g, err := NewGenerator("Productivity", NewProviderWithClock(17, testClock), testRoster(t))
	require.NoError(t, err)
	rows, err := Build(g, 1000)
	require.NoError(t, err)

	loggedIdx := columnIndex(t, g, "Logged In")
	bucketIdx := []int{
		columnIndex(t, g, "On Queue"),
		columnIndex(t, g, "Idle"),
		columnIndex(t, g, "Off Queue"),
		columnIndex(t, g, "Interacting"),
	}
	for _, row := range rows {
		loggedIn := atoiField(t, row, loggedIdx)
		assert.GreaterOrEqual(t, loggedIn, 200)
		assert.LessOrEqual(t, loggedIn, 480)
		sum := 0
		for _, idx := range bucketIdx {
			v := atoiField(t, row, idx)
			assert.GreaterOrEqual(t, v, 0)
			sum += v
		}
		assert.LessOrEqual(t, sum, loggedIn, "activity buckets overflow Logged In")
	}
}

func TestDials_ChainedRangesAndTotals(t *testing.T) {
	g, err := NewGenerator("Dials", NewProviderWithClock(17, testClock), testRoster(t))
	require.NoError(t, err)
	rows, err := Build(g, 1000)
	require.NoError(t, err)

	handle := columnIndex(t, g, "Handle")
	avgTalk := columnIndex(t, g, "Avg Talk")
	avgHold := columnIndex(t, g, "Avg Hold")
	avgACW := columnIndex(t, g, "Avg ACW")
	totals := map[int]int{
		handle:  columnIndex(t, g, "Total Handle"),
		avgTalk: columnIndex(t, g, "Total Talk"),
		avgHold: columnIndex(t, g, "Total Hold"),
		avgACW:  columnIndex(t, g, "Total ACW"),
	}
	for _, row := range rows {
		h := atoiField(t, row, handle)
		talk := atoiField(t, row, avgTalk)
		hold := atoiField(t, row, avgHold)
		acw := atoiField(t, row, avgACW)

		assert.GreaterOrEqual(t, talk, 0)
		assert.LessOrEqual(t, talk, h)
		assert.GreaterOrEqual(t, hold, 0)
		assert.LessOrEqual(t, hold, h-talk)
		assert.GreaterOrEqual(t, acw, 0)
		assert.LessOrEqual(t, acw, 10)
		for avgIdx, totalIdx := range totals {
			assert.Equal(t, atoiField(t, row, avgIdx)*5, atoiField(t, row, totalIdx))
		}
	}
}

func TestIBCalls_AvgHandleEqualsHandle(t *testing.T) {
	g, err := NewGenerator("IB_Calls", NewProviderWithClock(17, testClock), testRoster(t))
	require.NoError(t, err)
	rows, err := Build(g, 300)
	require.NoError(t, err)

	handle := columnIndex(t, g, "Handle")
	avg := columnIndex(t, g, "Avg Handle")
	for _, row := range rows {
		h := atoiField(t, row, handle)
		assert.GreaterOrEqual(t, h, 0)
		assert.LessOrEqual(t, h, 25)
		assert.Equal(t, row[handle], row[avg])
	}
}

func TestCampaignInteractions_DirectionAndUUID(t *testing.T) {
	roster := testRoster(t)
	known := make(map[string]bool)
	for _, emp := range roster.Employees() {
		known[emp.ID] = true
	}

	g, err := NewGenerator("Campaign_Interactions", NewProviderWithClock(17, testClock), roster)
	require.NoError(t, err)
	rows, err := Build(g, 500)
	require.NoError(t, err)

	userIdx := columnIndex(t, g, "Users - Interacted")
	dirIdx := columnIndex(t, g, "Initial Direction")
	seenDirections := make(map[string]bool)
	for _, row := range rows {
		assert.True(t, known[row[userIdx]], "unknown employee uuid %s", row[userIdx])
		dir := row[dirIdx]
		assert.Contains(t, []string{"inbound", "outbound"}, dir)
		seenDirections[dir] = true
	}
	assert.Len(t, seenDirections, 2, "both directions appear over 500 rows")
}

func TestCampaignInteractions_DrawsFromFullPopulation(t *testing.T) {
	// Unlike the six gated datasets, every role may appear here.
	roster := testRoster(t)
	employeeRole := make(map[string]Role)
	for _, emp := range roster.Employees() {
		employeeRole[emp.ID] = emp.Role
	}

	g, err := NewGenerator("Campaign_Interactions", NewProviderWithClock(41, testClock), roster)
	require.NoError(t, err)
	rows, err := Build(g, 1000)
	require.NoError(t, err)

	userIdx := columnIndex(t, g, "Users - Interacted")
	seenRoles := make(map[Role]bool)
	for _, row := range rows {
		seenRoles[employeeRole[row[userIdx]]] = true
	}
	assert.Len(t, seenRoles, 3, "all three roles should appear over 1000 rows")
}
