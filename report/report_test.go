/*
report_test.go - Scores, fulfillment, summary, and CSV export over
hand-built placements

All tests operate on plain Placement data, no solver involved.
*/
package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/crew-engine/assign"
	"github.com/warp/crew-engine/report"
	"github.com/warp/crew-engine/roster"
)

// fixture: four youths across one two-crew center, one choosing another.
func fixture() (*report.PlacementIndex, *roster.Roster, []roster.Center) {
	persons := []roster.Person{
		{Name: "Jane Smith", Role: roster.RoleYouth, Gender: roster.GenderFemale,
			Year: roster.YearJunior, History: roster.HistoryVeteran, FirstChoice: "Amy Allen"},
		{Name: "Amy Allen", Role: roster.RoleYouth, Gender: roster.GenderFemale,
			Year: roster.YearSophomore, History: roster.HistoryNew},
		{Name: "Bob Baker", Role: roster.RoleYouth, Gender: roster.GenderMale,
			Year: roster.YearFreshman, History: roster.HistoryNew, SecondChoice: "Tim Tate"},
		{Name: "Tim Tate", Role: roster.RoleYouth, Gender: roster.GenderMale,
			Year: roster.YearSenior, History: roster.HistoryVeteran},
	}
	centers := []roster.Center{{
		Name: "Fayette",
		Crews: []roster.Crew{
			{Name: "F01", Adults: []string{"Alice Adams"}},
			{Name: "F02"},
		},
	}}
	placements := []assign.Placement{
		{Person: "Jane Smith", Center: "Fayette", Crew: "F01"},
		{Person: "Amy Allen", Center: "Fayette", Crew: "F02"},
		{Person: "Bob Baker", Center: "Fayette", Crew: "F01"},
		{Person: "Tim Tate", Center: "Fayette", Crew: "F02"},
	}
	return report.NewPlacementIndex(placements), roster.NewRoster(persons), centers
}

func TestPlacementIndex(t *testing.T) {
	idx, _, _ := fixture()

	assert.Equal(t, "Fayette", idx.CenterOf("Jane Smith"))
	assert.Equal(t, "F01", idx.CrewOf("Jane Smith"))
	assert.Equal(t, "", idx.CenterOf("Nobody Known"))
	assert.True(t, idx.SameCenter("Jane Smith", "Amy Allen"))
	assert.False(t, idx.SameCenter("Nobody Known", "Jane Smith"))
}

func TestFriendScores(t *testing.T) {
	// GIVEN: a 1st choice (3 points) and a 2nd choice (2 points) both
	// co-located at the only center, 4 placed participants
	idx, ros, centers := fixture()

	// WHEN: scoring
	scores, avg := report.FriendScores(idx, ros, centers)

	// THEN: 5 points over 4 heads, both rounded to two places
	assert.Equal(t, "1.25", scores["Fayette"].String())
	assert.Equal(t, "1.25", avg.String())
}

func TestFriendScores_EmptyCenterScoresZero(t *testing.T) {
	idx, ros, centers := fixture()
	centers = append(centers, roster.Center{Name: "Kanawha", Crews: []roster.Crew{{Name: "K01"}}})

	scores, _ := report.FriendScores(idx, ros, centers)
	assert.True(t, scores["Kanawha"].IsZero())
}

func TestFulfillment(t *testing.T) {
	// GIVEN: 4 participants; one 1st choice met, one 2nd choice met
	idx, ros, _ := fixture()

	stats := report.Fulfillment(idx, ros)

	assert.Equal(t, "25", stats.FirstChoicePct.String())
	assert.Equal(t, "25", stats.SecondChoicePct.String())
	assert.Equal(t, "0", stats.ThirdChoicePct.String())
	assert.Equal(t, "0", stats.MultipleFriendsPct.String())
}

func TestBuildSummary(t *testing.T) {
	idx, ros, centers := fixture()

	s := report.BuildSummary(idx, ros, centers)

	require.Len(t, s.Crews, 2)
	assert.Equal(t, 4, s.TotalYouth)
	assert.Equal(t, 1, s.TotalAdults)

	f01 := s.Crews[0]
	assert.Equal(t, "F01", f01.Crew)
	assert.ElementsMatch(t, []string{"Jane Smith", "Bob Baker"}, f01.Youth)
	assert.Equal(t, 3, f01.Headcount())
	assert.Equal(t, 1, f01.GenderCounts[roster.GenderFemale])
	assert.Equal(t, 1, f01.GenderCounts[roster.GenderMale])
	assert.Equal(t, 1, f01.YearCounts[roster.YearJunior])
	assert.Equal(t, 1, f01.HistoryCounts[roster.HistoryVeteran])
}

func TestRender_ContainsTotalsAndScores(t *testing.T) {
	idx, ros, centers := fixture()
	s := report.BuildSummary(idx, ros, centers)
	scores, avg := report.FriendScores(idx, ros, centers)
	stats := report.Fulfillment(idx, ros)

	var buf bytes.Buffer
	report.Render(&buf, s, scores, avg, stats)

	out := buf.String()
	assert.Contains(t, out, "Center Fayette (friend score 1.25)")
	assert.Contains(t, out, "Total Youth: 4")
	assert.Contains(t, out, "Total Adults: 1")
	assert.Contains(t, out, "Average friend score: 1.25")
}

func TestWriteAssignmentsCSV(t *testing.T) {
	idx, ros, centers := fixture()

	var buf bytes.Buffer
	require.NoError(t, report.WriteAssignmentsCSV(&buf, idx, ros, centers))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header, 4 youth rows, 1 adult row.
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Center", "Crew", "Name", "Role", "Gender", "Year", "History"}, rows[0])

	// Youth before adults within F01, attributes filled.
	assert.Equal(t, []string{"Fayette", "F01", "Jane Smith", "Youth", "F", "Jr", "V"}, rows[1])

	// Adult rows leave the attribute columns blank.
	assert.Equal(t, []string{"Fayette", "F01", "Alice Adams", "Adult", "", "", ""}, rows[3])
}
