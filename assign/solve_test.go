/*
solve_test.go - End-to-end solves against the real CP-SAT solver

Tests for:
- The headline scenario: 12 youths, 1 center, 2 crews of 5..7
- Infeasibility when minimum sizes cannot be met
- Young-adult pinning
- Sibling center co-location and crew separation
- Parent center binding and parent-crew exclusion
- Friend crew separation and hard center coverage
- Unresolved friend choices constraining nothing
- Past-leader exclusion
- Refusal of value queries without a solution
*/
package assign_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/crew-engine/assign"
	"github.com/warp/crew-engine/roster"
)

func solve(t *testing.T, cfg assign.Config, persons []roster.Person, centers []roster.Center) *assign.Solution {
	t.Helper()
	model, err := assign.Build(cfg, persons, centers)
	require.NoError(t, err)

	solution, err := model.Solve(assign.Options{MaxTime: 30 * time.Second})
	require.NoError(t, err)
	return solution
}

func crewCounts(t *testing.T, solution *assign.Solution) map[string]int {
	t.Helper()
	placements, err := solution.Placements()
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, pl := range placements {
		counts[pl.Crew]++
	}
	return counts
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestSolve_TwoCrewsWithinBounds(t *testing.T) {
	// GIVEN: 12 youths, 1 center, 2 crews bounded 5..7, no ties
	persons := plainYouth(12)
	centers := twoCrewCenter()

	// WHEN: solving with default weights
	solution := solve(t, assign.DefaultConfig(), persons, centers)

	// THEN: a solution exists with both crews sized 5..7, total 12
	require.True(t, solution.Status().HasValues(), "status: %s", solution.Status())

	counts := crewCounts(t, solution)
	total := 0
	for crew, n := range counts {
		assert.GreaterOrEqual(t, n, 5, "crew %s", crew)
		assert.LessOrEqual(t, n, 7, "crew %s", crew)
		total += n
	}
	assert.Equal(t, 12, total)
}

func TestSolve_EachYouthExactlyOneCrew(t *testing.T) {
	persons := plainYouth(12)
	solution := solve(t, assign.DefaultConfig(), persons, twoCrewCenter())
	require.True(t, solution.Status().HasValues())

	placements, err := solution.Placements()
	require.NoError(t, err)

	perYouth := make(map[string]int)
	for _, pl := range placements {
		perYouth[pl.Person]++
	}
	for _, p := range persons {
		assert.Equal(t, 1, perYouth[p.Name], "youth %s", p.Name)
	}
}

func TestSolve_MinimumSizesUnreachable_Infeasible(t *testing.T) {
	// GIVEN: min_crew_size * crews exceeds youths + fixed adults
	persons := plainYouth(4)
	centers := twoCrewCenter() // 2 crews, min 5 each, only 4 people exist

	// WHEN: solving
	solution := solve(t, assign.DefaultConfig(), persons, centers)

	// THEN: infeasible is an ordinary surfaced outcome
	assert.Equal(t, assign.StatusInfeasible, solution.Status())

	// AND: value queries are refused
	_, err := solution.Placements()
	require.Error(t, err)
	assert.True(t, errors.Is(err, assign.ErrNoSolution))

	_, err = solution.InCenter(persons[0].Name, "Fayette")
	assert.True(t, errors.Is(err, assign.ErrNoSolution))

	_, err = solution.ObjectiveValue()
	assert.True(t, errors.Is(err, assign.ErrNoSolution))
}

func TestSolve_YoungAdultPinnedToRosterCrew(t *testing.T) {
	// GIVEN: a young adult already on F02's roster
	persons := append(plainYouth(8), roster.Person{
		Name:    "Yara Young",
		Role:    roster.RoleYoungAdult,
		Gender:  roster.GenderFemale,
		Year:    roster.YearSenior,
		History: roster.HistoryVeteran,
	})
	centers := twoCrewCenter()
	centers[0].Crews[1].Adults = []string{"Yara Young"}

	// WHEN: solving under weights that would otherwise pull her elsewhere
	cfg := assign.HighFriendWeight()
	cfg.MinCrewSize = 0
	cfg.MaxCrewSize = 12
	solution := solve(t, cfg, persons, centers)
	require.True(t, solution.Status().HasValues())

	// THEN: pinned exactly at the roster crew, zero everywhere else
	inPinned, err := solution.InCrew("Yara Young", "Fayette", "F02")
	require.NoError(t, err)
	assert.True(t, inPinned)

	inOther, err := solution.InCrew("Yara Young", "Fayette", "F01")
	require.NoError(t, err)
	assert.False(t, inOther)
}

func TestSolve_SiblingsShareCenterNeverCrew(t *testing.T) {
	// GIVEN: a sibling pair and two centers
	persons := plainYouth(8)
	persons[0].Siblings = []string{persons[1].Name}
	persons[1].Siblings = []string{persons[0].Name}
	centers := []roster.Center{
		{Name: "Fayette", Crews: []roster.Crew{{Name: "F01"}, {Name: "F02"}}},
		{Name: "Kanawha", Crews: []roster.Crew{{Name: "K01"}, {Name: "K02"}}},
	}

	solution := solve(t, looseConfig(), persons, centers)
	require.True(t, solution.Status().HasValues())

	// THEN: center agreement on every center
	for _, center := range centers {
		a, err := solution.InCenter(persons[0].Name, center.Name)
		require.NoError(t, err)
		b, err := solution.InCenter(persons[1].Name, center.Name)
		require.NoError(t, err)
		assert.Equal(t, a, b, "center %s", center.Name)
	}

	// AND: never the same crew
	for _, center := range centers {
		for _, crew := range center.Crews {
			a, err := solution.InCrew(persons[0].Name, center.Name, crew.Name)
			require.NoError(t, err)
			b, err := solution.InCrew(persons[1].Name, center.Name, crew.Name)
			require.NoError(t, err)
			assert.False(t, a && b, "crew %s", crew.Name)
		}
	}
}

func TestSolve_ChildAtParentCenterButNotParentCrew(t *testing.T) {
	// GIVEN: a parent on F01's roster and a child naming them
	persons := plainYouth(8)
	persons[0].Parents = []string{"Paula Parent"}
	centers := []roster.Center{
		{Name: "Fayette", Crews: []roster.Crew{
			{Name: "F01", Adults: []string{"Paula Parent"}},
			{Name: "F02"},
		}},
		{Name: "Kanawha", Crews: []roster.Crew{{Name: "K01"}, {Name: "K02"}}},
	}

	solution := solve(t, looseConfig(), persons, centers)
	require.True(t, solution.Status().HasValues())

	// THEN: child is at the parent's center
	atFayette, err := solution.InCenter(persons[0].Name, "Fayette")
	require.NoError(t, err)
	assert.True(t, atFayette)

	atKanawha, err := solution.InCenter(persons[0].Name, "Kanawha")
	require.NoError(t, err)
	assert.False(t, atKanawha)

	// AND: never in the parent's crew
	inParentCrew, err := solution.InCrew(persons[0].Name, "Fayette", "F01")
	require.NoError(t, err)
	assert.False(t, inParentCrew)
}

func TestSolve_FriendsShareCenterNeverCrew(t *testing.T) {
	// GIVEN: two youths choosing each other, two centers available
	persons := plainYouth(8)
	persons[0].FirstChoice = persons[1].Name
	persons[1].FirstChoice = persons[0].Name
	centers := []roster.Center{
		{Name: "Fayette", Crews: []roster.Crew{{Name: "F01"}, {Name: "F02"}}},
		{Name: "Kanawha", Crews: []roster.Crew{{Name: "K01"}, {Name: "K02"}}},
	}

	solution := solve(t, looseConfig(), persons, centers)
	require.True(t, solution.Status().HasValues())

	// THEN: the hard coverage rule puts them at the same center
	sameCenter := false
	for _, center := range centers {
		a, err := solution.InCenter(persons[0].Name, center.Name)
		require.NoError(t, err)
		b, err := solution.InCenter(persons[1].Name, center.Name)
		require.NoError(t, err)
		if a && b {
			sameCenter = true
		}
	}
	assert.True(t, sameCenter)

	// AND: separation keeps them out of the same crew
	for _, center := range centers {
		for _, crew := range center.Crews {
			a, err := solution.InCrew(persons[0].Name, center.Name, crew.Name)
			require.NoError(t, err)
			b, err := solution.InCrew(persons[1].Name, center.Name, crew.Name)
			require.NoError(t, err)
			assert.False(t, a && b, "crew %s", crew.Name)
		}
	}
}

func TestSolve_UnresolvedFriendChoiceConstrainsNothing(t *testing.T) {
	// GIVEN: a youth whose sole choice names nobody on the roster
	persons := plainYouth(6)
	persons[0].FirstChoice = "Nobody Known"

	// WHEN: solving
	solution := solve(t, looseConfig(), persons, twoCrewCenter())

	// THEN: solvable; no friend rule pinned the youth anywhere
	require.True(t, solution.Status().HasValues())

	placed, err := solution.InCenter(persons[0].Name, "Fayette")
	require.NoError(t, err)
	assert.True(t, placed)
}

func TestSolve_PastLeaderCrewExcluded(t *testing.T) {
	// GIVEN: a youth whose past leader runs F01
	persons := plainYouth(6)
	persons[0].PastLeaders = []string{"Old Leader"}
	centers := twoCrewCenter()
	centers[0].Crews[0].Adults = []string{"Old Leader"}

	solution := solve(t, looseConfig(), persons, centers)
	require.True(t, solution.Status().HasValues())

	inExcluded, err := solution.InCrew(persons[0].Name, "Fayette", "F01")
	require.NoError(t, err)
	assert.False(t, inExcluded)
}

func TestSolve_GenderBalanceCountsPinnedAdults(t *testing.T) {
	// GIVEN: a female young adult pinned to F01 and two male youths, with
	// only the gender-balance reward active
	persons := []roster.Person{
		youth("Mark One", roster.GenderMale, roster.YearFreshman, roster.HistoryNew),
		youth("Mark Two", roster.GenderMale, roster.YearSophomore, roster.HistoryNew),
		{
			Name:    "Yara Young",
			Role:    roster.RoleYoungAdult,
			Gender:  roster.GenderFemale,
			Year:    roster.YearSenior,
			History: roster.HistoryVeteran,
		},
	}
	centers := twoCrewCenter()
	centers[0].Crews[0].Adults = []string{"Yara Young"}
	cfg := assign.Config{MinCrewSize: 0, MaxCrewSize: 12, GenderWeight: 4}

	// WHEN: solving
	solution := solve(t, cfg, persons, centers)
	require.True(t, solution.Status().HasValues())

	// THEN: the only balance point comes from pairing a male youth with the
	// pinned female, so the optimum places at least one in F01
	objective, err := solution.ObjectiveValue()
	require.NoError(t, err)
	assert.Equal(t, 4.0, objective)

	one, err := solution.InCrew("Mark One", "Fayette", "F01")
	require.NoError(t, err)
	two, err := solution.InCrew("Mark Two", "Fayette", "F01")
	require.NoError(t, err)
	assert.True(t, one || two)
}

func TestSolve_YearDiversitySpreadsGrades(t *testing.T) {
	// GIVEN: two freshmen and two sophomores, only the year reward active
	persons := []roster.Person{
		youth("Fresh One", roster.GenderFemale, roster.YearFreshman, roster.HistoryNew),
		youth("Fresh Two", roster.GenderMale, roster.YearFreshman, roster.HistoryVeteran),
		youth("Soph One", roster.GenderFemale, roster.YearSophomore, roster.HistoryNew),
		youth("Soph Two", roster.GenderMale, roster.YearSophomore, roster.HistoryVeteran),
	}
	centers := twoCrewCenter()
	cfg := assign.Config{MinCrewSize: 0, MaxCrewSize: 12, YearWeight: 1}

	// WHEN: solving
	solution := solve(t, cfg, persons, centers)
	require.True(t, solution.Status().HasValues())

	// THEN: four represented (crew, band) pairs means each crew got one of
	// each grade instead of grouping by grade
	objective, err := solution.ObjectiveValue()
	require.NoError(t, err)
	assert.Equal(t, 4.0, objective)

	placements, err := solution.Placements()
	require.NoError(t, err)
	years := make(map[string]map[roster.Year]bool)
	for _, pl := range placements {
		for _, p := range persons {
			if p.Name == pl.Person {
				if years[pl.Crew] == nil {
					years[pl.Crew] = make(map[roster.Year]bool)
				}
				years[pl.Crew][p.Year] = true
			}
		}
	}
	for _, crew := range []string{"F01", "F02"} {
		assert.True(t, years[crew][roster.YearFreshman], "crew %s", crew)
		assert.True(t, years[crew][roster.YearSophomore], "crew %s", crew)
	}
}

func TestSolve_UnknownVariableQueryRejected(t *testing.T) {
	solution := solve(t, looseConfig(), plainYouth(4), twoCrewCenter())
	require.True(t, solution.Status().HasValues())

	_, err := solution.InCenter("Nobody Known", "Fayette")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assign.ErrUnknownVariable))
}
