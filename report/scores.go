/*
scores.go - Friend-preference scoring over a solved assignment

PURPOSE:
  Descriptive statistics the organizers read after a solve:

  FriendScores:
    Per-center friendship score: rank points (3/2/1) for every resolvable
    choice co-located at the center, normalized by the center's placed
    headcount. Plus the roster-wide average.

  ChoiceStats:
    Percentage of participants co-located with their 1st/2nd/3rd choice and
    with more than one choice.

  Scores are decimal.Decimal, not float64, so the report a human signs off
  on never shows 33.333333333333336.

  Everything here operates on Placements - plain data detached from the
  solver handle - so reporting is testable without running a solve.

SEE ALSO:
  - assign/solve.go: Placements
  - summary.go: Per-crew composition breakdown
*/
package report

import (
	"github.com/shopspring/decimal"
	"github.com/warp/crew-engine/assign"
	"github.com/warp/crew-engine/roster"
)

// =============================================================================
// PLACEMENT INDEX
// =============================================================================

// PlacementIndex answers who-is-where questions over solved placements.
type PlacementIndex struct {
	centerOf map[string]string
	crewOf   map[string]string
}

// NewPlacementIndex builds the index from solved placements.
func NewPlacementIndex(placements []assign.Placement) *PlacementIndex {
	idx := &PlacementIndex{
		centerOf: make(map[string]string, len(placements)),
		crewOf:   make(map[string]string, len(placements)),
	}
	for _, pl := range placements {
		idx.centerOf[pl.Person] = pl.Center
		idx.crewOf[pl.Person] = pl.Crew
	}
	return idx
}

// CenterOf returns the center a person was placed at, "" if unplaced.
func (idx *PlacementIndex) CenterOf(person string) string { return idx.centerOf[person] }

// CrewOf returns the crew a person was placed in, "" if unplaced.
func (idx *PlacementIndex) CrewOf(person string) string { return idx.crewOf[person] }

// SameCenter reports whether both persons were placed at the same center.
func (idx *PlacementIndex) SameCenter(a, b string) bool {
	c, ok := idx.centerOf[a]
	return ok && c == idx.centerOf[b]
}

// =============================================================================
// FRIEND SCORES
// =============================================================================

// FriendScores returns each center's normalized friendship score and the
// roster-wide average, both rounded to two places.
func FriendScores(idx *PlacementIndex, ros *roster.Roster, centers []roster.Center) (map[string]decimal.Decimal, decimal.Decimal) {
	rawScores := make(map[string]int64, len(centers))
	headcounts := make(map[string]int64, len(centers))
	for _, c := range centers {
		rawScores[c.Name] = 0
		headcounts[c.Name] = 0
	}

	total := int64(0)
	for _, p := range ros.Persons {
		center := idx.CenterOf(p.Name)
		if center == "" {
			continue
		}
		headcounts[center]++
		for _, choice := range ros.ResolvableChoices(p) {
			if idx.SameCenter(p.Name, choice.Name) {
				rawScores[center] += int64(choice.Points)
				total += int64(choice.Points)
			}
		}
	}

	normalized := make(map[string]decimal.Decimal, len(centers))
	for _, c := range centers {
		if headcounts[c.Name] == 0 {
			normalized[c.Name] = decimal.Zero
			continue
		}
		normalized[c.Name] = decimal.NewFromInt(rawScores[c.Name]).
			Div(decimal.NewFromInt(headcounts[c.Name])).
			Round(2)
	}

	avg := decimal.Zero
	if len(ros.Persons) > 0 {
		avg = decimal.NewFromInt(total).
			Div(decimal.NewFromInt(int64(len(ros.Persons)))).
			Round(2)
	}
	return normalized, avg
}

// =============================================================================
// CHOICE FULFILLMENT
// =============================================================================

// ChoiceStats summarizes how many participants ended up with their chosen
// friends, as percentages of the roster.
type ChoiceStats struct {
	FirstChoicePct     decimal.Decimal
	SecondChoicePct    decimal.Decimal
	ThirdChoicePct     decimal.Decimal
	MultipleFriendsPct decimal.Decimal
}

// Fulfillment computes ChoiceStats over the solved placements.
func Fulfillment(idx *PlacementIndex, ros *roster.Roster) ChoiceStats {
	total := len(ros.Persons)
	if total == 0 {
		return ChoiceStats{}
	}

	counts := map[int]int{3: 0, 2: 0, 1: 0}
	multiple := 0
	for _, p := range ros.Persons {
		with := 0
		for _, choice := range ros.ResolvableChoices(p) {
			if idx.SameCenter(p.Name, choice.Name) {
				counts[choice.Points]++
				with++
			}
		}
		if with > 1 {
			multiple++
		}
	}

	pct := func(n int) decimal.Decimal {
		return decimal.NewFromInt(int64(n) * 100).
			Div(decimal.NewFromInt(int64(total))).
			Round(1)
	}
	return ChoiceStats{
		FirstChoicePct:     pct(counts[3]),
		SecondChoicePct:    pct(counts[2]),
		ThirdChoicePct:     pct(counts[1]),
		MultipleFriendsPct: pct(multiple),
	}
}
