/*
summary.go - Human-readable breakdown of a solved assignment

PURPOSE:
  Builds the per-crew and per-center composition view the organizers print
  and argue over: who landed where, and how the year/gender/history mix
  came out. Render writes the same layout the team has always read, crew by
  crew with a trailing totals block.

SEE ALSO:
  - scores.go: The friendship numbers folded into the output
  - writer.go: The machine-readable CSV counterpart
*/
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/warp/crew-engine/roster"
)

// CrewSummary is the composition of one solved crew.
type CrewSummary struct {
	Center string
	Crew   string
	Youth  []string
	Adults []string

	YearCounts    map[roster.Year]int
	GenderCounts  map[roster.Gender]int
	HistoryCounts map[roster.History]int
}

// Headcount is the crew's total size: assigned youth plus the fixed roster.
func (cs CrewSummary) Headcount() int { return len(cs.Youth) + len(cs.Adults) }

// Summary is the full breakdown of one solved assignment.
type Summary struct {
	Crews       []CrewSummary
	TotalYouth  int
	TotalAdults int
}

// BuildSummary walks centers in model order and gathers each crew's
// composition from the placements.
func BuildSummary(idx *PlacementIndex, ros *roster.Roster, centers []roster.Center) Summary {
	var s Summary
	for _, center := range centers {
		for _, crew := range center.Crews {
			cs := CrewSummary{
				Center:        center.Name,
				Crew:          crew.Name,
				Adults:        crew.Adults,
				YearCounts:    make(map[roster.Year]int),
				GenderCounts:  make(map[roster.Gender]int),
				HistoryCounts: make(map[roster.History]int),
			}
			for _, p := range ros.Persons {
				if !p.IsYouth() {
					continue
				}
				if idx.CenterOf(p.Name) == center.Name && idx.CrewOf(p.Name) == crew.Name {
					cs.Youth = append(cs.Youth, p.Name)
					cs.YearCounts[p.Year]++
					cs.GenderCounts[p.Gender]++
					cs.HistoryCounts[p.History]++
				}
			}
			s.TotalYouth += len(cs.Youth)
			s.TotalAdults += len(cs.Adults)
			s.Crews = append(s.Crews, cs)
		}
	}
	return s
}

// Render writes the breakdown crew by crew, then overall totals and the
// friendship statistics.
func Render(w io.Writer, s Summary, scores map[string]decimal.Decimal, avg decimal.Decimal, stats ChoiceStats) {
	lastCenter := ""
	for _, cs := range s.Crews {
		if cs.Center != lastCenter {
			fmt.Fprintf(w, "\nCenter %s (friend score %s):\n", cs.Center, scores[cs.Center])
			lastCenter = cs.Center
		}
		fmt.Fprintf(w, "  %s (%d total):\n", cs.Crew, cs.Headcount())
		fmt.Fprintf(w, "    Youth:  %v\n", cs.Youth)
		fmt.Fprintf(w, "    Adults: %v\n", cs.Adults)
		fmt.Fprintf(w, "    Years: Fr=%d So=%d Jr=%d Sr=%d\n",
			cs.YearCounts[roster.YearFreshman], cs.YearCounts[roster.YearSophomore],
			cs.YearCounts[roster.YearJunior], cs.YearCounts[roster.YearSenior])
		fmt.Fprintf(w, "    Gender (F/M): %d/%d\n",
			cs.GenderCounts[roster.GenderFemale], cs.GenderCounts[roster.GenderMale])
		fmt.Fprintf(w, "    History (vet/new): %d/%d\n",
			cs.HistoryCounts[roster.HistoryVeteran], cs.HistoryCounts[roster.HistoryNew])
	}

	fmt.Fprintf(w, "\n=== Summary ===\n")
	fmt.Fprintf(w, "Total Youth: %d\n", s.TotalYouth)
	fmt.Fprintf(w, "Total Adults: %d\n", s.TotalAdults)
	fmt.Fprintf(w, "Total Participants: %d\n", s.TotalYouth+s.TotalAdults)
	fmt.Fprintf(w, "Average friend score: %s\n", avg)
	fmt.Fprintf(w, "With 1st choice: %s%%  2nd: %s%%  3rd: %s%%  multiple: %s%%\n",
		stats.FirstChoicePct, stats.SecondChoicePct, stats.ThirdChoicePct, stats.MultipleFriendsPct)
}
