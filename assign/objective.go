/*
objective.go - Weighted soft preferences, summed into one maximization

PURPOSE:
  Four reward families, all linear, all non-negative, summed with no
  normalization (absolute config weights trade the sub-goals off directly):

  friendPreferenceTerms:
    FriendWeight * rank points (3/2/1) for each resolvable choice co-located
    at the same center. For a regular youth this needs an auxiliary AND
    variable over the two center booleans; for a pinned young adult the
    placement is a known constant, so the term collapses to the friend's own
    center variable at the young adult's center.

  genderBalanceTerms:
    GenderWeight * min(females, males) per crew, via the min-upper-bound
    idiom: the solver drives the auxiliary up to the true minimum because the
    objective only ever benefits from it.

  yearDiversityTerms:
    YearWeight per grade band represented in a crew (presence channeling).

  historyBalanceTerms:
    HistoryWeight * min(veterans, new) per crew, same idiom as gender.

  The three balance/diversity families count every participant, pinned young
  adults included: a crew whose roster already holds a female young adult
  gets gender-balance credit for the male youths assigned alongside her.

SEE ALSO:
  - linearize.go: The auxiliary-variable constructors
  - model.go: Sums the terms and calls Maximize
*/
package assign

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/warp/crew-engine/roster"
)

// friendPreferenceTerms rewards friend co-location at the center level.
// Young adults' preferences still score even though their own placement is
// fixed.
func friendPreferenceTerms(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center, adults *roster.AdultIndex, cfg Config, obj *cpmodel.LinearExpr) {
	for _, p := range ros.Persons {
		for _, choice := range ros.ResolvableChoices(p) {
			weight := int64(cfg.FriendWeight * choice.Points)
			if !p.IsYouth() {
				// Pinned placement: reward reduces to the friend being at
				// the young adult's known center.
				loc, ok := adults.Locate(p.Name)
				if !ok {
					continue
				}
				obj.AddTerm(vars.Center(choice.Name, loc.Center), weight)
				continue
			}
			for _, center := range centers {
				same := andVar(b,
					vars.Center(p.Name, center.Name),
					vars.Center(choice.Name, center.Name),
					fmt.Sprintf("same_center_%s_%s_%s", p.Name, choice.Name, center.Name))
				obj.AddTerm(same, weight)
			}
		}
	}
}

// genderBalanceTerms rewards crews with similar numbers of female and male
// participants. Pinned young adults count toward the mix; their crew
// variables are constants.
func genderBalanceTerms(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center, cfg Config, obj *cpmodel.LinearExpr) {
	for _, center := range centers {
		for _, crew := range center.Crews {
			females := cpmodel.NewLinearExpr()
			males := cpmodel.NewLinearExpr()
			for _, p := range ros.Persons {
				switch p.Gender {
				case roster.GenderFemale:
					females.Add(vars.Crew(p.Name, center.Name, crew.Name))
				case roster.GenderMale:
					males.Add(vars.Crew(p.Name, center.Name, crew.Name))
				}
			}
			balance := minUpperBoundVar(b, females, males, int64(cfg.MaxCrewSize),
				fmt.Sprintf("gender_balance_%s_%s", center.Name, crew.Name))
			obj.AddTerm(balance, int64(cfg.GenderWeight))
		}
	}
}

// yearDiversityTerms rewards each grade band represented in a crew,
// encouraging a mix of ages rather than grouping by grade.
func yearDiversityTerms(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center, cfg Config, obj *cpmodel.LinearExpr) {
	for _, center := range centers {
		for _, crew := range center.Crews {
			for _, year := range roster.Years() {
				count := cpmodel.NewLinearExpr()
				for _, p := range ros.Persons {
					if p.Year == year {
						count.Add(vars.Crew(p.Name, center.Name, crew.Name))
					}
				}
				represented := presenceVar(b, count,
					fmt.Sprintf("has_year_%s_%s_%s", center.Name, crew.Name, year))
				obj.AddTerm(represented, int64(cfg.YearWeight))
			}
		}
	}
}

// historyBalanceTerms rewards crews mixing veterans with new participants.
func historyBalanceTerms(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center, cfg Config, obj *cpmodel.LinearExpr) {
	for _, center := range centers {
		for _, crew := range center.Crews {
			vets := cpmodel.NewLinearExpr()
			fresh := cpmodel.NewLinearExpr()
			for _, p := range ros.Persons {
				switch p.History {
				case roster.HistoryVeteran:
					vets.Add(vars.Crew(p.Name, center.Name, crew.Name))
				case roster.HistoryNew:
					fresh.Add(vars.Crew(p.Name, center.Name, crew.Name))
				}
			}
			balance := minUpperBoundVar(b, vets, fresh, int64(cfg.MaxCrewSize),
				fmt.Sprintf("history_balance_%s_%s", center.Name, crew.Name))
			obj.AddTerm(balance, int64(cfg.HistoryWeight))
		}
	}
}
