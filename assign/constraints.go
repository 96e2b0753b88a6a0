/*
constraints.go - Hard constraints defining a legal assignment

PURPOSE:
  One builder function per rule, all encoding linear (in)equalities over the
  boolean variable space:

  Structural:
    addOneCrewPerYouth      each youth lands in exactly one crew
    pinYoungAdults          young adults stay where their roster puts them
    linkCrewAndCenterVars   center var == sum of that center's crew vars
    enforceCrewSizes        min <= youth + adult roster <= max, per crew

  Family:
    enforceParentCenter     child at parent's center, never in parent's crew
    checkSiblingParentCenters  siblings with parents at different centers
                               abort before solving
    enforceSiblingCenter    siblings share a center
    enforceSiblingCrewSeparation  siblings never share a crew

  Social:
    enforceFriendSeparation chosen friends never share a crew
    enforceFriendCenter     a youth with resolvable choices may only be
                            placed at a center holding at least one of them
                            (a binding requirement, not a preference)
    enforcePastLeaders      no crew whose roster contains a past leader

  Sibling and friend crew-separation inequalities are emitted once per
  unordered pair; both directions of the roster relation collapse to the
  same constraint.

ERROR HANDLING:
  enforceParentCenter and checkSiblingParentCenters return data-integrity
  errors. They run before any solve attempt and abort the whole build.

SEE ALSO:
  - model.go: Calls these in a fixed order
  - objective.go: The soft counterparts
*/
package assign

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/warp/crew-engine/roster"
)

// pairKey is an unordered name pair, normalized so (a,b) == (b,a).
type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// =============================================================================
// STRUCTURAL CONSTRAINTS
// =============================================================================

// addOneCrewPerYouth makes each youth's crew variables sum to one across all
// centers and crews: never unassigned, never double-assigned.
func addOneCrewPerYouth(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	for _, p := range ros.Persons {
		if !p.IsYouth() {
			continue
		}
		sum := cpmodel.NewLinearExpr()
		for _, center := range centers {
			for _, crew := range center.Crews {
				sum.Add(vars.Crew(p.Name, center.Name, crew.Name))
			}
		}
		b.AddEquality(sum, cpmodel.NewConstant(1))
	}
}

// pinYoungAdults fixes every young adult to the crew whose roster lists them
// and zeroes all their other variables. This removes them from the search
// space while still counting toward headcount.
func pinYoungAdults(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	for _, p := range ros.Persons {
		if p.IsYouth() {
			continue
		}
		for _, center := range centers {
			for _, crew := range center.Crews {
				v := vars.Crew(p.Name, center.Name, crew.Name)
				if crew.HasAdult(p.Name) {
					b.AddEquality(v, cpmodel.NewConstant(1))
				} else {
					b.AddEquality(v, cpmodel.NewConstant(0))
				}
			}
		}
	}
}

// linkCrewAndCenterVars keeps the aggregate center-level view consistent:
// center[p,c] == sum over crews k of crew[p,c,k]. Every family and social
// constraint below relies on this channeling.
func linkCrewAndCenterVars(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	for _, p := range ros.Persons {
		for _, center := range centers {
			sum := cpmodel.NewLinearExpr()
			for _, crew := range center.Crews {
				sum.Add(vars.Crew(p.Name, center.Name, crew.Name))
			}
			b.AddEquality(vars.Center(p.Name, center.Name), sum)
		}
	}
}

// enforceCrewSizes bounds each crew's total headcount: assigned youth plus
// the fixed adult roster must land in [MinCrewSize, MaxCrewSize]. Also
// tightens crew vars against center vars for youth.
func enforceCrewSizes(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center, cfg Config) {
	for _, center := range centers {
		for _, crew := range center.Crews {
			youthInCrew := cpmodel.NewLinearExpr()
			for _, p := range ros.Persons {
				if p.IsYouth() {
					youthInCrew.Add(vars.Crew(p.Name, center.Name, crew.Name))
				}
			}

			adults := int64(crew.AdultCount())
			total := cpmodel.NewLinearExpr().AddSum(youthInCrew).AddConstant(adults)
			b.AddGreaterOrEqual(total, cpmodel.NewConstant(int64(cfg.MinCrewSize)))
			b.AddLessOrEqual(total, cpmodel.NewConstant(int64(cfg.MaxCrewSize)))

			for _, p := range ros.Persons {
				if p.IsYouth() {
					b.AddLessOrEqual(vars.Crew(p.Name, center.Name, crew.Name), vars.Center(p.Name, center.Name))
				}
			}
		}
	}
}

// =============================================================================
// FAMILY CONSTRAINTS
// =============================================================================

// resolveParentCenter resolves a youth's parents to the center owning the
// crew their names appear in. Every named parent must resolve; when several
// do, the first parent's center is authoritative (all parents are assumed
// co-located upstream).
func resolveParentCenter(p roster.Person, adults *roster.AdultIndex) (string, error) {
	center := ""
	for _, parent := range p.Parents {
		loc, ok := adults.Locate(parent)
		if !ok {
			return "", &ParentNotFoundError{Youth: p.Name, Parent: parent}
		}
		if center == "" {
			center = loc.Center
		}
	}
	return center, nil
}

// enforceParentCenter binds each child to its parent's resolved center and
// keeps it out of every crew there containing any of its parents. A parent
// absent from all rosters is a fatal data-integrity failure.
func enforceParentCenter(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center, adults *roster.AdultIndex) error {
	for _, p := range ros.Persons {
		if len(p.Parents) == 0 {
			continue
		}
		parentCenter, err := resolveParentCenter(p, adults)
		if err != nil {
			return err
		}

		for _, center := range centers {
			if center.Name != parentCenter {
				b.AddEquality(vars.Center(p.Name, center.Name), cpmodel.NewConstant(0))
				continue
			}
			b.AddEquality(vars.Center(p.Name, center.Name), cpmodel.NewConstant(1))
			for _, crew := range center.Crews {
				if crew.HasAnyAdult(p.Parents) {
					b.AddEquality(vars.Crew(p.Name, center.Name, crew.Name), cpmodel.NewConstant(0))
				}
			}
		}
	}
	return nil
}

// checkSiblingParentCenters rejects rosters where two siblings have parents
// resolving to different centers. Co-location and parent binding could never
// both hold, so this surfaces as an integrity failure instead of a confusing
// infeasible solve.
func checkSiblingParentCenters(ros *roster.Roster, adults *roster.AdultIndex) error {
	seen := make(map[pairKey]bool)
	for _, p := range ros.Persons {
		if len(p.Parents) == 0 {
			continue
		}
		pCenter, err := resolveParentCenter(p, adults)
		if err != nil {
			return err
		}
		for _, sibName := range p.Siblings {
			sib, ok := ros.Lookup(sibName)
			if !ok || len(sib.Parents) == 0 {
				continue
			}
			key := newPairKey(p.Name, sib.Name)
			if seen[key] {
				continue
			}
			seen[key] = true

			sCenter, err := resolveParentCenter(sib, adults)
			if err != nil {
				return err
			}
			if pCenter != sCenter {
				return &SiblingCenterConflictError{
					YouthA: p.Name, CenterA: pCenter,
					YouthB: sib.Name, CenterB: sCenter,
				}
			}
		}
	}
	return nil
}

// enforceSiblingCenter keeps each sibling pair at the same center: full
// equality of their center variables, once per unordered pair.
func enforceSiblingCenter(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	seen := make(map[pairKey]bool)
	for _, p := range ros.Persons {
		for _, sibName := range p.Siblings {
			if !ros.Contains(sibName) {
				continue
			}
			key := newPairKey(p.Name, sibName)
			if seen[key] {
				continue
			}
			seen[key] = true
			for _, center := range centers {
				b.AddEquality(vars.Center(p.Name, center.Name), vars.Center(sibName, center.Name))
			}
		}
	}
}

// enforceSiblingCrewSeparation keeps siblings out of the same crew:
// crew[a,c,k] + crew[b,c,k] <= 1 for every crew, once per unordered pair.
func enforceSiblingCrewSeparation(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	seen := make(map[pairKey]bool)
	for _, p := range ros.Persons {
		for _, sibName := range p.Siblings {
			if !ros.Contains(sibName) {
				continue
			}
			key := newPairKey(p.Name, sibName)
			if seen[key] {
				continue
			}
			seen[key] = true
			addPairCrewSeparation(b, vars, p.Name, sibName, centers)
		}
	}
}

func addPairCrewSeparation(b *cpmodel.Builder, vars *VarSpace, a, other string, centers []roster.Center) {
	for _, center := range centers {
		for _, crew := range center.Crews {
			sum := cpmodel.NewLinearExpr().
				Add(vars.Crew(a, center.Name, crew.Name)).
				Add(vars.Crew(other, center.Name, crew.Name))
			b.AddLessOrEqual(sum, cpmodel.NewConstant(1))
		}
	}
}

// =============================================================================
// SOCIAL CONSTRAINTS
// =============================================================================

// enforceFriendSeparation keeps a youth out of the crews of their resolvable
// friend choices. Friends meet at the center, not inside the crew, which
// pushes everyone to work alongside new people.
func enforceFriendSeparation(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	seen := make(map[pairKey]bool)
	for _, p := range ros.Persons {
		if !p.IsYouth() {
			continue
		}
		for _, choice := range ros.ResolvableChoices(p) {
			key := newPairKey(p.Name, choice.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			addPairCrewSeparation(b, vars, p.Name, choice.Name, centers)
		}
	}
}

// enforceFriendCenter requires a youth with at least one resolvable choice to
// be placed at a center holding at least one of those friends:
// center[y,c] <= sum_f center[f,c]. This is a hard rule balancing the crew
// separation above, not a scoring bonus.
func enforceFriendCenter(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	for _, p := range ros.Persons {
		if !p.IsYouth() {
			continue
		}
		choices := ros.ResolvableChoices(p)
		if len(choices) == 0 {
			continue
		}
		for _, center := range centers {
			friends := cpmodel.NewLinearExpr()
			for _, choice := range choices {
				friends.Add(vars.Center(choice.Name, center.Name))
			}
			b.AddLessOrEqual(vars.Center(p.Name, center.Name), friends)
		}
	}
}

// enforcePastLeaders zeroes every crew variable whose roster contains one of
// the youth's past leaders, so nobody repeats a leader pairing.
func enforcePastLeaders(b *cpmodel.Builder, vars *VarSpace, ros *roster.Roster, centers []roster.Center) {
	for _, p := range ros.Persons {
		if !p.IsYouth() || len(p.PastLeaders) == 0 {
			continue
		}
		for _, center := range centers {
			for _, crew := range center.Crews {
				if crew.HasAnyAdult(p.PastLeaders) {
					b.AddEquality(vars.Crew(p.Name, center.Name, crew.Name), cpmodel.NewConstant(0))
				}
			}
		}
	}
}
