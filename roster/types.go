/*
types.go - Entity records for crews, centers, and participants

PURPOSE:
  Defines the immutable input entities for the assignment engine:
  - Person: a participant (Youth or Young Adult) with family and social ties
  - Crew:   the smallest assignable group, with a fixed pre-existing adult roster
  - Center: a facility grouping multiple crews

  These are pure data records. They are constructed once per solve from
  externally validated input (see ingest package) and are read-only for the
  remainder of the pipeline.

KEY CONCEPTS:
  Role:
    Youth       - requires a free assignment decision
    YoungAdult  - already bound to a crew via its adult roster; counted in
                  headcount but never a free decision

  Friend choices:
    Up to three ranked names. Asymmetric: a choice need not be reciprocated
    and may name someone outside the roster (unresolvable choices are simply
    ignored by the model).

  Siblings/Parents:
    Sibling lists are symmetric and resolved in both directions by the caller.
    Parent names refer to adults in some crew's roster; resolution happens in
    the assign package against the AdultIndex.

SEE ALSO:
  - lookup.go: Roster and AdultIndex lookup structures
  - assign/model.go: How these records become decision variables
*/
package roster

// =============================================================================
// ENUMS - Typed string values used throughout the pipeline
// =============================================================================

// Role distinguishes free-assignment participants from pre-bound ones.
type Role string

const (
	RoleYouth      Role = "Youth"
	RoleYoungAdult Role = "Young Adult"
)

// History records whether a participant attended a prior cycle.
type History string

const (
	HistoryVeteran History = "V"
	HistoryNew     History = "N"
)

// Gender as recorded on the intake form.
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
)

// Year is the grade band of a participant.
type Year string

const (
	YearFreshman  Year = "Fr"
	YearSophomore Year = "So"
	YearJunior    Year = "Jr"
	YearSenior    Year = "Sr"
)

// Years returns the fixed set of grade bands, in display order.
// The year-diversity objective iterates exactly this set.
func Years() []Year {
	return []Year{YearFreshman, YearSophomore, YearJunior, YearSenior}
}

// =============================================================================
// PERSON
// =============================================================================

// Person is a participant in the assignment. Name is the primary key; all
// cross-references (siblings, parents, friend choices, past leaders) are by
// name and resolved upstream.
type Person struct {
	Name    string
	Role    Role
	Year    Year
	Gender  Gender
	History History

	// Family ties. Parents are adult names expected in some crew roster.
	// Siblings are other participants, resolved in both directions.
	Parents  []string
	Siblings []string

	// Ranked friend choices. Empty string = no choice at that rank.
	FirstChoice  string
	SecondChoice string
	ThirdChoice  string

	// Adults who supervised this participant's crew in a prior cycle.
	PastLeaders []string
}

// RankedChoice is a friend choice with its objective points (3/2/1).
type RankedChoice struct {
	Name   string
	Points int
}

// FriendChoices returns the non-empty ranked choices in rank order.
func (p Person) FriendChoices() []RankedChoice {
	var choices []RankedChoice
	if p.FirstChoice != "" {
		choices = append(choices, RankedChoice{Name: p.FirstChoice, Points: 3})
	}
	if p.SecondChoice != "" {
		choices = append(choices, RankedChoice{Name: p.SecondChoice, Points: 2})
	}
	if p.ThirdChoice != "" {
		choices = append(choices, RankedChoice{Name: p.ThirdChoice, Points: 1})
	}
	return choices
}

// IsYouth reports whether this person needs a free assignment decision.
func (p Person) IsYouth() bool { return p.Role == RoleYouth }

// =============================================================================
// CREW / CENTER
// =============================================================================

// Crew is the smallest assignable group. Adults is the immutable pre-existing
// roster, including young adults already bound to the crew.
type Crew struct {
	Name   string
	Adults []string
}

// AdultCount is the fixed headcount the crew starts with before any youth
// are assigned. It counts toward the crew-size bounds.
func (c Crew) AdultCount() int { return len(c.Adults) }

// HasAdult reports whether the named adult is on this crew's roster.
func (c Crew) HasAdult(name string) bool {
	for _, a := range c.Adults {
		if a == name {
			return true
		}
	}
	return false
}

// HasAnyAdult reports whether any of the given names is on this crew's roster.
func (c Crew) HasAnyAdult(names []string) bool {
	for _, n := range names {
		if c.HasAdult(n) {
			return true
		}
	}
	return false
}

// Center is a facility grouping an ordered collection of crews.
type Center struct {
	Name  string
	Crews []Crew
}

// CrewCount returns the number of crews at this center.
func (c Center) CrewCount() int { return len(c.Crews) }

// TotalCrews sums crew counts across centers. The crew-variable count of a
// model is |persons| times this value.
func TotalCrews(centers []Center) int {
	total := 0
	for _, c := range centers {
		total += len(c.Crews)
	}
	return total
}
