/*
lookup.go - Name-keyed lookup structures over the entity records

PURPOSE:
  Two indexes the constraint and objective builders depend on:

  Roster:
    Persons plus a by-name index. Resolves friend/sibling references and
    answers "is this name a participant at all" (unresolvable friend choices
    are skipped, not errors).

  AdultIndex:
    Maps every adult name to the (center, crew) owning the roster it appears
    in. Built once from the centers. Drives parent resolution, young-adult
    pinning, and past-leader exclusion.

  Both are built fresh per solve. Keys are plain names that could collide
  across unrelated datasets, so nothing here is cached or shared across runs.

SEE ALSO:
  - types.go: The underlying records
  - assign/constraints.go: The consumers
*/
package roster

// =============================================================================
// ROSTER - Participants with by-name resolution
// =============================================================================

// Roster wraps the participant list with a by-name index.
type Roster struct {
	Persons []Person

	byName map[string]int
}

// NewRoster builds the index. Later entries with a duplicate name shadow
// earlier ones; the ingest package guarantees uniqueness upstream.
func NewRoster(persons []Person) *Roster {
	r := &Roster{
		Persons: persons,
		byName:  make(map[string]int, len(persons)),
	}
	for i, p := range persons {
		r.byName[p.Name] = i
	}
	return r
}

// Lookup returns the person with the given name, if present.
func (r *Roster) Lookup(name string) (Person, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Person{}, false
	}
	return r.Persons[i], true
}

// Contains reports whether the name refers to a participant.
func (r *Roster) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Youth returns the participants requiring a free assignment decision.
func (r *Roster) Youth() []Person {
	var youth []Person
	for _, p := range r.Persons {
		if p.IsYouth() {
			youth = append(youth, p)
		}
	}
	return youth
}

// ResolvableChoices returns the person's friend choices that name an actual
// participant, in rank order.
func (r *Roster) ResolvableChoices(p Person) []RankedChoice {
	var resolved []RankedChoice
	for _, c := range p.FriendChoices() {
		if r.Contains(c.Name) {
			resolved = append(resolved, c)
		}
	}
	return resolved
}

// =============================================================================
// ADULT INDEX - Adult name to (center, crew) location
// =============================================================================

// AdultLocation is where an adult's crew lives.
type AdultLocation struct {
	Center string
	Crew   string
}

// AdultIndex maps adult names to their crew location.
type AdultIndex struct {
	locations map[string]AdultLocation
}

// NewAdultIndex walks every crew roster once. An adult listed in multiple
// crews keeps the first (center-ordered) location.
func NewAdultIndex(centers []Center) *AdultIndex {
	idx := &AdultIndex{locations: make(map[string]AdultLocation)}
	for _, center := range centers {
		for _, crew := range center.Crews {
			for _, adult := range crew.Adults {
				if _, exists := idx.locations[adult]; !exists {
					idx.locations[adult] = AdultLocation{Center: center.Name, Crew: crew.Name}
				}
			}
		}
	}
	return idx
}

// Locate returns the (center, crew) owning the adult, if any.
func (idx *AdultIndex) Locate(name string) (AdultLocation, bool) {
	loc, ok := idx.locations[name]
	return loc, ok
}

// Contains reports whether the name appears in any crew roster.
func (idx *AdultIndex) Contains(name string) bool {
	_, ok := idx.locations[name]
	return ok
}
