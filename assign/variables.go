/*
variables.go - The boolean decision-variable space

PURPOSE:
  Allocates the two families of boolean decisions the whole model is built on:

    center[person, center]       person is placed at this center
    crew[person, center, crew]   person is placed in this crew

  Total variable count = |persons|*|centers| + |persons|*sum(|crews|).

  Variables are created in deterministic slice order (persons, then centers,
  then crews), so rebuilding from identical inputs yields an identical model.
  The maps are keyed by composite structs rather than formatted strings; the
  variable names carried into the proto are for solver logs only.

LIFECYCLE:
  A VarSpace is owned by exactly one Model and rebuilt fresh for every solve.
  Consumers (objective builders, the solution surface, reporting) read results
  through the same keys post-solve.

SEE ALSO:
  - model.go: Builds the space
  - solve.go: Reads values back through it
*/
package assign

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/warp/crew-engine/roster"
)

// =============================================================================
// COMPOSITE KEYS
// =============================================================================

// CenterKey identifies a (person, center) decision.
type CenterKey struct {
	Person string
	Center string
}

// CrewKey identifies a (person, center, crew) decision.
type CrewKey struct {
	Person string
	Center string
	Crew   string
}

// =============================================================================
// VAR SPACE
// =============================================================================

// VarSpace holds the boolean decision variables for one model.
type VarSpace struct {
	center map[CenterKey]cpmodel.BoolVar
	crew   map[CrewKey]cpmodel.BoolVar
}

// newVarSpace allocates one boolean per (person, center) and one per
// (person, center, crew).
func newVarSpace(b *cpmodel.Builder, persons []roster.Person, centers []roster.Center) *VarSpace {
	vs := &VarSpace{
		center: make(map[CenterKey]cpmodel.BoolVar, len(persons)*len(centers)),
		crew:   make(map[CrewKey]cpmodel.BoolVar, len(persons)*roster.TotalCrews(centers)),
	}

	for _, p := range persons {
		for _, c := range centers {
			vs.center[CenterKey{p.Name, c.Name}] = b.NewBoolVar().
				WithName(fmt.Sprintf("person_%s_center_%s", p.Name, c.Name))
		}
	}
	for _, c := range centers {
		for _, k := range c.Crews {
			for _, p := range persons {
				vs.crew[CrewKey{p.Name, c.Name, k.Name}] = b.NewBoolVar().
					WithName(fmt.Sprintf("person_%s_center_%s_crew_%s", p.Name, c.Name, k.Name))
			}
		}
	}
	return vs
}

// Center returns the (person, center) variable. The key must exist; builders
// only ever use persons/centers the space was built from.
func (vs *VarSpace) Center(person, center string) cpmodel.BoolVar {
	return vs.center[CenterKey{person, center}]
}

// Crew returns the (person, center, crew) variable.
func (vs *VarSpace) Crew(person, center, crew string) cpmodel.BoolVar {
	return vs.crew[CrewKey{person, center, crew}]
}

// lookupCenter is the checked form used by the post-solve query surface.
func (vs *VarSpace) lookupCenter(person, center string) (cpmodel.BoolVar, bool) {
	v, ok := vs.center[CenterKey{person, center}]
	return v, ok
}

func (vs *VarSpace) lookupCrew(person, center, crew string) (cpmodel.BoolVar, bool) {
	v, ok := vs.crew[CrewKey{person, center, crew}]
	return v, ok
}

// CenterVarCount returns the number of (person, center) decisions.
func (vs *VarSpace) CenterVarCount() int { return len(vs.center) }

// CrewVarCount returns the number of (person, center, crew) decisions.
func (vs *VarSpace) CrewVarCount() int { return len(vs.crew) }
