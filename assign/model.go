/*
model.go - Model assembly: entities in, CP-SAT model out

PURPOSE:
  Build() turns a validated roster and center list into a complete CP-SAT
  model: variable space, hard constraints, weighted objective. The flow is

    entities -> variable space -> constraints -> objective -> Solve()

  Construction is synchronous and single-threaded; the only mutation is of
  the one cpmodel.Builder this Model exclusively owns. Everything is rebuilt
  fresh per solve - no caching, no reuse across runs.

BUILD ORDER:
  Integrity checks run first (sibling/parent center agreement), then the
  structural, family, and social constraints in a fixed order, then the four
  objective families. A data-integrity failure aborts the build; no partial
  model is returned.

SEE ALSO:
  - constraints.go, objective.go: The builders called here
  - solve.go: Hands the assembled model to the solver
*/
package assign

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/warp/crew-engine/roster"
)

// Model is an assembled crew-assignment CP-SAT model, ready to solve.
type Model struct {
	builder *cpmodel.Builder
	vars    *VarSpace
	cfg     Config
	ros     *roster.Roster
	centers []roster.Center
	adults  *roster.AdultIndex
}

// Build assembles the model for the given configuration, participants, and
// centers. It returns a data-integrity error (ErrParentNotFound,
// ErrSiblingCenterConflict) before any solve attempt if family references
// cannot be honored.
func Build(cfg Config, persons []roster.Person, centers []roster.Center) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ros := roster.NewRoster(persons)
	adults := roster.NewAdultIndex(centers)

	// Integrity first: fail fast before paying for variable construction.
	if err := checkSiblingParentCenters(ros, adults); err != nil {
		return nil, err
	}

	b := cpmodel.NewCpModelBuilder()
	vars := newVarSpace(b, persons, centers)

	// Hard constraints.
	addOneCrewPerYouth(b, vars, ros, centers)
	pinYoungAdults(b, vars, ros, centers)
	linkCrewAndCenterVars(b, vars, ros, centers)
	if err := enforceParentCenter(b, vars, ros, centers, adults); err != nil {
		return nil, err
	}
	enforceSiblingCenter(b, vars, ros, centers)
	enforceSiblingCrewSeparation(b, vars, ros, centers)
	enforceFriendSeparation(b, vars, ros, centers)
	enforceFriendCenter(b, vars, ros, centers)
	enforceCrewSizes(b, vars, ros, centers, cfg)
	enforcePastLeaders(b, vars, ros, centers)

	// Weighted objective.
	obj := cpmodel.NewLinearExpr()
	friendPreferenceTerms(b, vars, ros, centers, adults, cfg, obj)
	genderBalanceTerms(b, vars, ros, centers, cfg, obj)
	yearDiversityTerms(b, vars, ros, centers, cfg, obj)
	historyBalanceTerms(b, vars, ros, centers, cfg, obj)
	b.Maximize(obj)

	return &Model{
		builder: b,
		vars:    vars,
		cfg:     cfg,
		ros:     ros,
		centers: centers,
		adults:  adults,
	}, nil
}

// Vars exposes the decision-variable space for consumers keyed by the same
// (person, center[, crew]) identities.
func (m *Model) Vars() *VarSpace { return m.vars }

// Config returns the configuration the model was built with.
func (m *Model) Config() Config { return m.cfg }

// Stats describes the assembled model's size.
type Stats struct {
	Variables   int
	Constraints int
}

// Stats serializes the model once to count variables and constraints.
// Rebuilding from identical inputs yields identical stats.
func (m *Model) Stats() (Stats, error) {
	mp, err := m.builder.Model()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Variables:   len(mp.GetVariables()),
		Constraints: len(mp.GetConstraints()),
	}, nil
}
