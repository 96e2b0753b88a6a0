/*
solve.go - Solve orchestration and the read-only solution surface

PURPOSE:
  Hands the assembled model to the external CP-SAT solver and interprets its
  terminal status. The solver may use multiple search workers internally;
  that parallelism is opaque here and exposed only as configuration.

TERMINAL OUTCOMES:
  Optimal       proven best assignment
  Feasible      valid assignment, optimality unproven (e.g. time-limited)
  Infeasible    no legal assignment exists; an ordinary outcome, surfaced to
                the caller who may relax configuration and retry
  ModelInvalid  a builder defect (not a data problem); non-retryable
  Unknown       solver gave up without a verdict

  Only Optimal and Feasible expose variable values. Reading values from any
  other outcome returns ErrNoSolution.

CANCELLATION:
  None beyond the wall-clock budget. There is no resume or incremental
  re-solve; every solve starts from a freshly built model.

SEE ALSO:
  - model.go: Build
  - report: Consumes Placements()
*/
package assign

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"github.com/warp/crew-engine/roster"
	"google.golang.org/protobuf/proto"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the terminal outcome of a solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// HasValues reports whether variable values may be read under this status.
func (s Status) HasValues() bool {
	return s == StatusOptimal || s == StatusFeasible
}

func statusFromProto(s cmpb.CpSolverStatus) Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return StatusModelInvalid
	default:
		return StatusUnknown
	}
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the external solver for one run.
type Options struct {
	// MaxTime is the wall-clock budget. Zero means no limit.
	MaxTime time.Duration

	// Workers is the parallel search worker count. Zero lets the solver
	// decide.
	Workers int32

	// LogSearch enables the solver's own search-progress logging.
	LogSearch bool
}

func (o Options) parameters() *sppb.SatParameters {
	params := &sppb.SatParameters{}
	if o.MaxTime > 0 {
		params.MaxTimeInSeconds = proto.Float64(o.MaxTime.Seconds())
	}
	if o.Workers > 0 {
		params.NumSearchWorkers = proto.Int32(o.Workers)
	}
	if o.LogSearch {
		params.LogSearchProgress = proto.Bool(true)
	}
	return params
}

// =============================================================================
// SOLVE
// =============================================================================

// Solve runs the external solver on the assembled model. The error covers
// invocation failures only; Infeasible and ModelInvalid are reported through
// the Solution's status, never as Go errors.
func (m *Model) Solve(opts Options) (*Solution, error) {
	mp, err := m.builder.Model()
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate the CP model: %w", err)
	}

	response, err := cpmodel.SolveCpModelWithParameters(mp, opts.parameters())
	if err != nil {
		return nil, fmt.Errorf("failed to solve the model: %w", err)
	}

	return &Solution{
		status:   statusFromProto(response.GetStatus()),
		response: response,
		vars:     m.vars,
		ros:      m.ros,
		centers:  m.centers,
	}, nil
}

// =============================================================================
// SOLUTION - Read-only query surface
// =============================================================================

// Solution exposes the solved variable values through the same
// (person, center[, crew]) keys the model was built with.
type Solution struct {
	status   Status
	response *cmpb.CpSolverResponse
	vars     *VarSpace
	ros      *roster.Roster
	centers  []roster.Center
}

// Status returns the terminal outcome.
func (s *Solution) Status() Status { return s.status }

// WallTime returns the solver's reported wall time.
func (s *Solution) WallTime() time.Duration {
	return time.Duration(s.response.GetWallTime() * float64(time.Second))
}

// ObjectiveValue returns the achieved objective.
func (s *Solution) ObjectiveValue() (float64, error) {
	if !s.status.HasValues() {
		return 0, fmt.Errorf("status %s: %w", s.status, ErrNoSolution)
	}
	return s.response.GetObjectiveValue(), nil
}

// InCenter reports whether the person was placed at the center.
func (s *Solution) InCenter(person, center string) (bool, error) {
	if !s.status.HasValues() {
		return false, fmt.Errorf("status %s: %w", s.status, ErrNoSolution)
	}
	v, ok := s.vars.lookupCenter(person, center)
	if !ok {
		return false, fmt.Errorf("(%s, %s): %w", person, center, ErrUnknownVariable)
	}
	return cpmodel.SolutionBooleanValue(s.response, v), nil
}

// InCrew reports whether the person was placed in the crew.
func (s *Solution) InCrew(person, center, crew string) (bool, error) {
	if !s.status.HasValues() {
		return false, fmt.Errorf("status %s: %w", s.status, ErrNoSolution)
	}
	v, ok := s.vars.lookupCrew(person, center, crew)
	if !ok {
		return false, fmt.Errorf("(%s, %s, %s): %w", person, center, crew, ErrUnknownVariable)
	}
	return cpmodel.SolutionBooleanValue(s.response, v), nil
}

// Placement is one person's resolved (center, crew) assignment.
type Placement struct {
	Person string
	Center string
	Crew   string
}

// Placements lists every participant's assignment, in center/crew/roster
// order. Young adults appear at their pinned crews.
func (s *Solution) Placements() ([]Placement, error) {
	if !s.status.HasValues() {
		return nil, fmt.Errorf("status %s: %w", s.status, ErrNoSolution)
	}
	var placements []Placement
	for _, center := range s.centers {
		for _, crew := range center.Crews {
			for _, p := range s.ros.Persons {
				v := s.vars.Crew(p.Name, center.Name, crew.Name)
				if cpmodel.SolutionBooleanValue(s.response, v) {
					placements = append(placements, Placement{
						Person: p.Name,
						Center: center.Name,
						Crew:   crew.Name,
					})
				}
			}
		}
	}
	return placements, nil
}
