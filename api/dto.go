/*
dto.go - JSON request/response shapes for the HTTP API

PURPOSE:
  Keeps the wire format decoupled from the domain records. Conversion
  functions in this file are the only place JSON shapes and roster/assign
  types meet.

SEE ALSO:
  - handlers.go: Uses these for every endpoint
*/
package api

import (
	"github.com/warp/crew-engine/assign"
	"github.com/warp/crew-engine/roster"
	"github.com/warp/crew-engine/store/sqlite"
)

// =============================================================================
// REQUESTS
// =============================================================================

// PersonDTO mirrors roster.Person.
type PersonDTO struct {
	Name         string   `json:"name"`
	Role         string   `json:"role,omitempty"`
	Year         string   `json:"year"`
	Gender       string   `json:"gender"`
	History      string   `json:"history"`
	Parents      []string `json:"parents,omitempty"`
	Siblings     []string `json:"siblings,omitempty"`
	FirstChoice  string   `json:"first_choice,omitempty"`
	SecondChoice string   `json:"second_choice,omitempty"`
	ThirdChoice  string   `json:"third_choice,omitempty"`
	PastLeaders  []string `json:"past_leaders,omitempty"`
}

// CrewDTO mirrors roster.Crew.
type CrewDTO struct {
	Name   string   `json:"name"`
	Adults []string `json:"adults"`
}

// CenterDTO mirrors roster.Center.
type CenterDTO struct {
	Name  string    `json:"name"`
	Crews []CrewDTO `json:"crews"`
}

// ConfigDTO mirrors assign.Config.
type ConfigDTO struct {
	MinCrewSize   int `json:"min_crew_size"`
	MaxCrewSize   int `json:"max_crew_size"`
	FriendWeight  int `json:"friend_weight"`
	GenderWeight  int `json:"gender_weight"`
	YearWeight    int `json:"year_weight"`
	HistoryWeight int `json:"history_weight"`
}

// SolveRequest is the full input for one solve run.
type SolveRequest struct {
	// Either a full config or a preset name ("default",
	// "high_friend_weight", "high_diversity"). Config wins when both set.
	Config *ConfigDTO `json:"config,omitempty"`
	Preset string     `json:"preset,omitempty"`

	// Solver budget. Zero time limit means unlimited.
	TimeLimitSeconds float64 `json:"time_limit_seconds,omitempty"`
	Workers          int32   `json:"workers,omitempty"`

	Persons []PersonDTO `json:"persons"`
	Centers []CenterDTO `json:"centers"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// PlacementDTO is one participant's solved placement.
type PlacementDTO struct {
	Name   string `json:"name"`
	Center string `json:"center"`
	Crew   string `json:"crew"`
}

// SolveResponse reports one finished solve run.
type SolveResponse struct {
	RunID        string            `json:"run_id"`
	Status       string            `json:"status"`
	Objective    float64           `json:"objective,omitempty"`
	SolveMillis  int64             `json:"solve_millis"`
	Placements   []PlacementDTO    `json:"placements,omitempty"`
	CenterScores map[string]string `json:"center_scores,omitempty"`
	AverageScore string            `json:"average_score,omitempty"`
}

// RunDTO mirrors a persisted run.
type RunDTO struct {
	ID         string  `json:"id"`
	CreatedAt  string  `json:"created_at"`
	Status     string  `json:"status"`
	Objective  float64 `json:"objective"`
	YouthCount int     `json:"youth_count"`
	ConfigJSON string  `json:"config_json"`
}

// AssignmentDTO mirrors a persisted assignment row.
type AssignmentDTO struct {
	Center  string `json:"center"`
	Crew    string `json:"crew"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Gender  string `json:"gender,omitempty"`
	Year    string `json:"year,omitempty"`
	History string `json:"history,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func (d PersonDTO) toDomain() roster.Person {
	role := roster.Role(d.Role)
	if role == "" {
		role = roster.RoleYouth
	}
	return roster.Person{
		Name:         d.Name,
		Role:         role,
		Year:         roster.Year(d.Year),
		Gender:       roster.Gender(d.Gender),
		History:      roster.History(d.History),
		Parents:      d.Parents,
		Siblings:     d.Siblings,
		FirstChoice:  d.FirstChoice,
		SecondChoice: d.SecondChoice,
		ThirdChoice:  d.ThirdChoice,
		PastLeaders:  d.PastLeaders,
	}
}

func (d CenterDTO) toDomain() roster.Center {
	center := roster.Center{Name: d.Name}
	for _, crew := range d.Crews {
		center.Crews = append(center.Crews, roster.Crew{Name: crew.Name, Adults: crew.Adults})
	}
	return center
}

func (d ConfigDTO) toDomain() assign.Config {
	return assign.Config{
		MinCrewSize:   d.MinCrewSize,
		MaxCrewSize:   d.MaxCrewSize,
		FriendWeight:  d.FriendWeight,
		GenderWeight:  d.GenderWeight,
		YearWeight:    d.YearWeight,
		HistoryWeight: d.HistoryWeight,
	}
}

func configDTO(c assign.Config) ConfigDTO {
	return ConfigDTO{
		MinCrewSize:   c.MinCrewSize,
		MaxCrewSize:   c.MaxCrewSize,
		FriendWeight:  c.FriendWeight,
		GenderWeight:  c.GenderWeight,
		YearWeight:    c.YearWeight,
		HistoryWeight: c.HistoryWeight,
	}
}

func runDTO(r sqlite.RunRecord) RunDTO {
	return RunDTO{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Status:     r.Status,
		Objective:  r.Objective,
		YouthCount: r.YouthCount,
		ConfigJSON: r.ConfigJSON,
	}
}

func assignmentDTO(a sqlite.AssignmentRecord) AssignmentDTO {
	return AssignmentDTO{
		Center:  a.Center,
		Crew:    a.Crew,
		Name:    a.Name,
		Role:    a.Role,
		Gender:  a.Gender,
		Year:    a.Year,
		History: a.History,
	}
}
