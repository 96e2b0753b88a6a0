/*
handlers.go - HTTP handlers for the crew assignment service

PURPOSE:
  Exposes the assignment engine over REST. Handles HTTP request/response and
  JSON serialization, delegates all modeling and solving to the assign
  package, and persists finished runs through the sqlite store.

ENDPOINTS:
  POST /api/solve                   Build, solve, persist, return placements
  GET  /api/runs                    List persisted runs (newest first)
  GET  /api/runs/{id}               One run's metadata
  GET  /api/runs/{id}/assignments   One run's assignments
  GET  /api/presets                 Named configuration presets

REQUEST FLOW:
  1. Parse and validate JSON input
  2. Build the model (data-integrity failures -> 400)
  3. Solve with the requested budget
  4. Persist the run (assignments only when values exist)
  5. Return status, placements, and friendship scores

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: invalid JSON, invalid config, data-integrity failures
  - 404: unknown run id
  - 500: store or solver invocation failures
  Infeasible is NOT an HTTP error: the run completed, the answer is "no
  legal assignment". It returns 200 with status INFEASIBLE and no
  placements.

SEE ALSO:
  - dto.go: Wire shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/crew-engine/assign"
	"github.com/warp/crew-engine/report"
	"github.com/warp/crew-engine/roster"
	"github.com/warp/crew-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// =============================================================================
// SOLVE
// =============================================================================

// SolveCrews runs one full solve: model build, solve, persistence, report.
func (h *Handler) SolveCrews(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Persons) == 0 || len(req.Centers) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "persons and centers are required"})
		return
	}

	cfg, err := resolveConfig(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	persons := make([]roster.Person, 0, len(req.Persons))
	for _, p := range req.Persons {
		persons = append(persons, p.toDomain())
	}
	centers := make([]roster.Center, 0, len(req.Centers))
	for _, c := range req.Centers {
		centers = append(centers, c.toDomain())
	}

	model, err := assign.Build(cfg, persons, centers)
	if err != nil {
		// Integrity and config failures are the caller's data to fix.
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := assign.Options{
		MaxTime: time.Duration(req.TimeLimitSeconds * float64(time.Second)),
		Workers: req.Workers,
	}
	solution, err := model.Solve(opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp, records := buildSolveResponse(solution, persons, centers)
	if err := h.persistRun(r.Context(), resp, cfg, persons, records); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func resolveConfig(req SolveRequest) (assign.Config, error) {
	if req.Config != nil {
		cfg := req.Config.toDomain()
		return cfg, cfg.Validate()
	}
	if req.Preset != "" {
		cfg, ok := assign.Presets()[req.Preset]
		if !ok {
			return assign.Config{}, errors.New("unknown preset: " + req.Preset)
		}
		return cfg, nil
	}
	return assign.DefaultConfig(), nil
}

// buildSolveResponse assembles the response and the persistence records.
// Placements and scores only exist when the solve produced values.
func buildSolveResponse(solution *assign.Solution, persons []roster.Person, centers []roster.Center) (SolveResponse, []sqlite.AssignmentRecord) {
	resp := SolveResponse{
		RunID:       sqlite.NewRunID(),
		Status:      solution.Status().String(),
		SolveMillis: solution.WallTime().Milliseconds(),
	}
	if !solution.Status().HasValues() {
		return resp, nil
	}

	objective, _ := solution.ObjectiveValue()
	resp.Objective = objective

	placements, _ := solution.Placements()
	ros := roster.NewRoster(persons)
	idx := report.NewPlacementIndex(placements)

	scores, avg := report.FriendScores(idx, ros, centers)
	resp.CenterScores = make(map[string]string, len(scores))
	for center, score := range scores {
		resp.CenterScores[center] = score.String()
	}
	resp.AverageScore = avg.String()

	var records []sqlite.AssignmentRecord
	for _, pl := range placements {
		resp.Placements = append(resp.Placements, PlacementDTO{
			Name:   pl.Person,
			Center: pl.Center,
			Crew:   pl.Crew,
		})
		record := sqlite.AssignmentRecord{
			RunID:  resp.RunID,
			Center: pl.Center,
			Crew:   pl.Crew,
			Name:   pl.Person,
			Role:   string(roster.RoleYouth),
		}
		if p, ok := ros.Lookup(pl.Person); ok {
			record.Role = string(p.Role)
			record.Gender = string(p.Gender)
			record.Year = string(p.Year)
			record.History = string(p.History)
		}
		records = append(records, record)
	}
	return resp, records
}

func (h *Handler) persistRun(ctx context.Context, resp SolveResponse, cfg assign.Config, persons []roster.Person, records []sqlite.AssignmentRecord) error {
	youthCount := 0
	for _, p := range persons {
		if p.IsYouth() {
			youthCount++
		}
	}
	cfgJSON, _ := json.Marshal(configDTO(cfg))
	run := sqlite.RunRecord{
		ID:          resp.RunID,
		CreatedAt:   time.Now(),
		Status:      resp.Status,
		Objective:   resp.Objective,
		YouthCount:  youthCount,
		ConfigJSON:  string(cfgJSON),
		SolveMillis: resp.SolveMillis,
	}
	return h.Store.SaveRun(ctx, run, records)
}

// =============================================================================
// RUN HISTORY
// =============================================================================

// ListRuns returns persisted runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, runDTO(run))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRun returns one run's metadata.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "run not found: " + id})
		return
	}
	writeJSON(w, http.StatusOK, runDTO(*run))
}

// GetRunAssignments returns one run's persisted assignments.
func (h *Handler) GetRunAssignments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "run not found: " + id})
		return
	}

	assignments, err := h.Store.ListAssignments(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, assignmentDTO(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// PRESETS
// =============================================================================

// ListPresets returns the named configuration presets.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets := assign.Presets()
	out := make(map[string]ConfigDTO, len(presets))
	for name, cfg := range presets {
		out[name] = configDTO(cfg)
	}
	writeJSON(w, http.StatusOK, out)
}
