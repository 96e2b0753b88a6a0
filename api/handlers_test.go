/*
handlers_test.go - HTTP layer over a real in-memory store and real solves

Tests for:
- A full solve round trip and the resulting run history
- Infeasible solves returning 200 with no placements
- Input and preset validation
- 404s for unknown runs
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/crew-engine/api"
	"github.com/warp/crew-engine/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	server := httptest.NewServer(api.NewRouter(api.NewHandler(store)))
	t.Cleanup(server.Close)
	return server
}

func postSolve(t *testing.T, server *httptest.Server, req api.SolveRequest) (*http.Response, []byte) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/solve", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func getJSON(t *testing.T, server *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// smallRequest is 6 youths over one two-crew center, sized to stay feasible.
func smallRequest() api.SolveRequest {
	genders := []string{"F", "M"}
	years := []string{"Fr", "So", "Jr", "Sr"}

	var persons []api.PersonDTO
	for i := 0; i < 6; i++ {
		persons = append(persons, api.PersonDTO{
			Name:    fmt.Sprintf("Youth %02d", i),
			Year:    years[i%len(years)],
			Gender:  genders[i%2],
			History: []string{"V", "N"}[i%2],
		})
	}
	return api.SolveRequest{
		Config: &api.ConfigDTO{
			MinCrewSize: 2, MaxCrewSize: 4,
			FriendWeight: 2, GenderWeight: 1, YearWeight: 1, HistoryWeight: 1,
		},
		TimeLimitSeconds: 30,
		Persons:          persons,
		Centers: []api.CenterDTO{{
			Name: "Fayette",
			Crews: []api.CrewDTO{
				{Name: "F01", Adults: []string{}},
				{Name: "F02", Adults: []string{}},
			},
		}},
	}
}

// =============================================================================
// SOLVE
// =============================================================================

func TestSolveCrews_FullRoundTrip(t *testing.T) {
	// GIVEN: a feasible instance
	server := newTestServer(t)

	// WHEN: solving
	resp, body := postSolve(t, server, smallRequest())

	// THEN: 200 with a placement for every youth and friendship scores
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out api.SolveResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.RunID)
	assert.Contains(t, []string{"OPTIMAL", "FEASIBLE"}, out.Status)
	assert.Len(t, out.Placements, 6)
	assert.Contains(t, out.CenterScores, "Fayette")
	assert.NotEmpty(t, out.AverageScore)

	// AND: the run was persisted with its assignments
	var run api.RunDTO
	getResp := getJSON(t, server, "/api/runs/"+out.RunID, &run)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Equal(t, out.Status, run.Status)
	assert.Equal(t, 6, run.YouthCount)

	var assignments []api.AssignmentDTO
	getJSON(t, server, "/api/runs/"+out.RunID+"/assignments", &assignments)
	assert.Len(t, assignments, 6)
}

func TestSolveCrews_InfeasibleIsNotAnHTTPError(t *testing.T) {
	// GIVEN: minimum sizes no roster of 6 can satisfy
	server := newTestServer(t)
	req := smallRequest()
	req.Config.MinCrewSize = 5
	req.Config.MaxCrewSize = 7

	// WHEN: solving
	resp, body := postSolve(t, server, req)

	// THEN: 200, status INFEASIBLE, no placements
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out api.SolveResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "INFEASIBLE", out.Status)
	assert.Empty(t, out.Placements)

	// AND: the run still lands in history
	var run api.RunDTO
	getResp := getJSON(t, server, "/api/runs/"+out.RunID, &run)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestSolveCrews_MissingInput(t *testing.T) {
	server := newTestServer(t)
	req := smallRequest()
	req.Persons = nil

	resp, _ := postSolve(t, server, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolveCrews_InvalidConfig(t *testing.T) {
	server := newTestServer(t)
	req := smallRequest()
	req.Config.MaxCrewSize = 1 // below min

	resp, _ := postSolve(t, server, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolveCrews_UnknownPreset(t *testing.T) {
	server := newTestServer(t)
	req := smallRequest()
	req.Config = nil
	req.Preset = "nope"

	resp, _ := postSolve(t, server, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolveCrews_IntegrityFailureIs400(t *testing.T) {
	// A parent absent from every roster is the caller's data to fix.
	server := newTestServer(t)
	req := smallRequest()
	req.Persons[0].Parents = []string{"Ghost Parent"}

	resp, body := postSolve(t, server, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "Ghost Parent")
}

// =============================================================================
// RUN HISTORY
// =============================================================================

func TestListRuns_EmptyStore(t *testing.T) {
	server := newTestServer(t)

	var runs []api.RunDTO
	resp := getJSON(t, server, "/api/runs", &runs)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, runs)
}

func TestGetRun_NotFound(t *testing.T) {
	server := newTestServer(t)

	resp := getJSON(t, server, "/api/runs/no-such-run", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getJSON(t, server, "/api/runs/no-such-run/assignments", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// PRESETS
// =============================================================================

func TestListPresets(t *testing.T) {
	server := newTestServer(t)

	var presets map[string]api.ConfigDTO
	resp := getJSON(t, server, "/api/presets", &presets)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Contains(t, presets, "default")
	require.Contains(t, presets, "high_friend_weight")
	require.Contains(t, presets, "high_diversity")
	assert.Equal(t, 5, presets["default"].MinCrewSize)
	assert.Equal(t, 4, presets["high_friend_weight"].FriendWeight)
}
