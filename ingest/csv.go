/*
csv.go - Readers for the cleaned intake CSV files

PURPOSE:
  Loads the three cleaned files the pipeline consumes and turns them into
  roster records:

  crews_{year}.csv        name, Center, Crew, role
    Adult and Young Adult rows define the centers, crews, and their fixed
    rosters. Youth rows (historical assignments) are skipped.

  buddies_{year}.csv      name, history, gender, year, first_choice,
                          second_choice, third_choice, siblings, parent_name
    One row per participant. siblings and parent_name are pipe-separated
    multi-values; "None" and "" both mean empty. Friend choices that are not
    exact roster names are run through the short-form lookup ("Smith",
    "Smith, J") built from the roster itself.

  historical_crews.csv    name, crew_year, is_adult
    Prior-cycle pairings. Grouping by crew_year yields each youth's past
    leaders.

  Column order is irrelevant; headers are matched by name. All name fields
  are normalized on the way in.

ERROR HANDLING:
  Structural problems (missing file, missing column, ragged row) fail the
  load with a wrapped error. Semantic problems (missing parents, unresolved
  friends) are left to validate.go so the caller sees all of them at once.

SEE ALSO:
  - names.go: Normalization and short-form lookup
  - validate.go: Cross-reference checks
*/
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/warp/crew-engine/roster"
)

// =============================================================================
// CSV PLUMBING
// =============================================================================

// table is a parsed CSV with by-header field access.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader) (*table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}
	t := &table{columns: make(map[string]int), rows: records[1:]}
	for i, h := range records[0] {
		t.columns[strings.TrimSpace(h)] = i
	}
	return t, nil
}

func readTableFile(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := readTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *table) require(cols ...string) error {
	for _, c := range cols {
		if _, ok := t.columns[c]; !ok {
			return fmt.Errorf("missing required column %q", c)
		}
	}
	return nil
}

// field returns the named column of a row, "" when the column is absent.
func (t *table) field(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// multiValue splits a pipe-separated field; "None" and "" mean empty.
func multiValue(raw string) []string {
	if raw == "" || raw == "None" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if name := Normalize(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// =============================================================================
// CREWS FILE -> CENTERS
// =============================================================================

// LoadCenters builds the center/crew structure from adult and young-adult
// rows of a crews file, preserving file order for centers and crews.
func LoadCenters(path string) ([]roster.Center, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("name", "Center", "Crew", "role"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var centers []roster.Center
	centerIdx := make(map[string]int)
	crewIdx := make(map[string]map[string]int)

	for _, row := range t.rows {
		if roster.Role(t.field(row, "role")) == roster.RoleYouth {
			continue
		}
		name := Normalize(t.field(row, "name"))
		centerName := t.field(row, "Center")
		crewName := t.field(row, "Crew")
		if name == "" || centerName == "" || crewName == "" {
			continue
		}

		ci, ok := centerIdx[centerName]
		if !ok {
			ci = len(centers)
			centerIdx[centerName] = ci
			crewIdx[centerName] = make(map[string]int)
			centers = append(centers, roster.Center{Name: centerName})
		}
		ki, ok := crewIdx[centerName][crewName]
		if !ok {
			ki = len(centers[ci].Crews)
			crewIdx[centerName][crewName] = ki
			centers[ci].Crews = append(centers[ci].Crews, roster.Crew{Name: crewName})
		}
		centers[ci].Crews[ki].Adults = append(centers[ci].Crews[ki].Adults, name)
	}
	return centers, nil
}

// =============================================================================
// BUDDIES FILE -> PERSONS
// =============================================================================

// LoadPersons reads the participant roster. Friend choices that are not
// exact roster names are resolved through the short-form lookup; whatever
// still fails to resolve is kept verbatim for validate.go to report.
func LoadPersons(path string) ([]roster.Person, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("name", "history", "gender", "year"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var persons []roster.Person
	for _, row := range t.rows {
		name := Normalize(t.field(row, "name"))
		if name == "" {
			continue
		}
		role := roster.Role(t.field(row, "role"))
		if role == "" {
			role = roster.RoleYouth
		}
		persons = append(persons, roster.Person{
			Name:         name,
			Role:         role,
			Year:         roster.Year(t.field(row, "year")),
			Gender:       roster.Gender(t.field(row, "gender")),
			History:      roster.History(strings.TrimSuffix(t.field(row, "history"), "*")),
			Parents:      multiValue(t.field(row, "parent_name")),
			Siblings:     multiValue(t.field(row, "siblings")),
			FirstChoice:  t.field(row, "first_choice"),
			SecondChoice: t.field(row, "second_choice"),
			ThirdChoice:  t.field(row, "third_choice"),
		})
	}

	resolveFriendChoices(persons)
	return persons, nil
}

// resolveFriendChoices maps short-form friend references to full roster
// names in place.
func resolveFriendChoices(persons []roster.Person) {
	full := make([]string, len(persons))
	known := make(map[string]bool, len(persons))
	for i, p := range persons {
		full[i] = p.Name
		known[p.Name] = true
	}
	lookup := NewLookup(full)

	resolve := func(raw string) string {
		if raw == "" {
			return ""
		}
		if name := Normalize(raw); known[name] {
			return name
		}
		if name := lookup.Resolve(raw); name != "" {
			return name
		}
		return Normalize(raw)
	}

	for i := range persons {
		persons[i].FirstChoice = resolve(persons[i].FirstChoice)
		persons[i].SecondChoice = resolve(persons[i].SecondChoice)
		persons[i].ThirdChoice = resolve(persons[i].ThirdChoice)
	}
}

// =============================================================================
// HISTORICAL FILE -> PAST LEADERS
// =============================================================================

// LoadPastLeaders derives each youth's past leaders from prior-cycle crew
// pairings: every adult who shared a crew_year with the youth.
func LoadPastLeaders(path string) (map[string][]string, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	if err := t.require("name", "crew_year", "is_adult"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	adultsByCrew := make(map[string][]string)
	type membership struct{ name, crewYear string }
	var youthRows []membership

	for _, row := range t.rows {
		name := Normalize(t.field(row, "name"))
		crewYear := t.field(row, "crew_year")
		if name == "" || crewYear == "" {
			continue
		}
		if strings.EqualFold(t.field(row, "is_adult"), "true") {
			adultsByCrew[crewYear] = append(adultsByCrew[crewYear], name)
		} else {
			youthRows = append(youthRows, membership{name, crewYear})
		}
	}

	leaders := make(map[string][]string)
	for _, m := range youthRows {
		leaders[m.name] = append(leaders[m.name], adultsByCrew[m.crewYear]...)
	}
	return leaders, nil
}

// ApplyPastLeaders attaches historical leaders to the matching persons.
func ApplyPastLeaders(persons []roster.Person, leaders map[string][]string) {
	for i := range persons {
		if past, ok := leaders[persons[i].Name]; ok {
			persons[i].PastLeaders = past
		}
	}
}
