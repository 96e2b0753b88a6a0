/*
writer.go - CSV export of a solved assignment

PURPOSE:
  Writes the assignment in the same shape downstream spreadsheets expect:
  one row per participant with Center, Crew, Name, Role, Gender, Year,
  History. Youth rows come from the solved placements; adult rows come from
  the fixed crew rosters and leave the attribute columns blank.

SEE ALSO:
  - summary.go: The human-readable counterpart
*/
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/warp/crew-engine/roster"
)

// WriteAssignmentsCSV exports the solved assignment, crews in model order,
// youth before adults within each crew.
func WriteAssignmentsCSV(w io.Writer, idx *PlacementIndex, ros *roster.Roster, centers []roster.Center) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Center", "Crew", "Name", "Role", "Gender", "Year", "History"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, center := range centers {
		for _, crew := range center.Crews {
			for _, p := range ros.Persons {
				if !p.IsYouth() {
					continue
				}
				if idx.CenterOf(p.Name) == center.Name && idx.CrewOf(p.Name) == crew.Name {
					row := []string{center.Name, crew.Name, p.Name, string(roster.RoleYouth),
						string(p.Gender), string(p.Year), string(p.History)}
					if err := cw.Write(row); err != nil {
						return fmt.Errorf("failed to write youth row: %w", err)
					}
				}
			}
			for _, adult := range crew.Adults {
				row := []string{center.Name, crew.Name, adult, "Adult", "", "", ""}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write adult row: %w", err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
