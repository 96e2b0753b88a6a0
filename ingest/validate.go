/*
validate.go - Cross-reference checks over the loaded roster

PURPOSE:
  Runs after loading and before model construction, so a bad intake file
  fails with every problem listed at once instead of one fatal error per
  run:

  ValidateParents:
    Every named parent must appear in some crew's adult roster. A miss here
    would otherwise surface later as a fatal integrity error during model
    construction.

  ValidateFriends:
    Every friend choice must resolve to a roster participant. The model
    itself simply ignores unresolved choices; this check exists so typos are
    fixed rather than silently dropping a kid's first choice.

SEE ALSO:
  - csv.go: Produces the records checked here
  - assign/constraints.go: The fatal per-run counterpart for parents
*/
package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/warp/crew-engine/roster"
)

var (
	// ErrMissingParents is returned when parent references point outside
	// every crew roster.
	ErrMissingParents = errors.New("parents missing from adult crews")

	// ErrUnresolvedFriends is returned when friend choices name nobody on
	// the roster.
	ErrUnresolvedFriends = errors.New("unresolved friend choices")
)

// ValidateParents checks that every named parent is on some crew's roster.
// The returned error lists all misses.
func ValidateParents(persons []roster.Person, centers []roster.Center) error {
	adults := roster.NewAdultIndex(centers)

	var missing []string
	for _, p := range persons {
		for _, parent := range p.Parents {
			if !adults.Contains(parent) {
				missing = append(missing, fmt.Sprintf("%s's parent %s", p.Name, parent))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingParents, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateFriends checks that every friend choice names a roster
// participant. The returned error lists all misses.
func ValidateFriends(persons []roster.Person) error {
	ros := roster.NewRoster(persons)

	var missing []string
	for _, p := range persons {
		for _, choice := range p.FriendChoices() {
			if !ros.Contains(choice.Name) {
				missing = append(missing, fmt.Sprintf("%s's friend %s", p.Name, choice.Name))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnresolvedFriends, strings.Join(missing, ", "))
	}
	return nil
}
