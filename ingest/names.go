/*
names.go - Name normalization and short-form lookup heuristics

PURPOSE:
  Intake forms are hand-typed. The same person shows up as "smith", "Smith",
  "Smith, J" or "Jane  Smith". Two tools repair that:

  Normalize:
    Collapses whitespace, trims, and title-cases, so "jane  smith " and
    "Jane Smith" compare equal.

  Lookup:
    Maps short forms to full roster names. For every full name it indexes
    the bare last name and the "Last, F" form. Ambiguous last names keep the
    last writer; the roster validation step catches anything that still does
    not resolve.

SEE ALSO:
  - csv.go: Applies the lookup to friend choices while loading
  - validate.go: Flags choices that remain unresolved
*/
package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize collapses internal whitespace, trims, and title-cases a name.
func Normalize(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		fields[i] = titleCase(f)
	}
	return strings.Join(fields, " ")
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	lower := strings.ToLower(word)
	// First rune, not first byte: names are not all ASCII.
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// Lookup resolves short name forms to full names.
type Lookup struct {
	byShortForm map[string]string
}

// NewLookup indexes every full name under its last name and "Last, F" form.
func NewLookup(fullNames []string) *Lookup {
	l := &Lookup{byShortForm: make(map[string]string, len(fullNames)*2)}
	for _, full := range fullNames {
		parts := strings.Fields(full)
		if len(parts) < 2 {
			continue
		}
		first, last := parts[0], parts[len(parts)-1]
		l.byShortForm[last] = full
		l.byShortForm[last+", "+first[:1]] = full
	}
	return l
}

// Resolve maps a raw reference to a full name, or "" when unknown.
func (l *Lookup) Resolve(raw string) string {
	return l.byShortForm[Normalize(raw)]
}
