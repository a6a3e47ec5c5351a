// Package taxonomy parses a tab-separated reference-id/lineage taxonomy
// table: one record per line, `<reference-id>\t<lineage>`, where the
// final `s__Genus_species_...` segment of lineage gives the species.
package taxonomy

import (
	"bufio"
	"io"
	"strings"

	"github.com/bioaodp/oligosig/internal/apperr"
)

// Record is one parsed taxonomy line.
type Record struct {
	ReferenceID string
	Lineage     string
	Species     string
}

// Table maps reference id to its taxonomy Record.
type Table map[string]Record

// Parse reads a taxonomy table from r.
func Parse(r io.Reader) (Table, error) {
	t := make(Table)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if text == "" {
			continue
		}
		fields := strings.SplitN(text, "\t", 2)
		if len(fields) != 2 {
			return nil, apperr.Newf(apperr.InvalidInput, "taxonomy: line %d: expected <id>\\t<lineage>", line)
		}
		t[fields[0]] = Record{
			ReferenceID: fields[0],
			Lineage:     fields[1],
			Species:     speciesOf(fields[1]),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// speciesOf extracts the s__Genus_species_... segment of a lineage
// string, stripping the s__ marker. If no such segment exists the full
// lineage is returned unchanged.
func speciesOf(lineage string) string {
	for _, segment := range strings.Split(lineage, ";") {
		segment = strings.TrimSpace(segment)
		if strings.HasPrefix(segment, "s__") {
			return strings.TrimPrefix(segment, "s__")
		}
	}
	return lineage
}

// Confirm reports whether a and b, looked up in t, share the same
// species.
func Confirm(t Table, a, b string) bool {
	ra, ok := t[a]
	if !ok {
		return false
	}
	rb, ok := t[b]
	if !ok {
		return false
	}
	return ra.Species == rb.Species
}
