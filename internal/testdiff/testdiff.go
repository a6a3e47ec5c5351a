// Package testdiff renders unified diffs for golden-file test failures
// with github.com/pmezard/go-difflib, and summarizes a difference with
// github.com/sergi/go-diff's character-level diff.
package testdiff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Unified returns a unified-diff string between got and want, labeled
// with the given file names.
func Unified(wantName, gotName, want, got string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: wantName,
		ToFile:   gotName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// Summary reports a short human-readable count of the inserted and
// deleted chunks in go-diff's character-level diff of want and got, for
// test failure messages that don't need the full diff body.
func Summary(want, got string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	adds, dels := 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			adds++
		case diffmatchpatch.DiffDelete:
			dels++
		}
	}
	return fmt.Sprintf("%d insertions, %d deletions", adds, dels)
}
