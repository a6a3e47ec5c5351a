package testdiff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/internal/testdiff"
)

func TestUnifiedReportsChangedLine(t *testing.T) {
	want := "line1\nline2\nline3\n"
	got := "line1\nCHANGED\nline3\n"
	diff, err := testdiff.Unified("want.txt", "got.txt", want, got)
	require.NoError(t, err)
	assert.True(t, strings.Contains(diff, "CHANGED"))
}

func TestSummaryReportsNoEditsForIdenticalInput(t *testing.T) {
	assert.Equal(t, "0 insertions, 0 deletions", testdiff.Summary("same", "same"))
}
