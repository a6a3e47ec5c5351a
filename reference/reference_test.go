package reference_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/reference"
)

func TestStoreThenLookupRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confirm.db")
	c, err := reference.Open(path)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Store("ref1", 7, "Escherichia_coli"))

	species, ok, err := c.Lookup("ref1", 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Escherichia_coli", species)
}

func TestLookupMissReportsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confirm.db")
	c, err := reference.Open(path)
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Lookup("nope", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
