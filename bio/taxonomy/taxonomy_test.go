package taxonomy_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/bio/taxonomy"
)

func TestParseExtractsSpecies(t *testing.T) {
	in := "ref1\td__Bacteria;p__Firmicutes;s__Bacillus_subtilis\n" +
		"ref2\td__Bacteria;p__Firmicutes;s__Bacillus_subtilis\n" +
		"ref3\td__Bacteria;p__Proteobacteria;s__Escherichia_coli\n"
	table, err := taxonomy.Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Bacillus_subtilis", table["ref1"].Species)
	assert.True(t, taxonomy.Confirm(table, "ref1", "ref2"))
	assert.False(t, taxonomy.Confirm(table, "ref1", "ref3"))
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := taxonomy.Parse(strings.NewReader("noTabHere\n"))
	assert.Error(t, err)
}

func ExampleParse() {
	in := "ref1\td__Bacteria;s__Escherichia_coli\n"
	table, _ := taxonomy.Parse(strings.NewReader(in))
	fmt.Println(table["ref1"].Species)
	// Output: Escherichia_coli
}
