package newick_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/bio/newick"
)

func TestParseSimpleTopology(t *testing.T) {
	root, err := newick.Parse("(A:1,(B:1,C:1):2)Root;")
	require.NoError(t, err)
	assert.Equal(t, "Root", root.Name)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, root.Leaves())
}

func TestParseGeneratesInternalNames(t *testing.T) {
	root, err := newick.Parse("(A:1,(B:1,C:1):2);")
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Node1", root.Name)
	assert.Equal(t, "Node2", root.Children[1].Name)
}

func TestParseRejectsUnterminatedSubtree(t *testing.T) {
	_, err := newick.Parse("(A:1,(B:1,C:1):2")
	assert.Error(t, err)
}

func ExampleParse() {
	root, _ := newick.Parse("(A:1,B:1)Root;")
	fmt.Println(root.Name, len(root.Children))
	// Output: Root 2
}
