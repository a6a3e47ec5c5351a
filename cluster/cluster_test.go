package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/source"
)

func set(ids ...source.SequenceID) map[source.SequenceID]struct{} {
	m := make(map[source.SequenceID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func TestFinalizeIsDeterministicAcrossRegistrationOrder(t *testing.T) {
	a := cluster.NewEncoder()
	a.Register(set(3, 1))
	a.Register(set(2))
	lookupA := a.Finalize()

	b := cluster.NewEncoder()
	b.Register(set(2))
	b.Register(set(1, 3))
	lookupB := b.Finalize()

	idA, ok := lookupA(set(1, 3))
	require.True(t, ok)
	idB, ok := lookupB(set(3, 1))
	require.True(t, ok)
	assert.Equal(t, idA, idB)
}

func TestDistinctSetsGetDistinctIDs(t *testing.T) {
	e := cluster.NewEncoder()
	e.Register(set(1))
	e.Register(set(1, 2))
	lookup := e.Finalize()

	id1, ok := lookup(set(1))
	require.True(t, ok)
	id2, ok := lookup(set(1, 2))
	require.True(t, ok)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, e.NumClusters())
}

func TestUnregisteredSetMisses(t *testing.T) {
	e := cluster.NewEncoder()
	e.Register(set(1))
	lookup := e.Finalize()
	_, ok := lookup(set(9))
	assert.False(t, ok)
}
