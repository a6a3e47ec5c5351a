package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/bio/fasta"
	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/format"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/trie"
)

func buildSrc(t *testing.T) *source.Source {
	t.Helper()
	in := ">A\nACGTACGTACGT\n>B\nTTTTTTTTTTTT\n"
	src := source.New(source.Config{MinOligoSize: 4, MaxOligoSize: 32})
	b := source.NewBuilder(src)
	require.NoError(t, fasta.Parse(strings.NewReader(in), "t.fa", b))
	require.NoError(t, b.Finish())
	return src
}

func TestExpandCoversAdmissibleLengths(t *testing.T) {
	matches := []trie.Match{{ClusterID: 0, Position: 10, Depth: 4, Length: 3}}
	sigs := format.Expand(matches, 6)
	require.Len(t, sigs, 2)
	assert.Equal(t, 2, sigs[0].Length)
}

func TestTabWritesOneLinePerSignature(t *testing.T) {
	src := buildSrc(t)
	enc := cluster.NewEncoder()
	enc.Register(map[source.SequenceID]struct{}{0: {}})
	lookup := enc.Finalize()
	id, ok := lookup(map[source.SequenceID]struct{}{0: {}})
	require.True(t, ok)

	sigs := []format.Signature{{ClusterID: id, Position: 4, Depth: 0, Length: 4}}
	var buf bytes.Buffer
	require.NoError(t, format.Tab(&buf, src, enc, sigs))
	assert.Contains(t, buf.String(), "A")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestBasenameAppendsSuffixOnce(t *testing.T) {
	assert.Equal(t, "out.fasta", format.Basename("out", ".fasta"))
	assert.Equal(t, "out.fasta", format.Basename("out.fasta", ".fasta"))
}
