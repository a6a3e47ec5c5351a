package fasta_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/bio/fasta"
	"github.com/bioaodp/oligosig/source"
)

func TestParseRegistersHeaderTokenAsName(t *testing.T) {
	in := ">seq1 some description\nACGT\nNNAC\n>seq2\nACGTACGT\n"
	src := source.New(source.Config{MinOligoSize: 4, MaxOligoSize: 32})
	b := source.NewBuilder(src)
	require.NoError(t, fasta.Parse(strings.NewReader(in), "test.fa", b))
	require.NoError(t, b.Finish())

	assert.Equal(t, 2, src.NumSequences())
	id, ok := src.SequenceByName("seq1")
	require.True(t, ok)
	assert.Equal(t, "seq1", src.Sequence(id).Name)
}

func TestParseRejectsDataBeforeHeader(t *testing.T) {
	in := "ACGT\n>seq1\nACGT\n"
	src := source.New(source.Config{MinOligoSize: 4, MaxOligoSize: 32})
	b := source.NewBuilder(src)
	assert.Error(t, fasta.Parse(strings.NewReader(in), "test.fa", b))
}

func TestParseRejectsInvalidSymbol(t *testing.T) {
	in := ">seq1\nACGTX\n"
	src := source.New(source.Config{MinOligoSize: 4, MaxOligoSize: 32})
	b := source.NewBuilder(src)
	assert.Error(t, fasta.Parse(strings.NewReader(in), "test.fa", b))
}

func ExampleParse() {
	in := ">demo\nACGTACGT\n"
	src := source.New(source.Config{MinOligoSize: 4, MaxOligoSize: 32})
	b := source.NewBuilder(src)
	_ = fasta.Parse(strings.NewReader(in), "demo.fa", b)
	_ = b.Finish()
	fmt.Println(src.NumSequences())
	// Output: 1
}
