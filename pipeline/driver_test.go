package pipeline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioaodp/oligosig/bio/fasta"
	"github.com/bioaodp/oligosig/internal/applog"
	"github.com/bioaodp/oligosig/pipeline"
	"github.com/bioaodp/oligosig/source"
)

func TestRunProducesClustersAndMatches(t *testing.T) {
	in := ">A\nACGTACGTACGTACGTACGTACGT\n>B\nTTTTTTTTTTTTTTTTTTTTTTTT\n"
	src := source.New(source.Config{MinOligoSize: 8, MaxOligoSize: 16})
	b := source.NewBuilder(src)
	require.NoError(t, fasta.Parse(strings.NewReader(in), "t.fa", b))
	require.NoError(t, b.Finish())

	d := pipeline.New(src, 8, pipeline.Config{Workers: 2}, applog.Default("pipeline"))
	require.NoError(t, d.Run())

	assert.Greater(t, d.Encoder().NumClusters(), 0)
	assert.NotEmpty(t, d.Matches())
}

func TestDefaultWorkersIsAtLeastOne(t *testing.T) {
	assert.GreaterOrEqual(t, pipeline.DefaultWorkers(), 1)
}
