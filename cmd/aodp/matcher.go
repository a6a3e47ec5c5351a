package main

import (
	"os"

	"github.com/bioaodp/oligosig/bio/fasta"
	"github.com/bioaodp/oligosig/internal/apperr"
	"github.com/bioaodp/oligosig/match"
	"github.com/bioaodp/oligosig/pipeline"
	"github.com/bioaodp/oligosig/source"
)

// runMatcher parses path as FASTA and classifies every record against
// the already-built index, one Result per query.
func runMatcher(src *source.Source, driver *pipeline.Driver, maxOligo int, path string) ([]match.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "opening match file %s", path)
	}
	defer f.Close()

	qsrc := source.New(source.Config{MinOligoSize: 1, MaxOligoSize: 1})
	qb := source.NewBuilder(qsrc)
	if err := fasta.Parse(f, path, qb); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "parsing match file %s", path)
	}
	if err := qb.Finish(); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "finishing match file %s", path)
	}

	m := match.New(src, driver.Container(), driver.Encoder(), maxOligo)
	results := make([]match.Result, 0, qsrc.NumSequences())
	for i := 0; i < qsrc.NumSequences(); i++ {
		seq := qsrc.Sequence(source.SequenceID(i))
		if len(seq.Fragments) == 0 {
			continue
		}
		frag := qsrc.Fragment(seq.Fragments[0])
		query := qsrc.Slice(frag.Range)
		results = append(results, m.Query(seq.Name, query))
	}
	return results, nil
}
