package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bioaodp/oligosig/bio/newick"
	"github.com/bioaodp/oligosig/bio/taxonomy"
	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/fold"
	"github.com/bioaodp/oligosig/format"
	"github.com/bioaodp/oligosig/internal/apperr"
	"github.com/bioaodp/oligosig/match"
	"github.com/bioaodp/oligosig/pipeline"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

func symbolsToString(syms []symbol.Symbol) string {
	var b strings.Builder
	b.Grow(len(syms))
	for _, s := range syms {
		c, _ := s.Byte()
		b.WriteByte(c)
	}
	return b.String()
}

// writeOutputs dispatches sigs, matchResults, and tree through every
// output flag the user selected, each to its own stream: stdout when
// --basename is unset, or base+suffix (one file per selected flag, or
// one per cluster when --clusters is also given) otherwise.
func writeOutputs(src *source.Source, driver *pipeline.Driver, sigs []format.Signature, matchResults []match.Result, tree *newick.Node, taxTable taxonomy.Table, engine *fold.Engine) error {
	enc := driver.Encoder()

	if *flagTab {
		if err := withSink(".tab", sigs, func(w io.Writer, batch []format.Signature) error {
			return format.Tab(w, src, enc, batch)
		}); err != nil {
			return err
		}
	}
	if *flagFASTA {
		if err := withSink(".fasta", sigs, func(w io.Writer, batch []format.Signature) error {
			return format.FASTA(w, src, enc, batch)
		}); err != nil {
			return err
		}
	}
	if *flagGFF {
		if err := withSink(".gff", sigs, func(w io.Writer, batch []format.Signature) error {
			return format.GFF(w, src, batch)
		}); err != nil {
			return err
		}
	}
	if *flagStrings {
		if err := withSink(".strings", sigs, writeStrings(src)); err != nil {
			return err
		}
	}
	if *flagPositions {
		if err := withSink(".positions", sigs, writePositions); err != nil {
			return err
		}
	}
	if *flagRanges {
		if err := withSink(".ranges", sigs, writeRanges); err != nil {
			return err
		}
	}
	if *flagLineage {
		if taxTable == nil {
			return apperr.New(apperr.InvalidOption, "--lineage requires --taxonomy")
		}
		if err := withSink(".lineage", sigs, writeLineage(src, enc, taxTable)); err != nil {
			return err
		}
	}
	if *flagFold {
		if engine == nil {
			return apperr.New(apperr.InvalidOption, "--fold requires --max-melting")
		}
		if err := withSink(".fold", sigs, writeFold(src, engine)); err != nil {
			return err
		}
	}

	if *flagNewickOut {
		w, closer, err := sink(".newick")
		if err != nil {
			return err
		}
		if tree != nil {
			writeNewick(w, tree)
			fmt.Fprintln(w, ";")
		}
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagNodeList {
		w, closer, err := sink(".node-list")
		if err != nil {
			return err
		}
		names := make([]string, 0, len(src.Targets))
		for name := range src.Targets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagClusterList {
		w, closer, err := sink(".cluster-list")
		if err != nil {
			return err
		}
		writeClusterList(w, src, enc)
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagClusterOligos {
		w, closer, err := sink(".cluster-oligos")
		if err != nil {
			return err
		}
		writeClusterOligos(w, src, sigs)
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagSequenceClusters {
		w, closer, err := sink(".sequence-clusters")
		if err != nil {
			return err
		}
		writeSequenceClusters(w, src, enc)
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagMetrics {
		w, closer, err := sink(".metrics")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "fragments\t%d\n", src.NumFragments())
		fmt.Fprintf(w, "sequences\t%d\n", src.NumSequences())
		fmt.Fprintf(w, "clusters\t%d\n", enc.NumClusters())
		fmt.Fprintf(w, "matches\t%d\n", len(driver.Matches()))
		fmt.Fprintf(w, "signatures\t%d\n", len(sigs))
		fmt.Fprintf(w, "excluded\t%d\n", len(src.Excluded))
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagSource {
		w, closer, err := sink(".source")
		if err != nil {
			return err
		}
		for i := 0; i < src.NumSequences(); i++ {
			seq := src.Sequence(source.SequenceID(i))
			var length uint64
			for _, fid := range seq.Fragments {
				length += src.Fragment(fid).Range.Size()
			}
			fmt.Fprintf(w, "%s\t%d\t%d\n", seq.Name, len(seq.Fragments), length)
		}
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagMatchOutput {
		if *flagMatchFile == "" {
			return apperr.New(apperr.InvalidOption, "--match-output requires --match")
		}
		w, closer, err := sink(".match")
		if err != nil {
			return err
		}
		for _, r := range matchResults {
			if len(r.Matches) == 0 {
				fmt.Fprintf(w, "%s\t-\t0.00%%\t0\t%d\t%d\t%d\n", r.QueryName, r.QueryLen, r.MinSetSize, r.MaxSetSize)
				continue
			}
			for _, b := range r.Matches {
				fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%d\t%d\t%d\t%d\n",
					r.QueryName, b.SourceName, b.MatchPercent, b.OverlapLen, r.QueryLen, r.MinSetSize, r.MaxSetSize)
			}
		}
		if err := closer(); err != nil {
			return err
		}
	}
	if *flagCladogram {
		w, closer, err := sink(".cladogram")
		if err != nil {
			return err
		}
		if err := format.Cladogram(w, enc, src.Targets); err != nil {
			return err
		}
		if err := closer(); err != nil {
			return err
		}
	}

	return nil
}

// sink opens the output stream for one non-cluster-split flag: stdout
// when --basename is unset, or the synthesized basename+suffix file.
func sink(suffix string) (io.Writer, func() error, error) {
	if *flagBasename == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	name := format.Basename(*flagBasename, suffix)
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, err, "creating output file %s", name)
	}
	return f, f.Close, nil
}

// withSink writes batch through write, either as a single stream or
// (when --basename and --clusters are both given) split into one file
// per cluster id.
func withSink(suffix string, sigs []format.Signature, write func(io.Writer, []format.Signature) error) error {
	if *flagBasename == "" || !*flagClusters {
		w, closer, err := sink(suffix)
		if err != nil {
			return err
		}
		if err := write(w, sigs); err != nil {
			return err
		}
		return closer()
	}

	byCluster := groupByCluster(sigs)
	ids := make([]int, 0, len(byCluster))
	for id := range byCluster {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		name := format.Basename(*flagBasename, fmt.Sprintf(".%d%s", id, suffix))
		f, err := os.Create(name)
		if err != nil {
			return apperr.Wrap(apperr.Internal, err, "creating output file %s", name)
		}
		if err := write(f, byCluster[id]); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return apperr.Wrap(apperr.Internal, err, "closing output file %s", name)
		}
	}
	return nil
}

func groupByCluster(sigs []format.Signature) map[int][]format.Signature {
	out := make(map[int][]format.Signature)
	for _, s := range sigs {
		out[s.ClusterID] = append(out[s.ClusterID], s)
	}
	return out
}

func writeStrings(src *source.Source) func(io.Writer, []format.Signature) error {
	return func(w io.Writer, batch []format.Signature) error {
		for _, s := range batch {
			if _, err := fmt.Fprintln(w, symbolsToString(format.Text(src, s))); err != nil {
				return err
			}
		}
		return nil
	}
}

func writePositions(w io.Writer, batch []format.Signature) error {
	for _, s := range batch {
		if _, err := fmt.Fprintf(w, "%d\t%d\n", s.ClusterID, s.Position); err != nil {
			return err
		}
	}
	return nil
}

func writeRanges(w io.Writer, batch []format.Signature) error {
	for _, s := range batch {
		start := s.Position - uint64(s.Depth)
		end := start + uint64(s.Depth) + uint64(s.Length)
		if _, err := fmt.Fprintf(w, "%d\t%d-%d\n", s.ClusterID, start, end); err != nil {
			return err
		}
	}
	return nil
}

func writeLineage(src *source.Source, enc *cluster.Encoder, taxTable taxonomy.Table) func(io.Writer, []format.Signature) error {
	return func(w io.Writer, batch []format.Signature) error {
		for _, s := range batch {
			for _, member := range enc.Members(cluster.ID(s.ClusterID)) {
				name := src.Sequence(member).Name
				rec, ok := taxTable[name]
				if !ok {
					continue
				}
				if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", s.ClusterID, name, rec.Lineage); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func writeFold(src *source.Source, engine *fold.Engine) func(io.Writer, []format.Signature) error {
	return func(w io.Writer, batch []format.Signature) error {
		for _, s := range batch {
			window := format.Text(src, s)
			res, err := engine.Fold(window)
			if err != nil {
				return err
			}
			if !res.Valid {
				continue
			}
			if _, err := fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.2f\n", s.ClusterID, res.DeltaG, res.DeltaH, res.DeltaS, res.MeltingC); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeClusterList(w io.Writer, src *source.Source, enc *cluster.Encoder) {
	for id := 0; id < enc.NumClusters(); id++ {
		members := enc.Members(cluster.ID(id))
		names := make([]string, len(members))
		for i, m := range members {
			names[i] = src.Sequence(m).Name
		}
		fmt.Fprintf(w, "%d\t%s\n", id, strings.Join(names, ","))
	}
}

func writeClusterOligos(w io.Writer, src *source.Source, sigs []format.Signature) {
	byCluster := groupByCluster(sigs)
	ids := make([]int, 0, len(byCluster))
	for id := range byCluster {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		oligos := make([]string, len(byCluster[id]))
		for i, s := range byCluster[id] {
			oligos[i] = symbolsToString(format.Text(src, s))
		}
		fmt.Fprintf(w, "%d\t%s\n", id, strings.Join(oligos, ","))
	}
}

func writeSequenceClusters(w io.Writer, src *source.Source, enc *cluster.Encoder) {
	memberOf := make(map[source.SequenceID][]int)
	for id := 0; id < enc.NumClusters(); id++ {
		for _, m := range enc.Members(cluster.ID(id)) {
			memberOf[m] = append(memberOf[m], id)
		}
	}
	for i := 0; i < src.NumSequences(); i++ {
		seq := src.Sequence(source.SequenceID(i))
		ids := memberOf[source.SequenceID(i)]
		parts := make([]string, len(ids))
		for j, id := range ids {
			parts[j] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(w, "%s\t%s\n", seq.Name, strings.Join(parts, ","))
	}
}

// writeNewick renders n back into Newick grammar, recursing into
// children before writing this node's own name and branch length.
func writeNewick(w io.Writer, n *newick.Node) {
	if len(n.Children) > 0 {
		fmt.Fprint(w, "(")
		for i, c := range n.Children {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			writeNewick(w, c)
		}
		fmt.Fprint(w, ")")
	}
	fmt.Fprint(w, n.Name)
	if n.Length != 0 {
		fmt.Fprintf(w, ":%g", n.Length)
	}
}
