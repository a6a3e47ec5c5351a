// Package format renders collected signature matches into output
// formats: tab-separated, FASTA, GFF, and a cladogram text view, plus
// the --basename/--clusters file-name synthesis that composes with them.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
	"github.com/bioaodp/oligosig/trie"
)

// Signature is one reportable substring: a cluster's match record
// expanded to one concrete length within its admissible range.
type Signature struct {
	ClusterID int
	Position  uint64
	Depth     int
	Length    int
}

// Expand turns each trie.Match into every Signature it covers — one per
// admissible length l in [max(minOligo-depth,1), length].
func Expand(matches []trie.Match, minOligo int) []Signature {
	var out []Signature
	for _, m := range matches {
		lo := minOligo - m.Depth
		if lo < 1 {
			lo = 1
		}
		for l := lo; l <= m.Length; l++ {
			out = append(out, Signature{ClusterID: m.ClusterID, Position: m.Position, Depth: m.Depth, Length: l})
		}
	}
	return out
}

// Text returns the literal substring a Signature names.
func Text(src *source.Source, sig Signature) []symbol.Symbol {
	start := sig.Position - uint64(sig.Depth)
	end := start + uint64(sig.Depth) + uint64(sig.Length)
	out := make([]symbol.Symbol, end-start)
	for i := range out {
		out[i] = src.At(start + uint64(i))
	}
	return out
}

func symbolsToString(syms []symbol.Symbol) string {
	var b strings.Builder
	b.Grow(len(syms))
	for _, s := range syms {
		c, _ := s.Byte()
		b.WriteByte(c)
	}
	return b.String()
}

// Tab writes the tab-separated format: cluster id, target names, position,
// length, sequence.
func Tab(w io.Writer, src *source.Source, enc *cluster.Encoder, sigs []Signature) error {
	for _, s := range sigs {
		members := enc.Members(cluster.ID(s.ClusterID))
		names := memberNames(src, members)
		_, err := fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", s.ClusterID, strings.Join(names, ","), s.Position, s.Length, symbolsToString(Text(src, s)))
		if err != nil {
			return err
		}
	}
	return nil
}

// FASTA writes one record per signature. The description is passed
// through go-wordwrap at 70 columns and the wrapped lines are joined back
// with spaces, so each header stays on a single line; the sequence body
// is written unwrapped.
func FASTA(w io.Writer, src *source.Source, enc *cluster.Encoder, sigs []Signature) error {
	for i, s := range sigs {
		members := enc.Members(cluster.ID(s.ClusterID))
		desc := fmt.Sprintf("cluster=%d targets=%s", s.ClusterID, strings.Join(memberNames(src, members), ","))
		wrapped := wordwrap.WrapString(desc, 70)
		if _, err := fmt.Fprintf(w, ">sig%d %s\n%s\n", i, strings.ReplaceAll(wrapped, "\n", " "), symbolsToString(Text(src, s))); err != nil {
			return err
		}
	}
	return nil
}

// GFF writes the minimal nine-column GFF3 feature lines for each
// signature, one fragment-relative feature per line.
func GFF(w io.Writer, src *source.Source, sigs []Signature) error {
	if _, err := fmt.Fprintln(w, "##gff-version 3"); err != nil {
		return err
	}
	for _, s := range sigs {
		seqName, fragLo := sourceNameAt(src, s.Position)
		start := s.Position - uint64(s.Depth) - fragLo + 1 // GFF is 1-based
		end := start + uint64(s.Depth) + uint64(s.Length) - 1
		attrs := "ID=sig" + strconv.Itoa(s.ClusterID) + ";cluster=" + strconv.Itoa(s.ClusterID)
		if _, err := fmt.Fprintf(w, "%s\tsig\tsignature\t%d\t%d\t.\t+\t.\t%s\n", seqName, start, end, attrs); err != nil {
			return err
		}
	}
	return nil
}

// Cladogram writes one plain-text line per target, "name (n members)",
// in map iteration order, without sorting or tree indentation; a line
// longer than 70 columns is word-wrapped onto following lines.
func Cladogram(w io.Writer, enc *cluster.Encoder, targets map[string]source.Target) error {
	for name, t := range targets {
		line := fmt.Sprintf("%s (%d members)", name, len(t.Members))
		if _, err := fmt.Fprintln(w, wordwrap.WrapString(line, 70)); err != nil {
			return err
		}
	}
	return nil
}

func memberNames(src *source.Source, members []source.SequenceID) []string {
	names := make([]string, len(members))
	for i, id := range members {
		names[i] = src.Sequence(id).Name
	}
	return names
}

// sourceNameAt finds which sequence's fragment contains buffer position
// p, for GFF's seqid column, and returns that fragment's start position.
func sourceNameAt(src *source.Source, p uint64) (string, uint64) {
	for i := 0; i < src.NumSequences(); i++ {
		seq := src.Sequence(source.SequenceID(i))
		for _, fid := range seq.Fragments {
			f := src.Fragment(fid)
			if f.Range.Contains(p) {
				return seq.Name, f.Range.Lo
			}
		}
	}
	return "-", 0
}

// Basename synthesizes an output file name from base and suffix for the
// --basename flag (mutually exclusive with naming the output files
// directly).
func Basename(base, suffix string) string {
	if strings.HasSuffix(base, suffix) {
		return base
	}
	return base + suffix
}
