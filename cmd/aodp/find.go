package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/bioaodp/oligosig/checks"
	"github.com/bioaodp/oligosig/cluster"
	"github.com/bioaodp/oligosig/internal/apperr"
	"github.com/bioaodp/oligosig/pipeline"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

// runFind is the --find diagnostic: given a literal oligo string, it
// reports every cluster the trie actually assigned it to, without
// running the full Matcher pipeline. An unambiguous query routes to its
// single owning slice via the prefix index; an ambiguous or
// shorter-than-4 query is swept against every slice instead.
func runFind(w io.Writer, src *source.Source, driver *pipeline.Driver, literal string) error {
	query, err := decodeLiteral(literal)
	if err != nil {
		return err
	}
	enc := driver.Encoder()
	container := driver.Container()

	if len(query) >= 4 && checks.IsUnambiguous(query) {
		prefix, ok := symbol.PackPrefix4(query[0], query[1], query[2], query[3])
		if !ok {
			return apperr.Newf(apperr.InvalidOption, "--find=%q: could not pack prefix", literal)
		}
		slot, known := container.Index().Lookup(prefix)
		slices := container.Slices()
		if !known || slot >= len(slices) || slices[slot] == nil {
			fmt.Fprintf(w, "%s\tno match\t0\n", literal)
			return nil
		}
		sl := slices[slot]
		node, consumed := sl.Find(src, query)
		measured := sl.Measure(src, query)
		if consumed < len(query) {
			fmt.Fprintf(w, "%s\tpartial\t%d (measured %d)\n", literal, consumed, measured)
			return nil
		}
		if id := sl.ClusterOf(node); id >= 0 {
			printClusterMembers(w, literal, src, enc, id)
			return nil
		}
		fmt.Fprintf(w, "%s\tno cluster assigned\t%d\n", literal, consumed)
		return nil
	}

	var ids []int
	seen := make(map[int]bool)
	for _, sl := range container.Slices() {
		if sl == nil {
			continue
		}
		for _, node := range sl.FindAmbiguous(src, query) {
			if id := sl.ClusterOf(node); id >= 0 && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		fmt.Fprintf(w, "%s\tno match\n", literal)
		return nil
	}
	sort.Ints(ids)
	for _, id := range ids {
		printClusterMembers(w, literal, src, enc, id)
	}
	return nil
}

func printClusterMembers(w io.Writer, literal string, src *source.Source, enc *cluster.Encoder, id int) {
	members := enc.Members(cluster.ID(id))
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = src.Sequence(m).Name
	}
	fmt.Fprintf(w, "%s\t%d\t%s\n", literal, id, joinNames(names))
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += "," + n
	}
	return out
}

func decodeLiteral(literal string) ([]symbol.Symbol, error) {
	out := make([]symbol.Symbol, len(literal))
	for i := 0; i < len(literal); i++ {
		sym, ok := symbol.FromByte(literal[i])
		if !ok {
			return nil, apperr.Newf(apperr.InvalidOption, "--find=%q: invalid symbol %q at offset %d", literal, literal[i], i)
		}
		out[i] = sym
	}
	return out, nil
}
