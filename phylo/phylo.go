// Package phylo turns a parsed Newick tree into source.Target groupings
// (one per sequence, plus one per non-singleton clade) and applies the
// outgroup and isolation-list filters; both erase targets, never
// sequences.
package phylo

import (
	"bufio"
	"io"
	"strings"

	"github.com/bioaodp/oligosig/bio/newick"
	"github.com/bioaodp/oligosig/internal/apperr"
	"github.com/bioaodp/oligosig/source"
)

// BuildTargets registers one singleton Target per sequence already known
// to src, plus one Target per non-singleton clade of root whose leaves
// are all present in src. Leaves not present in src are silently
// ignored; sequences absent from the tree entirely already got their
// singleton target and need nothing further.
func BuildTargets(src *source.Source, root *newick.Node) {
	for i := 0; i < src.NumSequences(); i++ {
		seq := src.Sequence(source.SequenceID(i))
		src.Targets[seq.Name] = source.Target{Name: seq.Name, Members: []source.SequenceID{source.SequenceID(i)}}
	}
	if root == nil {
		return
	}
	registerClade(src, root)
}

func registerClade(src *source.Source, n *newick.Node) []source.SequenceID {
	if len(n.Children) == 0 {
		if id, ok := src.SequenceByName(n.Name); ok {
			return []source.SequenceID{id}
		}
		return nil
	}

	var members []source.SequenceID
	for _, c := range n.Children {
		members = append(members, registerClade(src, c)...)
	}
	if len(members) > 1 {
		src.Targets[n.Name] = source.Target{Name: n.Name, Members: members}
	}
	return members
}

// ReadList reads one substring per line from r — the format shared by
// both the outgroup and isolation lists.
func ReadList(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

// FilterOutgroup removes from src.Targets any target whose name contains
// one of patterns as a case-sensitive substring. An unmatched pattern is
// a fatal error, since a stale outgroup list silently doing nothing is
// worse than failing loudly.
func FilterOutgroup(src *source.Source, patterns []string) error {
	return filterByList(src, patterns, true)
}

// FilterOutIsolation removes from src.Targets any target whose name does
// NOT contain one of patterns — the isolation-list keeps only the named
// subset instead of excluding it.
func FilterOutIsolation(src *source.Source, patterns []string) error {
	return filterByList(src, patterns, false)
}

func filterByList(src *source.Source, patterns []string, exclude bool) error {
	matched := make([]bool, len(patterns))
	for name := range src.Targets {
		hit := false
		for i, p := range patterns {
			if strings.Contains(name, p) {
				matched[i] = true
				hit = true
			}
		}
		if hit == exclude {
			delete(src.Targets, name)
		}
	}
	for i, ok := range matched {
		if !ok {
			return apperr.Newf(apperr.UnmatchedFilter, "pattern %q matched no target", patterns[i])
		}
	}
	return nil
}
