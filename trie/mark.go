package trie

import (
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

// Mark walks the same edges Add would, but compares symbols with
// Overlaps instead of StrictEqual and therefore may descend into more
// than one child at once — an ambiguous path symbol can overlap several
// distinct unambiguous edge keys. Matched nodes are poisoned rather than
// credited to seq: Mark runs over ambiguous runs, and a node whose only
// evidence comes from an ambiguous context is not trustworthy enough to
// stand as a clean signature.
//
// Unlike Add, Mark never splits an edge: poisoning an existing node is
// enough to keep it out of the final signature set, so there is no need
// to materialize a node for a prefix that wasn't already a node.
func (s *Slice) Mark(src Reader, seq source.SequenceID, pos uint64, length int, minOligo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markRec(src, 0, seq, pos, length, 0, minOligo)
}

func (s *Slice) markRec(src Reader, n NodeID, seq source.SequenceID, pathPos uint64, pathLen int, depth int, minOligo int) {
	if pathLen == 0 || len(s.children[n]) == 0 {
		return
	}
	pathSym := src.At(pathPos)
	for key, child := range s.children[n] {
		if !symbol.Overlaps(key, pathSym) {
			continue
		}
		ePos, eLen := s.pos[child], s.length[child]
		d := findDivergence(src, ePos, eLen, pathPos, pathLen, symbol.Overlaps)
		switch {
		case d == eLen && d == pathLen:
			s.poison(child)
		case d == eLen && d < pathLen:
			if depth+eLen >= minOligo {
				s.poison(child)
			}
			s.markRec(src, child, seq, pathPos+uint64(eLen), pathLen-eLen, depth+eLen, minOligo)
		default: // d < eLen, whether or not d == pathLen
			if depth+d >= minOligo {
				s.poison(child)
			}
		}
	}
}

func (s *Slice) poison(n NodeID) {
	s.poisoned[n] = true
	s.occ[n] = nil
}
