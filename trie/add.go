package trie

import (
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

// Add registers the minOligo..length window ending at pos+length, read
// from src starting at pos, as an occurrence of seq. Strict symbol
// equality is used throughout, with four cases depending on how far the
// path and the existing edge agree:
//
//  1. no existing child edge for the path's next symbol: a fresh leaf is
//     created for the whole remaining path.
//  2. the edge and the path agree for the whole edge, path continues:
//     record seq at the child if its depth already reaches minOligo,
//     then recurse past the consumed edge.
//  3. the edge and the path agree for the whole path, edge continues:
//     split the edge at the path's end; the new middle node is where seq
//     is recorded (if minOligo is reached).
//  4. the path diverges partway through the edge: split at the
//     divergence point, record seq on the middle node if it reaches
//     minOligo, and hang a fresh leaf for the path's own remainder.
func (s *Slice) Add(src Reader, seq source.SequenceID, pos uint64, length int, minOligo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addRec(src, 0, seq, pos, length, 0, minOligo)
}

func (s *Slice) addRec(src Reader, n NodeID, seq source.SequenceID, pathPos uint64, pathLen int, depth int, minOligo int) {
	if pathLen == 0 {
		return
	}
	key := src.At(pathPos)
	child, ok := s.children[n][key]
	if !ok {
		c := s.newNode(pathPos, pathLen)
		if s.children[n] == nil {
			s.children[n] = make(map[symbol.Symbol]NodeID, 4)
		}
		s.children[n][key] = c
		if depth+pathLen >= minOligo {
			s.addOccurrence(c, seq)
		}
		return
	}

	ePos, eLen := s.pos[child], s.length[child]
	d := findDivergence(src, ePos, eLen, pathPos, pathLen, symbol.StrictEqual)

	switch {
	case d == eLen && d == pathLen:
		s.addOccurrence(child, seq)
		if pathPos < s.pos[child] {
			s.pos[child] = pathPos
		}
	case d == eLen && d < pathLen:
		if depth+eLen >= minOligo {
			s.addOccurrence(child, seq)
		}
		s.addRec(src, child, seq, pathPos+uint64(eLen), pathLen-eLen, depth+eLen, minOligo)
	case d < eLen && d == pathLen:
		m := s.splitEdge(src, n, key, child, d)
		if depth+d >= minOligo {
			s.addOccurrence(m, seq)
		}
	default: // d < eLen && d < pathLen
		m := s.splitEdge(src, n, key, child, d)
		if depth+d >= minOligo {
			s.addOccurrence(m, seq)
		}
		leafPos := pathPos + uint64(d)
		leafLen := pathLen - d
		leaf := s.newNode(leafPos, leafLen)
		s.children[m][src.At(leafPos)] = leaf
		if depth+pathLen >= minOligo {
			s.addOccurrence(leaf, seq)
		}
	}
}
