package trie

import (
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

// SmallDiff erases occurrences that differ from seq's path by exactly one
// base, provided the shared portion still reaches minOligo. It runs in
// two states: diff0 (no mismatch consumed yet) walks exactly like Add's
// traversal, and on the first mismatch hands off to diff1, which must
// match exactly from then on — a second mismatch aborts that branch
// without touching anything. A node whose occurrences already belong
// solely to seq is left alone: collapsing a node into itself erases
// nothing.
func (s *Slice) SmallDiff(src Reader, seq source.SequenceID, pos uint64, length int, minOligo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diff0(src, 0, seq, pos, length, 0, minOligo)
}

func (s *Slice) diff0(src Reader, n NodeID, seq source.SequenceID, pathPos uint64, pathLen int, depth int, minOligo int) {
	if pathLen == 0 {
		return
	}
	for _, child := range s.children[n] {
		ePos, eLen := s.pos[child], s.length[child]
		d := findDivergence(src, ePos, eLen, pathPos, pathLen, symbol.StrictEqual)

		switch {
		case d == eLen && d == pathLen:
			// exact full match along this edge; nothing left to diverge on
		case d == eLen && d < pathLen:
			s.diff0(src, child, seq, pathPos+uint64(eLen), pathLen-eLen, depth+eLen, minOligo)
		case d < eLen && d < pathLen:
			// genuine single-base mismatch at offset d: consume it and
			// switch to the one-mismatch-used state for the remainder.
			remEdge := eLen - d - 1
			remPath := pathLen - d - 1
			s.diff1(src, child, seq, ePos+uint64(d+1), remEdge, pathPos+uint64(d+1), remPath, depth+d+1, minOligo)
		default:
			// d < eLen, d == pathLen: the path simply ends inside this
			// edge with no content left to compare; no SNP to chase.
		}
	}
}

func (s *Slice) diff1(src Reader, n NodeID, seq source.SequenceID, edgePos uint64, edgeRemaining int, pathPos uint64, pathRemaining int, depth int, minOligo int) {
	length := edgeRemaining
	if pathRemaining < length {
		length = pathRemaining
	}
	for i := 0; i < length; i++ {
		if src.At(edgePos+uint64(i)) != src.At(pathPos+uint64(i)) {
			return // second mismatch: this branch no longer qualifies
		}
	}
	depth += length

	switch {
	case length == pathRemaining:
		if depth >= minOligo {
			s.eraseUnlessOwn(n, seq)
		}
	case length == edgeRemaining:
		newPathPos := pathPos + uint64(length)
		remaining := pathRemaining - length
		pathSym := src.At(newPathPos)
		for _, child := range s.children[n] {
			if src.At(s.pos[child]) != pathSym {
				continue
			}
			s.diff1(src, child, seq, s.pos[child], s.length[child], newPathPos, remaining, depth, minOligo)
		}
	}
}

func (s *Slice) eraseUnlessOwn(n NodeID, seq source.SequenceID) {
	occ := s.occ[n]
	if len(occ) == 0 {
		return
	}
	if len(occ) == 1 {
		if _, ok := occ[seq]; ok {
			return
		}
	}
	s.occ[n] = nil
}
