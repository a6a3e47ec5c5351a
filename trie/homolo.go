package trie

// FilterHomolo prunes or truncates any path whose symbols form a
// homopolymer run longer than maxRun. If the symbol that pushes a run
// past maxRun lies within the first minOligo symbols of the path, the
// whole child is erased (no signature of at least minOligo length can
// avoid the run); otherwise the edge is shortened to end just before that
// symbol and its descendants are dropped, since nothing past that point
// can be trusted either.
func (s *Slice) FilterHomolo(src Reader, maxRun int, minOligo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var invalid byte
	s.filterHomoloRec(src, 0, 0, invalid, 0, maxRun, minOligo)
}

func (s *Slice) filterHomoloRec(src Reader, n NodeID, depth int, runBase byte, runLen int, maxRun int, minOligo int) {
	children := s.children[n]
	if len(children) == 0 {
		return
	}
	for key, child := range children {
		base, runAt := runBase, runLen
		ePos, eLen := s.pos[child], s.length[child]

		cut := -1
		for i := 0; i < eLen; i++ {
			b := byte(src.At(ePos + uint64(i)))
			if b == base {
				runAt++
			} else {
				base, runAt = b, 1
			}
			if runAt > maxRun {
				cut = i
				break
			}
		}

		if cut >= 0 {
			if depth+cut+1 <= minOligo {
				delete(s.children[n], key)
			} else {
				s.length[child] = cut
				s.children[child] = nil
				s.occ[child] = nil
			}
			continue
		}

		s.filterHomoloRec(src, child, depth+eLen, base, runAt, maxRun, minOligo)
	}
}
