package trie

import "github.com/bioaodp/oligosig/symbol"

// Find walks strict-equality edges for the literal query and reports the
// deepest node reached together with how many query symbols were
// consumed — a plain substring lookup alongside the mutation passes.
func (s *Slice) Find(src Reader, query []symbol.Symbol) (node NodeID, consumed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findRec(src, 0, query, 0)
}

func (s *Slice) findRec(src Reader, n NodeID, query []symbol.Symbol, consumed int) (NodeID, int) {
	if len(query) == 0 {
		return n, consumed
	}
	child, ok := s.children[n][query[0]]
	if !ok {
		return n, consumed
	}
	ePos, eLen := s.pos[child], s.length[child]
	d := 0
	for d < eLen && d < len(query) && symbol.StrictEqual(src.At(ePos+uint64(d)), query[d]) {
		d++
	}
	if d < eLen {
		return child, consumed + d
	}
	return s.findRec(src, child, query[eLen:], consumed+eLen)
}

// FindAmbiguous is Find's overlap-comparison counterpart: it reports
// every node reachable from the root by a path that overlaps query at
// every position, since an ambiguous query symbol may be consistent with
// several distinct trie edges at once.
func (s *Slice) FindAmbiguous(src Reader, query []symbol.Symbol) []NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []NodeID
	s.findAmbiguousRec(src, 0, query, &out)
	return out
}

func (s *Slice) findAmbiguousRec(src Reader, n NodeID, query []symbol.Symbol, out *[]NodeID) {
	if len(query) == 0 {
		*out = append(*out, n)
		return
	}
	for key, child := range s.children[n] {
		if !symbol.Overlaps(key, query[0]) {
			continue
		}
		ePos, eLen := s.pos[child], s.length[child]
		d := 0
		for d < eLen && d < len(query) && symbol.Overlaps(src.At(ePos+uint64(d)), query[d]) {
			d++
		}
		if d < eLen {
			if d == len(query) {
				*out = append(*out, child)
			}
			continue
		}
		s.findAmbiguousRec(src, child, query[eLen:], out)
	}
}

// Measure reports the length, in symbols, of the longest path from the
// root that strictly matches a prefix of query — the trie's analogue of
// a longest-common-prefix probe, reported by the --find diagnostic.
func (s *Slice) Measure(src Reader, query []symbol.Symbol) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.measureRec(src, 0, query)
}

func (s *Slice) measureRec(src Reader, n NodeID, query []symbol.Symbol) int {
	if len(query) == 0 {
		return 0
	}
	child, ok := s.children[n][query[0]]
	if !ok {
		return 0
	}
	ePos, eLen := s.pos[child], s.length[child]
	d := 0
	for d < eLen && d < len(query) && symbol.StrictEqual(src.At(ePos+uint64(d)), query[d]) {
		d++
	}
	if d < eLen {
		return d
	}
	return eLen + s.measureRec(src, child, query[eLen:])
}
