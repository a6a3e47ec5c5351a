package trie

import "github.com/bioaodp/oligosig/symbol"

// ClusterAtDepth walks query by strict equality from the root and
// returns the cluster id of whichever node's edge contains the symbol at
// targetDepth-1 — i.e. the cluster membership that applies to a
// signature of exactly targetDepth symbols starting at this path's root.
// Used by the Matcher to ask "what cluster does this window belong to"
// without re-deriving the whole match-collection pass.
func (s *Slice) ClusterAtDepth(src Reader, query []symbol.Symbol, targetDepth int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clusterAtDepthRec(src, 0, query, 0, targetDepth)
}

func (s *Slice) clusterAtDepthRec(src Reader, n NodeID, query []symbol.Symbol, depthBefore int, targetDepth int) (int, bool) {
	if len(query) == 0 {
		return 0, false
	}
	child, ok := s.children[n][query[0]]
	if !ok {
		return 0, false
	}
	ePos, eLen := s.pos[child], s.length[child]
	d := 0
	for d < eLen && d < len(query) && symbol.StrictEqual(src.At(ePos+uint64(d)), query[d]) {
		d++
	}
	if d < eLen || d < len(query) {
		// divergence inside the edge, or ran out of query before the
		// edge ended: the target depth, if reachable at all, lies on
		// this edge only if it falls within the matched prefix.
		if targetDepth > depthBefore && targetDepth <= depthBefore+d {
			return s.cluster[child], s.cluster[child] >= 0
		}
		return 0, false
	}
	if targetDepth <= depthBefore+eLen {
		return s.cluster[child], s.cluster[child] >= 0
	}
	return s.clusterAtDepthRec(src, child, query[eLen:], depthBefore+eLen, targetDepth)
}
