package trie

import "github.com/bioaodp/oligosig/source"

// Match is one emitted signature candidate: the occurrence set rooted at
// a node maps to clusterID, the witness substring is
// src[position-depth, position+length), and any oligo length in
// [max(minOligo-depth,1), length] ending within this edge shares the
// same cluster membership.
type Match struct {
	ClusterID int
	Position  uint64
	Depth     int
	Length    int
}

// EncodeClusters visits every non-poisoned node with at least one
// occurrence, in post-order, and hands its occurrence set to register so
// the caller (the cluster package's Encoder) can assign it a canonical
// cluster id ahead of CollectClusters.
func (s *Slice) EncodeClusters(register func(occ map[source.SequenceID]struct{})) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walkPostOrder(0, func(n NodeID) {
		if occ := s.occ[n]; len(occ) > 0 && !s.poisoned[n] {
			register(occ)
		}
	})
}

// CollectClusters assigns each eligible node's cluster id via lookup,
// then clears the node's occurrence set — it has served its purpose and
// would otherwise be retained (and mutated by later passes) needlessly.
func (s *Slice) CollectClusters(lookup func(occ map[source.SequenceID]struct{}) (int, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walkPostOrder(0, func(n NodeID) {
		if occ := s.occ[n]; len(occ) > 0 && !s.poisoned[n] {
			if id, ok := lookup(occ); ok {
				s.cluster[n] = id
			}
		}
		s.occ[n] = nil
	})
}

// CollectMatches emits a Match for every node that was assigned a cluster
// id by a prior CollectClusters pass.
func (s *Slice) CollectMatches(emit func(Match)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.walkDepth(0, 0, func(n NodeID, depthBefore int) {
		if s.cluster[n] < 0 {
			return
		}
		emit(Match{
			ClusterID: s.cluster[n],
			Position:  s.pos[n],
			Depth:     depthBefore,
			Length:    s.length[n],
		})
	})
}

func (s *Slice) walkPostOrder(n NodeID, visit func(NodeID)) {
	for _, c := range s.children[n] {
		s.walkPostOrder(c, visit)
	}
	visit(n)
}

func (s *Slice) walkDepth(n NodeID, depthBefore int, visit func(NodeID, int)) {
	visit(n, depthBefore)
	for _, c := range s.children[n] {
		s.walkDepth(c, depthBefore+s.length[n], visit)
	}
}
