package pipeline

import (
	"sort"
	"sync"

	"github.com/bioaodp/oligosig/trie"
)

// matchCollector gathers Matches from every slice's CollectMatches pass
// under a single mutex, appending during collectMatches and immutable
// afterwards, then produces the deterministic sortMatches ordering.
type matchCollector struct {
	mu   sync.Mutex
	list []trie.Match
}

func (c *matchCollector) append(m trie.Match) {
	c.mu.Lock()
	c.list = append(c.list, m)
	c.mu.Unlock()
}

// sortMatches orders matches by cluster id, then position, then depth,
// then length, so the result is deterministic across runs given
// identical inputs.
func (c *matchCollector) sortMatches() []trie.Match {
	out := c.list
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ClusterID != b.ClusterID {
			return a.ClusterID < b.ClusterID
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.Length < b.Length
	})
	return out
}
