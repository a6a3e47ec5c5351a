// Package pipeline drives the fixed sequence of signature-discovery
// stages and supplies the cursor-under-mutex worker pool every
// data-parallel pass (buildSlices, cover, touch, smallDiff,
// collectClusters, collectMatches...) runs on: each worker thread claims
// the next unclaimed index under a shared mutex rather than statically
// partitioning the work up front.
package pipeline

import (
	"sync"

	"github.com/klauspost/cpuid"
)

// Pass is a cursor-under-mutex work distributor: Next hands out strictly
// increasing indices in [0,n) to however many goroutines call it,
// serialized by mu, until the cursor is exhausted.
type Pass struct {
	mu     sync.Mutex
	cursor int
	n      int
}

// NewPass returns a Pass that will hand out the indices [0,n).
func NewPass(n int) *Pass { return &Pass{n: n} }

// Next returns the next index and true, or (0,false) once every index
// has been claimed.
func (p *Pass) Next() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursor >= p.n {
		return 0, false
	}
	i := p.cursor
	p.cursor++
	return i, true
}

// DefaultWorkers returns max(logical_cores-1, 1), read from cpuid rather
// than runtime.NumCPU so it reflects physical topology (hyperthread
// siblings included).
func DefaultWorkers() int {
	n := cpuid.CPU.LogicalCores - 1
	if n < 1 {
		n = 1
	}
	return n
}

// Run spawns workers goroutines, each repeatedly calling p.Next and
// invoking fn(i) until the pass is exhausted, then blocks until every
// worker has returned, forming a full barrier between pipeline stages.
func Run(n int, workers int, fn func(i int)) {
	if workers < 1 {
		workers = 1
	}
	if n == 0 {
		return
	}
	if workers > n {
		workers = n
	}
	p := NewPass(n)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i, ok := p.Next()
				if !ok {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}
