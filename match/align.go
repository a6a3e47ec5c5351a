package match

import "github.com/bioaodp/oligosig/symbol"

// align runs a column-streamed, overhang-free Needleman-Wunsch global
// alignment of ref against query: +1 match, -1 mismatch, -1 internal
// gap; leading and trailing gaps along the longer sequence's axis cost
// zero, since they represent the longer sequence overhanging the
// shorter one rather than a true indel. The shorter sequence
// overhanging costs -1 per symbol.
//
// Each DP cell carries (S,M,L) together — score, match count, and
// overlap length so far (matches, mismatches and internal gaps; edge
// overhangs are not counted) — rather than scoring first and tracing
// back afterward: whichever predecessor maximizes S at each cell (a gap
// step wins a tie) also supplies the M/L the final answer reports, with
// no separate traceback pass or matrix.
func align(ref, query []symbol.Symbol) (score, matches, length int) {
	n, m := len(ref), len(query)
	refLonger := n >= m

	gapI := -1 // cost of a ref step before the query starts or after it ends
	gapJ := -1 // cost of a query step before the ref starts or after it ends
	if refLonger {
		gapI = 0
	} else {
		gapJ = 0
	}

	type cell struct{ s, m, l int }
	prev := make([]cell, n+1)
	for i := 1; i <= n; i++ {
		prev[i] = cell{s: prev[i-1].s + gapI, m: prev[i-1].m, l: prev[i-1].l}
	}

	cur := make([]cell, n+1)
	for j := 1; j <= m; j++ {
		cur[0] = cell{s: prev[0].s + gapJ, m: prev[0].m, l: prev[0].l}
		for i := 1; i <= n; i++ {
			diagScore := -1
			if symbol.Overlaps(ref[i-1], query[j-1]) {
				diagScore = 1
			}
			diag := cell{s: prev[i-1].s + diagScore, m: prev[i-1].m, l: prev[i-1].l + 1}
			if diagScore == 1 {
				diag.m++
			}
			up := cell{s: prev[i].s - 1, m: prev[i].m, l: prev[i].l + 1}
			if i == n {
				up = cell{s: prev[i].s + gapJ, m: prev[i].m, l: prev[i].l}
			}
			left := cell{s: cur[i-1].s - 1, m: cur[i-1].m, l: cur[i-1].l + 1}
			if j == m {
				left = cell{s: cur[i-1].s + gapI, m: cur[i-1].m, l: cur[i-1].l}
			}

			best := diag
			if up.s >= best.s {
				best = up
			}
			if left.s >= best.s {
				best = left
			}
			cur[i] = best
		}
		prev, cur = cur, prev
	}

	final := prev[n]
	return final.s, final.m, final.l
}
