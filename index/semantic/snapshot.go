package semantic

import (
	"math"
	"sort"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/embed"
	"github.com/Swetcha17/recruitment-automation/index"
)

// vpTreeMinDocs is the corpus size above which queries go through the
// VP-tree instead of a full scan. Both paths are exact for cosine.
const vpTreeMinDocs = 256

// snapshot is one immutable build of the semantic index. Rows are sorted by
// Id ascending, so comparing row indexes is comparing Ids. Queries never
// mutate a snapshot, which makes the atomic swap in Index safe.
type snapshot struct {
	ids     []core.ID
	hashes  []uint64
	vecs    [][]float32
	mags    []float64
	dims    int
	root    *vpNode
	querier embed.Embedder // embeds query text with the model the rows were built with
	model   []byte         // serialized vectorizer state, nil in external mode
	builtAt time.Time
}

type vpNode struct {
	row   int
	thr   float64
	left  *vpNode
	right *vpNode
}

// newSnapshot wires rows into a queryable snapshot. ids must already be
// sorted ascending and row-aligned with hashes and vecs.
func newSnapshot(ids []core.ID, hashes []uint64, vecs [][]float32, querier embed.Embedder, model []byte) *snapshot {
	s := &snapshot{
		ids:     ids,
		hashes:  hashes,
		vecs:    vecs,
		mags:    make([]float64, len(vecs)),
		querier: querier,
		model:   model,
		builtAt: time.Now().UTC(),
	}
	if len(vecs) > 0 {
		s.dims = len(vecs[0])
	}
	for i := range vecs {
		s.mags[i] = magnitude(vecs[i])
	}
	if len(ids) >= vpTreeMinDocs {
		// Zero-magnitude rows carry no signal and stay out of the tree.
		rows := make([]int, 0, len(ids))
		for i := range ids {
			if s.mags[i] != 0 {
				rows = append(rows, i)
			}
		}
		s.root = s.buildVP(rows)
	}
	return s
}

// chordDist is the Euclidean distance between two direction vectors on the
// unit sphere: sqrt(2*(1-cos)). Unlike raw cosine distance it satisfies the
// triangle inequality, so VP-tree pruning stays exact.
func chordDist(cos float64) float64 {
	d := 2.0 * (1.0 - cos)
	if d < 0 {
		d = 0
	}
	return math.Sqrt(d)
}

// chordScore converts a chord distance back to the reported similarity
// score (cos+1)/2, which lands in [0,1].
func chordScore(d float64) float64 {
	s := 1.0 - d*d/4.0
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// buildVP recursively partitions rows around a vantage point at the median
// chord distance. The vantage point is the last row of the slice, so the
// tree shape is a pure function of the (already id-sorted) input.
func (s *snapshot) buildVP(rows []int) *vpNode {
	if len(rows) == 0 {
		return nil
	}
	vp := rows[len(rows)-1]
	rows = rows[:len(rows)-1]
	if len(rows) == 0 {
		return &vpNode{row: vp}
	}
	dists := make([]float64, len(rows))
	for i, row := range rows {
		dists[i] = chordDist(dot(s.vecs[vp], s.vecs[row]) / (s.mags[vp] * s.mags[row]))
	}
	mid := len(dists) / 2
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	thr := dists[order[mid]]
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(rows)-(mid+1))
	for rank, i := range order {
		if rank <= mid {
			left = append(left, rows[i])
		} else {
			right = append(right, rows[i])
		}
	}
	return &vpNode{
		row:   vp,
		thr:   thr,
		left:  s.buildVP(left),
		right: s.buildVP(right),
	}
}

type candidate struct {
	row  int
	dist float64
}

// worse orders candidates by distance, then by row (equivalently Id) so
// equal-score results always resolve the same way.
func worse(a, b candidate) bool {
	if a.dist != b.dist {
		return a.dist > b.dist
	}
	return a.row > b.row
}

// search returns up to k hits for an already-embedded query, best first.
// A zero-magnitude query carries no signal and yields no hits.
func (s *snapshot) search(query []float32, k int) []index.Hit {
	if len(s.vecs) == 0 || k <= 0 {
		return nil
	}
	qm := magnitude(query)
	if qm == 0 {
		return nil
	}

	distTo := func(row int) float64 {
		return chordDist(dot(query, s.vecs[row]) / (qm * s.mags[row]))
	}

	var found []candidate
	if s.root != nil {
		found = s.searchVP(distTo, k)
	} else {
		found = make([]candidate, 0, len(s.vecs))
		for row := range s.vecs {
			if s.mags[row] == 0 {
				continue
			}
			found = append(found, candidate{row: row, dist: distTo(row)})
		}
	}

	sort.Slice(found, func(a, b int) bool { return worse(found[b], found[a]) })
	if k > len(found) {
		k = len(found)
	}
	hits := make([]index.Hit, k)
	for i := 0; i < k; i++ {
		hits[i] = index.Hit{
			Id:    s.ids[found[i].row],
			Score: chordScore(found[i].dist),
		}
	}
	return hits
}

// searchVP walks the VP-tree keeping the k best candidates seen so far.
// The pruning bounds are inclusive, so rows tying the current worst distance
// are still visited and the result matches a full scan exactly, ties and all.
func (s *snapshot) searchVP(distTo func(int) float64, k int) []candidate {
	best := make([]candidate, 0, k)
	bestR := math.Inf(1)

	worstOf := func() int {
		worst := 0
		for i := 1; i < len(best); i++ {
			if worse(best[i], best[worst]) {
				worst = i
			}
		}
		return worst
	}

	var walk func(n *vpNode)
	walk = func(n *vpNode) {
		if n == nil {
			return
		}
		d := distTo(n.row)
		c := candidate{row: n.row, dist: d}
		if len(best) < k {
			best = append(best, c)
			if len(best) == k {
				bestR = best[worstOf()].dist
			}
		} else if w := worstOf(); worse(best[w], c) {
			best[w] = c
			bestR = best[worstOf()].dist
		}
		if d < n.thr {
			if d-bestR <= n.thr {
				walk(n.left)
			}
			if d+bestR >= n.thr {
				walk(n.right)
			}
		} else {
			if d+bestR >= n.thr {
				walk(n.right)
			}
			if d-bestR <= n.thr {
				walk(n.left)
			}
		}
	}
	walk(s.root)
	return best
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func magnitude(v []float32) float64 { return math.Sqrt(dot(v, v)) }
