package keyword

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/index"
)

// BM25 parameters. k1 controls term-frequency saturation, b the strength of
// document-length normalization.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// snapshot is one immutable index version, queried lock-free while builds
// prepare the next one.
type snapshot struct {
	terms       map[string][]posting // posting lists sorted by Doc ascending
	docLens     map[core.ID]int
	sortedTerms []string
	docs        int
	avgLen      float64
	builtAt     time.Time
}

func newSnapshot(terms map[string][]posting, docLens map[core.ID]int, meta indexMeta) *snapshot {
	s := &snapshot{
		terms:   terms,
		docLens: docLens,
		docs:    meta.Documents,
		builtAt: meta.BuiltAt,
	}
	if meta.Documents > 0 {
		s.avgLen = float64(meta.TotalLength) / float64(meta.Documents)
	}
	s.sortedTerms = slices.Sorted(maps.Keys(terms))
	return s
}

func (s *snapshot) search(plan queryPlan, k int) []index.Hit {
	var scores map[core.ID]float64
	if len(plan.phrase) > 0 {
		docs := s.phraseDocs(plan.phrase)
		if len(docs) == 0 {
			return nil
		}
		keep := make(map[core.ID]struct{}, len(docs))
		for _, doc := range docs {
			keep[doc] = struct{}{}
		}
		scores = s.scoreTerms(plan.phrase)
		for id := range scores {
			if _, ok := keep[id]; !ok {
				delete(scores, id)
			}
		}
	} else {
		terms := make([]string, 0, len(plan.terms)+len(plan.prefixes))
		terms = append(terms, plan.terms...)
		for _, prefix := range plan.prefixes {
			terms = append(terms, s.expandPrefix(prefix)...)
		}
		scores = s.scoreTerms(terms)
	}
	return rankHits(scores, k)
}

// scoreTerms accumulates each document's BM25 score over the query terms.
// Unknown terms contribute nothing, so a partial match still ranks.
func (s *snapshot) scoreTerms(terms []string) map[core.ID]float64 {
	scores := make(map[core.ID]float64)
	for _, term := range terms {
		list, ok := s.terms[term]
		if !ok {
			continue
		}
		idf := s.idf(len(list))
		for _, p := range list {
			tf := float64(p.Frequency)
			dl := float64(s.docLens[p.Doc])
			norm := tf * (bm25K1 + 1) / (tf + bm25K1*(1-bm25B+bm25B*dl/s.avgLen))
			scores[p.Doc] += idf * norm
		}
	}
	return scores
}

// idf uses the +1 variant so scores never go negative, even for terms in
// more than half the corpus.
func (s *snapshot) idf(df int) float64 {
	return math.Log((float64(s.docs-df)+0.5)/(float64(df)+0.5) + 1)
}

// phraseDocs returns the documents containing every phrase term at
// consecutive kept-token positions.
func (s *snapshot) phraseDocs(terms []string) []core.ID {
	lists := make([][]posting, len(terms))
	for i, term := range terms {
		list, ok := s.terms[term]
		if !ok {
			return nil
		}
		lists[i] = list
	}

	var docs []core.ID
	for _, first := range lists[0] {
		positions := first.Positions
		for _, list := range lists[1:] {
			next := findPosting(list, first.Doc)
			if next == nil {
				positions = nil
				break
			}
			positions = advance(positions, next.Positions)
			if len(positions) == 0 {
				break
			}
		}
		if len(positions) > 0 {
			docs = append(docs, first.Doc)
		}
	}
	return docs
}

// findPosting binary-searches a posting list by document.
func findPosting(list []posting, doc core.ID) *posting {
	i, ok := slices.BinarySearchFunc(list, doc, func(p posting, d core.ID) int {
		return cmp.Compare(p.Doc, d)
	})
	if !ok {
		return nil
	}
	return &list[i]
}

// advance keeps the positions in next that directly follow one in prev.
// Both inputs are strictly ascending.
func advance(prev, next []int) []int {
	var out []int
	j := 0
	for _, pos := range next {
		for j < len(prev) && prev[j] < pos-1 {
			j++
		}
		if j < len(prev) && prev[j] == pos-1 {
			out = append(out, pos)
		}
	}
	return out
}

// expandPrefix returns the indexed terms beginning with prefix. Prefixes
// match the stored, stemmed vocabulary literally.
func (s *snapshot) expandPrefix(prefix string) []string {
	start, _ := slices.BinarySearch(s.sortedTerms, prefix)
	var out []string
	for i := start; i < len(s.sortedTerms) && strings.HasPrefix(s.sortedTerms[i], prefix); i++ {
		out = append(out, s.sortedTerms[i])
	}
	return out
}

// rankHits orders by score descending, ties by document ascending, and
// truncates to k.
func rankHits(scores map[core.ID]float64, k int) []index.Hit {
	hits := make([]index.Hit, 0, len(scores))
	for id, score := range scores {
		hits = append(hits, index.Hit{Id: id, Score: score})
	}
	slices.SortFunc(hits, func(a, b index.Hit) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Id, b.Id)
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
