// Package topk implements the per-item bounded top-K indicator selector
// (spec.md §4.6): for every item with at least one retained occurrence, a
// capacity-K min-heap keeps the K highest-LLR co-occurring partners,
// using strict-greater tie-breaking and O(log K) updates.
package topk

import (
	"container/heap"
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pc3-labs/recoreco/internal/cooccur"
	"github.com/pc3-labs/recoreco/internal/dictionary"
	"github.com/pc3-labs/recoreco/internal/llr"
)

// Candidate is one scored indicator partner.
type Candidate struct {
	Item  dictionary.ID
	Score float64
}

// candidateHeap is a min-heap on Score, so the weakest candidate sits at
// the root and is the cheap element to evict when a stronger one arrives.
// Grounded on the pack's container/heap idiom (see DESIGN.md).
type candidateHeap []Candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)         { *h = append(*h, x.(Candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// ForItem computes item i's top-K indicator list from its row of the
// co-occurrence matrix. The returned slice is in heap-drain (ascending
// score) order per spec.md §4.6 step 3; callers must treat it as a set.
func ForItem(m *cooccur.Matrix, i dictionary.ID, k int) []Candidate {
	nRet := m.NumRows()
	aa := m.Diagonal(i)
	if aa == 0 {
		return nil
	}

	h := make(candidateHeap, 0, k)
	m.Neighbors(i, func(j dictionary.ID, ab int64) {
		if j == i {
			return
		}
		bb := m.Diagonal(j)
		s := llr.ScoreFromMatrix(aa, bb, ab, nRet)
		if s <= 0 {
			return
		}
		if len(h) < k {
			heap.Push(&h, Candidate{Item: j, Score: s})
			return
		}
		// Strict-greater tie-break: a candidate equal to the current
		// minimum is never inserted (spec.md §4.6).
		if s > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, Candidate{Item: j, Score: s})
		}
	})

	out := make([]Candidate, 0, len(h))
	for h.Len() > 0 {
		out = append(out, heap.Pop(&h).(Candidate))
	}
	return out
}

// Result maps each item present in the co-occurrence matrix's diagonal to
// its (possibly empty) indicator list.
type Result map[dictionary.ID][]Candidate

// Compute runs the selector for every item with A[i][i] > 0, up to
// maxItemID inclusive, using up to workers goroutines. Items with an
// empty heap are still present in the result with an empty list, per
// spec.md §4.6 step 4. A workers value <= 1 runs sequentially.
func Compute(ctx context.Context, m *cooccur.Matrix, maxItemID int, k, workers int) (Result, error) {
	result := make(Result, maxItemID+1)
	items := make([]dictionary.ID, 0, maxItemID+1)
	for id := 0; id <= maxItemID; id++ {
		if m.Diagonal(dictionary.ID(id)) > 0 {
			items = append(items, dictionary.ID(id))
		}
	}

	if workers < 1 {
		workers = 1
	}
	partial := make([][]Candidate, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, item := range items {
		idx, item := idx, item
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			partial[idx] = ForItem(m, item, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for idx, item := range items {
		result[item] = partial[idx]
	}
	return result, nil
}

// SortedByScoreDescending is a test/debug helper: spec.md does not
// mandate output order, but it is convenient to inspect candidates
// strongest-first.
func SortedByScoreDescending(cands []Candidate) []Candidate {
	out := append([]Candidate(nil), cands...)
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
