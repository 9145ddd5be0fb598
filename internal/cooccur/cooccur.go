// Package cooccur implements the symmetric sparse item-to-item
// co-occurrence matrix (spec.md §4.4): one map per item, plus a diagonal
// of retained occurrence counts. Off-diagonal counts are mirrored into
// both rows[a][b] and rows[b][a] at write time so per-item neighbor
// iteration (needed by the top-K selector, §4.6) stays O(nnz(i)) instead
// of O(items) per item.
package cooccur

import (
	"sort"

	"github.com/pc3-labs/recoreco/internal/dictionary"
)

// Matrix is a symmetric sparse ItemId x ItemId count matrix. Matrix.At is
// symmetric by construction: every off-diagonal write updates both sides.
type Matrix struct {
	rows     []map[dictionary.ID]int64
	diagonal []int64
	nRows    int64
}

// New returns an empty Matrix.
func New() *Matrix {
	return &Matrix{}
}

func (m *Matrix) grow(n int) {
	for len(m.rows) < n {
		m.rows = append(m.rows, nil)
		m.diagonal = append(m.diagonal, 0)
	}
}

// AddRow increments every unordered pair within items by one and
// increments each item's diagonal (retained occurrence) by one. items
// must already be a deduplicated set, as produced by the row builder.
func (m *Matrix) AddRow(items []dictionary.ID) {
	if len(items) == 0 {
		return
	}
	m.nRows++
	maxID := 0
	for _, it := range items {
		if int(it)+1 > maxID {
			maxID = int(it) + 1
		}
	}
	m.grow(maxID)

	for _, it := range items {
		m.diagonal[it]++
	}
	for i := 0; i < len(items); i++ {
		a := items[i]
		for j := i + 1; j < len(items); j++ {
			b := items[j]
			m.bump(a, b)
			m.bump(b, a)
		}
	}
}

func (m *Matrix) bump(a, b dictionary.ID) {
	row := m.rows[a]
	if row == nil {
		row = make(map[dictionary.ID]int64, 4)
		m.rows[a] = row
	}
	row[b]++
}

// At returns A[a][b]. For a == b this is the diagonal (retained
// occurrence count). Reads are symmetric: At(a, b) == At(b, a).
func (m *Matrix) At(a, b dictionary.ID) int64 {
	if a == b {
		if int(a) >= len(m.diagonal) {
			return 0
		}
		return m.diagonal[a]
	}
	if int(a) >= len(m.rows) || m.rows[a] == nil {
		return 0
	}
	return m.rows[a][b]
}

// Diagonal returns A[i][i], the retained occurrence count for item i.
func (m *Matrix) Diagonal(i dictionary.ID) int64 {
	return m.At(i, i)
}

// NumRows returns N_ret, the number of user rows ever added to the
// matrix (equivalently, users with at least one retained item).
func (m *Matrix) NumRows() int64 {
	return m.nRows
}

// Neighbors calls fn for every j that has ever co-occurred with i
// (A[i][j] > 0, j != i), passing the raw count, in ascending item-id
// order. The ordering is deterministic by construction (not just an
// artifact of map iteration, which Go randomizes) so that top-K
// selection over tied scores is reproducible across runs given the same
// rng_seed, per spec.md §8 invariant 5.
func (m *Matrix) Neighbors(i dictionary.ID, fn func(j dictionary.ID, count int64)) {
	if int(i) >= len(m.rows) {
		return
	}
	row := m.rows[i]
	ids := make([]dictionary.ID, 0, len(row))
	for j := range row {
		ids = append(ids, j)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	for _, j := range ids {
		if c := row[j]; c > 0 {
			fn(j, c)
		}
	}
}

// MaxItemID returns the largest item id that appears in the matrix
// (diagonal or otherwise), or -1 if the matrix is empty.
func (m *Matrix) MaxItemID() int {
	return len(m.diagonal) - 1
}
