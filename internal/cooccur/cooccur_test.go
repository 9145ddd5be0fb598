package cooccur

import (
	"testing"

	"github.com/pc3-labs/recoreco/internal/dictionary"
	"github.com/stretchr/testify/require"
)

func TestAddRowUpdatesDiagonalAndPairs(t *testing.T) {
	m := New()
	m.AddRow([]dictionary.ID{0, 1, 2})

	require.EqualValues(t, 1, m.Diagonal(0))
	require.EqualValues(t, 1, m.Diagonal(1))
	require.EqualValues(t, 1, m.Diagonal(2))
	require.EqualValues(t, 1, m.At(0, 1))
	require.EqualValues(t, 1, m.At(1, 2))
	require.EqualValues(t, 1, m.At(0, 2))
}

func TestMatrixIsSymmetric(t *testing.T) {
	m := New()
	m.AddRow([]dictionary.ID{3, 7})
	m.AddRow([]dictionary.ID{3, 7})
	m.AddRow([]dictionary.ID{3, 9})

	require.EqualValues(t, m.At(3, 7), m.At(7, 3))
	require.EqualValues(t, 2, m.At(3, 7))
	require.EqualValues(t, m.At(3, 9), m.At(9, 3))
}

func TestNumRowsCountsOnlyNonEmptyRows(t *testing.T) {
	m := New()
	m.AddRow([]dictionary.ID{0, 1})
	m.AddRow(nil)
	m.AddRow([]dictionary.ID{2})
	require.EqualValues(t, 2, m.NumRows())
}

func TestScenarioS1ToyExample(t *testing.T) {
	// u1: a,b   u2: a,b   u3: a,c
	a, b, c := dictionary.ID(0), dictionary.ID(1), dictionary.ID(2)
	m := New()
	m.AddRow([]dictionary.ID{a, b})
	m.AddRow([]dictionary.ID{a, b})
	m.AddRow([]dictionary.ID{a, c})

	require.EqualValues(t, 3, m.Diagonal(a))
	require.EqualValues(t, 2, m.Diagonal(b))
	require.EqualValues(t, 1, m.Diagonal(c))
	require.EqualValues(t, 2, m.At(a, b))
	require.EqualValues(t, 1, m.At(a, c))
	require.EqualValues(t, 0, m.At(b, c))
	require.EqualValues(t, 3, m.NumRows())
}

func TestNeighborsVisitsOnlyCoOccurringItems(t *testing.T) {
	m := New()
	m.AddRow([]dictionary.ID{0, 1})
	m.AddRow([]dictionary.ID{0, 2})

	seen := map[dictionary.ID]int64{}
	m.Neighbors(0, func(j dictionary.ID, count int64) {
		seen[j] = count
	})
	require.Equal(t, map[dictionary.ID]int64{1: 1, 2: 1}, seen)
}

func TestNeighborsVisitsInAscendingItemIDOrder(t *testing.T) {
	m := New()
	m.AddRow([]dictionary.ID{5, 9})
	m.AddRow([]dictionary.ID{5, 1})
	m.AddRow([]dictionary.ID{5, 4})

	var visited []dictionary.ID
	for i := 0; i < 10; i++ {
		visited = nil
		m.Neighbors(5, func(j dictionary.ID, count int64) {
			visited = append(visited, j)
		})
		require.Equal(t, []dictionary.ID{1, 4, 9}, visited)
	}
}
