package stats

import (
	"testing"

	"github.com/pc3-labs/recoreco/internal/dictionary"
	"github.com/stretchr/testify/require"
)

func TestObserveAccumulates(t *testing.T) {
	s := New()
	s.Observe(0, 0)
	s.Observe(0, 1)
	s.Observe(1, 0)

	require.Equal(t, int64(3), s.N())
	require.Equal(t, int64(2), s.ItemOccurrences(0))
	require.Equal(t, int64(1), s.ItemOccurrences(1))
	require.Equal(t, int64(2), s.InteractionsPerUser(0))
	require.Equal(t, int64(1), s.InteractionsPerUser(1))
}

func TestUnseenIDsReadAsZero(t *testing.T) {
	s := New()
	s.Observe(0, 0)
	require.Equal(t, int64(0), s.ItemOccurrences(dictionary.ID(5)))
	require.Equal(t, int64(0), s.InteractionsPerUser(dictionary.ID(5)))
}
