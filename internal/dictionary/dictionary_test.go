package dictionary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOrInsertIdempotent(t *testing.T) {
	d := New()
	a := d.GetOrInsert("die Ärzte")
	b := d.GetOrInsert("die Ärzte")
	require.Equal(t, a, b)
	require.Equal(t, 1, d.Size())
}

func TestRoundTripByteForByte(t *testing.T) {
	d := New()
	keys := []string{"die Ärzte", "beyoncé", "u1", "a"}
	ids := make([]ID, len(keys))
	for i, k := range keys {
		ids[i] = d.GetOrInsert(k)
	}
	for i, k := range keys {
		require.Equal(t, k, d.Lookup(ids[i]))
	}
}

func TestIDsAreDenseAndSequential(t *testing.T) {
	d := New()
	require.Equal(t, ID(0), d.GetOrInsert("a"))
	require.Equal(t, ID(1), d.GetOrInsert("b"))
	require.Equal(t, ID(0), d.GetOrInsert("a"))
	require.Equal(t, ID(2), d.GetOrInsert("c"))
	require.Equal(t, 3, d.Size())
}

func TestEachVisitsInsertionOrder(t *testing.T) {
	d := New()
	d.GetOrInsert("a")
	d.GetOrInsert("b")
	d.GetOrInsert("c")
	var seen []string
	d.Each(func(id ID, key string) {
		require.Equal(t, int(id), len(seen))
		seen = append(seen, key)
	})
	require.Equal(t, []string{"a", "b", "c"}, seen)
}
