package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteProducesNDJSONWithDeclaredKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(Record{ForItem: "a", IndicatedItems: []string{"b", "c"}}))
	require.NoError(t, w.Write(Record{ForItem: "b", IndicatedItems: nil}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	require.JSONEq(t, `{"for_item":"a","indicated_items":["b","c"]}`, lines[0])
	require.True(t, strings.Index(lines[0], `"for_item"`) < strings.Index(lines[0], `"indicated_items"`))

	require.JSONEq(t, `{"for_item":"b","indicated_items":[]}`, lines[1])
}

func TestNonASCIIKeysEscapeCorrectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(Record{ForItem: "die Ärzte", IndicatedItems: []string{"beyoncé"}}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "die Ärzte")
	require.Contains(t, string(data), "beyoncé")
}
