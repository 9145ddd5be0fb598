package ingest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "interactions.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readAll(t *testing.T, path string) []Interaction {
	t.Helper()
	var out []Interaction
	require.NoError(t, Each(path, func(in Interaction) error {
		out = append(out, in)
		return nil
	}))
	return out
}

func TestParsesTabSeparatedLines(t *testing.T) {
	path := writeTemp(t, "u1\ta\nu1\tb\nu2\ta\n")
	got := readAll(t, path)
	require.Equal(t, []Interaction{{"u1", "a"}, {"u1", "b"}, {"u2", "a"}}, got)
}

func TestTrailingNewlineTolerated(t *testing.T) {
	path := writeTemp(t, "u1\ta\n")
	got := readAll(t, path)
	require.Len(t, got, 1)
}

func TestExtraFieldsIgnored(t *testing.T) {
	path := writeTemp(t, "u1\ta\textra\tmore\n")
	got := readAll(t, path)
	require.Equal(t, []Interaction{{"u1", "a"}}, got)
}

func TestBlankLineIsFormatError(t *testing.T) {
	path := writeTemp(t, "u1\ta\n\nu2\tb\n")
	err := Each(path, func(Interaction) error { return nil })
	require.Error(t, err)
}

func TestShortLineIsFormatError(t *testing.T) {
	path := writeTemp(t, "u1\ta\nnotabs\n")
	err := Each(path, func(Interaction) error { return nil })
	require.Error(t, err)
}

func TestEmptyFileProducesNoRecords(t *testing.T) {
	path := writeTemp(t, "")
	got := readAll(t, path)
	require.Empty(t, got)
}

func TestNonASCIIKeysRoundTrip(t *testing.T) {
	path := writeTemp(t, "u1\tdie Ärzte\nu1\tbeyoncé\n")
	got := readAll(t, path)
	require.Equal(t, "die Ärzte", got[0].ItemKey)
	require.Equal(t, "beyoncé", got[1].ItemKey)
}

func TestMissingFileIsInputOpenError(t *testing.T) {
	_, err := Open("/nonexistent/path/that/should/not/exist.tsv")
	require.Error(t, err)
}

func TestReaderNextReturnsEOF(t *testing.T) {
	path := writeTemp(t, "u1\ta\n")
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}
