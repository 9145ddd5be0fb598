// Package ingest reads the TSV interaction log of spec.md §6: one
// (user_key, item_key) pair per line, tab-separated, extra fields
// ignored, blank lines and short lines rejected as format errors.
//
// encoding/csv (the teacher's usual reader, see cmd/algorithms/*.go)
// silently skips blank lines, which spec.md §6 requires to be rejected;
// this package instead scans raw lines with bufio.Scanner and splits on
// the first tab, keeping the teacher's bufio.NewReader(os.Open(...))
// streaming shape but swapping the line-parsing strategy to preserve
// blank-line rejection.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pc3-labs/recoreco/internal/rerrors"
)

// Interaction is one raw (user_key, item_key) observation.
type Interaction struct {
	UserKey string
	ItemKey string
}

// Reader streams Interactions from a TSV file.
type Reader struct {
	f       *os.File
	scanner *bufio.Scanner
	line    int
}

// Open opens path for a single streaming pass. Callers must call Close
// when done, on every exit path (spec.md §5's "scoped acquisition").
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", rerrors.ErrInputOpen, path, err)
	}
	sc := bufio.NewScanner(bufio.NewReaderSize(f, 64*1024))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{f: f, scanner: sc}, nil
}

// Next returns the next interaction, or io.EOF when the stream is
// exhausted. A malformed line (blank, or fewer than two tab-separated
// fields) returns ErrInputFormat with line context.
func (r *Reader) Next() (Interaction, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Interaction{}, fmt.Errorf("%w: line %d: %v", rerrors.ErrInputFormat, r.line+1, err)
		}
		return Interaction{}, io.EOF
	}
	r.line++
	line := strings.TrimRight(r.scanner.Text(), "\r")
	if line == "" {
		return Interaction{}, fmt.Errorf("%w: line %d: blank line", rerrors.ErrInputFormat, r.line)
	}

	userKey, rest, ok := strings.Cut(line, "\t")
	if !ok || userKey == "" {
		return Interaction{}, fmt.Errorf("%w: line %d: expected at least 2 tab-separated fields", rerrors.ErrInputFormat, r.line)
	}
	itemKey, _, _ := strings.Cut(rest, "\t")
	if itemKey == "" {
		return Interaction{}, fmt.Errorf("%w: line %d: empty item key", rerrors.ErrInputFormat, r.line)
	}
	return Interaction{UserKey: userKey, ItemKey: itemKey}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Each streams every interaction in path to fn, stopping at the first
// error fn returns or the first format/IO error. It opens and closes the
// file itself, satisfying spec.md §5's "released on all exit paths"
// requirement in one place.
func Each(path string, fn func(Interaction) error) error {
	r, err := Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		in, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(in); err != nil {
			return err
		}
	}
}
