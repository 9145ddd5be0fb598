// Package emit writes the newline-delimited JSON output format of
// spec.md §6, one {"for_item":...,"indicated_items":[...]} object per
// line, streamed incrementally in the teacher's open-once/write-as-you-go
// CSV-writer idiom (see cmd/preprocess/remap.go), with the target format
// swapped from CSV to JSON lines and the encoder swapped to goccy/go-json
// for throughput on large result sets.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/pc3-labs/recoreco/internal/rerrors"
)

// Record is one output line. Field order is declared exactly as spec.md
// §6 mandates: for_item, then indicated_items.
type Record struct {
	ForItem        string   `json:"for_item"`
	IndicatedItems []string `json:"indicated_items"`
}

// Writer streams Records to the file at the path given to Create. It
// neither renames nor removes that file: internal/driver passes a temp
// path in the output directory and owns the rename-on-success/
// remove-on-failure sequencing mandated by spec.md §7.
type Writer struct {
	f   *os.File
	buf *bufio.Writer
	enc *json.Encoder
}

// Create opens path for a single streaming write pass.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", rerrors.ErrOutputWrite, path, err)
	}
	buf := bufio.NewWriter(f)
	return &Writer{f: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Write appends one record as a single NDJSON line.
func (w *Writer) Write(r Record) error {
	if r.IndicatedItems == nil {
		r.IndicatedItems = []string{}
	}
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("%w: encoding record for %q: %v", rerrors.ErrOutputWrite, r.ForItem, err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.f.Close()
		return fmt.Errorf("%w: flushing: %v", rerrors.ErrOutputWrite, err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("%w: closing: %v", rerrors.ErrOutputWrite, err)
	}
	return nil
}

// Abort discards the writer's file without flushing, for use on the
// early-failure exit path.
func (w *Writer) Abort() {
	_ = w.f.Close()
}

var _ io.Closer = (*Writer)(nil)
