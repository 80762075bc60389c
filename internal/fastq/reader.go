package fastq

import (
	"fmt"
	"io"
	"strings"
)

// LineSource is the line sequence a Reader consumes. *Lines implements it.
type LineSource interface {
	Scan() bool
	Text() string
	Line() int
	Err() error
}

// Reader parses four-line FASTQ records from a LineSource, in file order.
type Reader struct {
	src    LineSource
	path   string
	offset int
	done   bool
}

// NewReader returns a Reader tagging every record with the quality offset.
func NewReader(src LineSource, path string, offset int) *Reader {
	return &Reader{src: src, path: path, offset: offset}
}

// Read returns the next record, or io.EOF once the input is exhausted.
// Structural problems are returned as *MalformedRecordError.
func (r *Reader) Read() (*Record, error) {
	if r.done {
		return nil, io.EOF
	}

	header, ok := r.next(true)
	if !ok {
		return nil, r.finish(io.EOF)
	}
	if !strings.HasPrefix(header, "@") {
		return nil, r.malformed(fmt.Sprintf("expected '@' at the beginning of header line, got: %s", header))
	}

	seq, ok := r.next(false)
	if !ok {
		return nil, r.finish(r.truncated())
	}

	sep, ok := r.next(false)
	if !ok {
		return nil, r.finish(r.truncated())
	}
	if !strings.HasPrefix(sep, "+") {
		return nil, r.malformed(fmt.Sprintf("expected '+' line, got: %s", sep))
	}

	qual, ok := r.next(false)
	if !ok {
		return nil, r.finish(r.truncated())
	}
	if len(seq) != len(qual) {
		return nil, r.malformed(fmt.Sprintf("sequence and quality strings must have the same length, got: %d and %d", len(seq), len(qual)))
	}

	return &Record{
		Header: header,
		Seq:    seq,
		Sep:    sep,
		Qual:   qual,
		Offset: r.offset,
	}, nil
}

// next returns the next line. Blank lines are skipped where a header is
// expected, so trailing newlines at EOF are harmless.
func (r *Reader) next(header bool) (string, bool) {
	for r.src.Scan() {
		line := r.src.Text()
		if header && line == "" {
			continue
		}
		return line, true
	}
	return "", false
}

// finish marks the reader exhausted, preferring a read error over fallback.
func (r *Reader) finish(fallback error) error {
	r.done = true
	if err := r.src.Err(); err != nil {
		return err
	}
	return fallback
}

func (r *Reader) truncated() error {
	return &MalformedRecordError{Path: r.path, Line: r.src.Line(), Reason: "unexpected end of file inside a record"}
}

func (r *Reader) malformed(reason string) error {
	r.done = true
	return &MalformedRecordError{Path: r.path, Line: r.src.Line(), Reason: reason}
}
