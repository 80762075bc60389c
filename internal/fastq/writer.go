package fastq

import (
	"bufio"
	"io"
)

// Writer serializes records back to four-line FASTQ text.
type Writer struct {
	path string
	w    *bufio.Writer
	n    int64
}

// NewWriter buffers output to w. path is only used in error messages.
func NewWriter(w io.Writer, path string) *Writer {
	return &Writer{path: path, w: bufio.NewWriter(w)}
}

// Write appends rec as header, sequence, separator and quality lines.
func (w *Writer) Write(rec *Record) error {
	for _, line := range [...]string{rec.Header, rec.Seq, rec.Sep, rec.Qual} {
		if _, err := w.w.WriteString(line); err != nil {
			return &OutputWriteError{Path: w.path, Err: err}
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return &OutputWriteError{Path: w.path, Err: err}
		}
	}
	w.n++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return &OutputWriteError{Path: w.path, Err: err}
	}
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int64 { return w.n }
