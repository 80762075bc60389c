package fastq

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

const (
	readBufSize = 1 << 20  // 1 MiB
	maxLineSize = 64 << 20 // longest accepted line
)

// Compression identifies the encoding detected on an input stream.
type Compression int

const (
	Plain Compression = iota
	Gzip
	Bzip2
	Zstd
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Zstd:
		return "zstd"
	default:
		return "plain"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Sniff reports the compression of a stream from its first bytes.
func Sniff(prefix []byte) Compression {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	case bytes.HasPrefix(prefix, bzip2Magic):
		return Bzip2
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	}
	return Plain
}

// closerFunc adapts decoders whose Close has no error result.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Lines is a single-pass sequence of text lines read from a possibly
// compressed file. It owns the file handle until Close.
type Lines struct {
	Path        string
	Compression Compression

	sc      *bufio.Scanner
	closers []io.Closer
	line    int
	closed  bool
}

// Open opens path ("-" for stdin) and detects gzip, bzip2 or zstd by magic
// bytes, falling back to plain text.
func Open(path string) (*Lines, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, &UnreadableInputError{Path: path, Err: err}
		}
	}
	l, err := newLines(path, f)
	if err != nil {
		if f != os.Stdin {
			f.Close()
		}
		return nil, err
	}
	if f != os.Stdin {
		l.closers = append(l.closers, f)
	}
	return l, nil
}

func newLines(path string, r io.Reader) (*Lines, error) {
	br := bufio.NewReaderSize(r, readBufSize)
	prefix, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, &UnreadableInputError{Path: path, Err: err}
	}

	l := &Lines{Path: path, Compression: Sniff(prefix)}
	var src io.Reader
	switch l.Compression {
	case Gzip:
		gr, err := pgzip.NewReader(br)
		if err != nil {
			return nil, &UnreadableInputError{Path: path, Err: err}
		}
		l.closers = append(l.closers, gr)
		src = gr
	case Bzip2:
		src = bzip2.NewReader(br)
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, &UnreadableInputError{Path: path, Err: err}
		}
		l.closers = append(l.closers, closerFunc(func() error { zr.Close(); return nil }))
		src = zr
	default:
		src = br
	}

	l.sc = bufio.NewScanner(src)
	l.sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return l, nil
}

// Scan advances to the next line. It returns false at the end of input or on
// the first read error, which Err then reports.
func (l *Lines) Scan() bool {
	if l.closed || !l.sc.Scan() {
		return false
	}
	l.line++
	return true
}

// Text returns the current line without its line terminator.
func (l *Lines) Text() string {
	return strings.TrimSuffix(l.sc.Text(), "\r")
}

// Line returns the 1-based number of the current line.
func (l *Lines) Line() int { return l.line }

func (l *Lines) Err() error {
	if err := l.sc.Err(); err != nil {
		return &UnreadableInputError{Path: l.Path, Err: err}
	}
	return nil
}

// Close releases the decompressor and the file handle. It is safe to call
// more than once.
func (l *Lines) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	var err error
	for _, c := range l.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
