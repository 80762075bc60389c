// Package output lays out the filtered FASTQ files in the output directory.
package output

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"

	"solexaFilter/internal/fastq"
)

// Options selects the files created by Create.
type Options struct {
	Dir   string
	Base  string
	Merge bool // one interleaved file instead of one file per mate
	Gzip  bool
}

// Paths returns the output file paths for opts: two for paired output, one
// when merging.
func Paths(opts Options) []string {
	ext := ".filtered.fastq"
	if opts.Gzip {
		ext += ".gz"
	}
	if opts.Merge {
		return []string{filepath.Join(opts.Dir, opts.Base+".merged"+ext)}
	}
	return []string{
		filepath.Join(opts.Dir, opts.Base+".1"+ext),
		filepath.Join(opts.Dir, opts.Base+".2"+ext),
	}
}

var (
	compressionExts = []string{".gz", ".bz2", ".zst"}
	fastqExts       = []string{".fastq", ".fq"}
	mateMarkers     = []string{"_R1_001", "_R1", ".R1", "_1", ".1"}
)

// BaseName derives an output base name from the mate 1 input path by
// removing the compression suffix, the FASTQ suffix and the mate marker.
func BaseName(path string) string {
	base := filepath.Base(path)
	if path == "-" || base == "." || base == string(filepath.Separator) {
		return "reads"
	}
	base = trimAny(base, compressionExts)
	base = trimAny(base, fastqExts)
	base = trimAny(base, mateMarkers)
	if base == "" {
		return "reads"
	}
	return base
}

func trimAny(s string, suffixes []string) string {
	lower := strings.ToLower(s)
	for _, suf := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suf)) && len(s) > len(suf) {
			return s[:len(s)-len(suf)]
		}
	}
	return s
}

// dest is one output file with its optional compressor.
type dest struct {
	path string
	f    *os.File
	gz   *pgzip.Writer
	w    *fastq.Writer
}

func create(path string, gzip bool) (*dest, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &fastq.OutputWriteError{Path: path, Err: err}
	}
	d := &dest{path: path, f: f}
	var w io.Writer = f
	if gzip {
		d.gz = pgzip.NewWriter(f)
		w = d.gz
	}
	d.w = fastq.NewWriter(w, path)
	return d, nil
}

func (d *dest) close() error {
	err := d.w.Flush()
	if d.gz != nil {
		if cerr := d.gz.Close(); cerr != nil && err == nil {
			err = &fastq.OutputWriteError{Path: d.path, Err: cerr}
		}
	}
	if cerr := d.f.Close(); cerr != nil && err == nil {
		err = &fastq.OutputWriteError{Path: d.path, Err: cerr}
	}
	return err
}

// Files is the set of open output files. It implements pairing.Sink.
type Files struct {
	dests []*dest
}

// Create opens the output files for opts. The directory must already exist.
func Create(opts Options) (*Files, error) {
	fs := &Files{}
	for _, p := range Paths(opts) {
		d, err := create(p, opts.Gzip)
		if err != nil {
			fs.Close()
			return nil, err
		}
		fs.dests = append(fs.dests, d)
	}
	return fs, nil
}

// WritePair writes mate 1 and mate 2 to their own files, or mate 1
// immediately followed by mate 2 when merging.
func (fs *Files) WritePair(r1, r2 *fastq.Record) error {
	w1, w2 := fs.dests[0].w, fs.dests[len(fs.dests)-1].w
	if err := w1.Write(r1); err != nil {
		return err
	}
	return w2.Write(r2)
}

// Paths returns the paths of the open files.
func (fs *Files) Paths() []string {
	paths := make([]string, len(fs.dests))
	for i, d := range fs.dests {
		paths[i] = d.path
	}
	return paths
}

// Close flushes and closes every file, returning the first failure.
func (fs *Files) Close() error {
	var err error
	for _, d := range fs.dests {
		if cerr := d.close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	fs.dests = nil
	return err
}
