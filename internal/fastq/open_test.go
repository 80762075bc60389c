package fastq

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneRecord = "@r1\nACGT\n+\nIIII\n"

// bzip2 -c of oneRecord.
var oneRecordBz2 = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0xaf, 0x85, 0x72, 0x8b, 0x00, 0x00,
	0x03, 0xde, 0x80, 0x40, 0x10, 0x00, 0x08, 0x20, 0x00, 0x68, 0xa0, 0x04, 0x00, 0x10, 0x00, 0x20,
	0x00, 0x22, 0x01, 0xa3, 0x4d, 0x08, 0x06, 0x9a, 0x68, 0x3d, 0x20, 0x05, 0x0c, 0x78, 0xbd, 0x25,
	0xe2, 0xee, 0x48, 0xa7, 0x0a, 0x12, 0x15, 0xf0, 0xae, 0x51, 0x60,
}

func writePlain(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeGzip(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := pgzip.NewWriter(f)
	_, err = gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
	return path
}

func writeZstd(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func readAll(t *testing.T, l *Lines) []string {
	t.Helper()
	var got []string
	for l.Scan() {
		got = append(got, l.Text())
	}
	require.NoError(t, l.Err())
	return got
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		want   Compression
	}{
		{"Gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, Gzip},
		{"Bzip2", []byte("BZh9"), Bzip2},
		{"Zstd", []byte{0x28, 0xb5, 0x2f, 0xfd}, Zstd},
		{"FastqText", []byte("@r1\n"), Plain},
		{"Empty", nil, Plain},
		{"ShortGzipPrefix", []byte{0x1f}, Plain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sniff(tc.prefix))
		})
	}
}

func TestOpenDetectsCompression(t *testing.T) {
	want := []string{"@r1", "ACGT", "+", "IIII"}

	tests := []struct {
		name string
		path string
		want Compression
	}{
		{"Plain", writePlain(t, "reads.fastq", []byte(oneRecord)), Plain},
		{"Gzip", writeGzip(t, "reads.fastq.gz", oneRecord), Gzip},
		{"Bzip2", writePlain(t, "reads.fastq.bz2", oneRecordBz2), Bzip2},
		{"Zstd", writeZstd(t, "reads.fastq.zst", oneRecord), Zstd},
		// detection ignores the file extension
		{"GzipWithoutSuffix", writeGzip(t, "reads.fastq", oneRecord), Gzip},
		{"PlainWithGzSuffix", writePlain(t, "reads.fq.gz", []byte(oneRecord)), Plain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Open(tc.path)
			require.NoError(t, err)
			defer l.Close()

			assert.Equal(t, tc.want, l.Compression)
			assert.Equal(t, want, readAll(t, l))
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.fastq"))
	require.Error(t, err)

	var unreadable *UnreadableInputError
	require.True(t, errors.As(err, &unreadable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpenCorruptGzip(t *testing.T) {
	path := writePlain(t, "bad.gz", []byte{0x1f, 0x8b, 0x00})
	_, err := Open(path)

	var unreadable *UnreadableInputError
	assert.True(t, errors.As(err, &unreadable))
}

func TestLinesStripCarriageReturn(t *testing.T) {
	l, err := Open(writePlain(t, "crlf.fastq", []byte("@r1\r\nACGT\r\n+\r\nIIII\r\n")))
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, []string{"@r1", "ACGT", "+", "IIII"}, readAll(t, l))
	assert.Equal(t, 4, l.Line())
}

func TestLinesCloseIsIdempotent(t *testing.T) {
	l, err := Open(writeGzip(t, "reads.fq.gz", oneRecord))
	require.NoError(t, err)

	assert.True(t, l.Scan())
	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
	assert.False(t, l.Scan(), "no lines after Close")
}

func TestOpenEmptyFile(t *testing.T) {
	l, err := Open(writePlain(t, "empty.fastq", nil))
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, Plain, l.Compression)
	assert.Empty(t, readAll(t, l))
}
