package fastq

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWritesFourLines(t *testing.T) {
	reads := []*Record{
		{Header: "@SEQ_ID", Seq: "ACTG", Sep: "+", Qual: "!!!!"},
		{Header: "@SEQ_ID2", Seq: "TGCA", Sep: "+SEQ_ID2", Qual: "****"},
	}

	buf := &bytes.Buffer{}
	w := NewWriter(buf, "out.fastq")
	for _, r := range reads {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Flush())

	expected := "@SEQ_ID\nACTG\n+\n!!!!\n@SEQ_ID2\nTGCA\n+SEQ_ID2\n****\n"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, int64(2), w.Count())
}

func TestWriterRoundTrip(t *testing.T) {
	data := "@a\nACGTN\n+a\nIIII#\n@b\nTT\n+\n##\n"
	r := readerFor(t, data, 33)

	buf := &bytes.Buffer{}
	w := NewWriter(buf, "out.fastq")
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, data, buf.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("no space left on device") }

func TestWriterReportsOutputWriteError(t *testing.T) {
	w := NewWriter(brokenWriter{}, "full.fastq")
	require.NoError(t, w.Write(&Record{Header: "@r", Seq: "A", Sep: "+", Qual: "I"}), "buffered")

	err := w.Flush()
	var writeErr *OutputWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "full.fastq", writeErr.Path)
	assert.Contains(t, err.Error(), "no space left on device")
}
