package fastq

import "fmt"

// UnreadableInputError reports an input that could not be opened or read.
type UnreadableInputError struct {
	Path string
	Err  error
}

func (e *UnreadableInputError) Error() string {
	return fmt.Sprintf("unreadable input %s: %v", e.Path, e.Err)
}

func (e *UnreadableInputError) Unwrap() error { return e.Err }

// MalformedRecordError reports a FASTQ structural violation. Line is 1-based.
type MalformedRecordError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("invalid fastq file %s (line %d): %s", e.Path, e.Line, e.Reason)
}

// OutputWriteError reports a failed write, flush or close on an output file.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }
