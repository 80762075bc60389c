// Package pairing drives two FASTQ readers in lockstep and keeps a pair only
// when both mates pass every filter.
package pairing

import (
	"errors"
	"fmt"
	"io"
	"log"

	"solexaFilter/internal/fastq"
	"solexaFilter/internal/filter"
)

// firstReport is the read count of the first progress line. Later lines
// are logged each time the count doubles.
const firstReport = 2000

// Source yields records until io.EOF. *fastq.Reader implements it.
type Source interface {
	Read() (*fastq.Record, error)
}

// Sink receives each kept pair, in input order.
type Sink interface {
	WritePair(r1, r2 *fastq.Record) error
}

// Options configures a run.
type Options struct {
	Filter filter.Config
	Logger *log.Logger // nil disables progress logging
}

// UnpairedInputError reports that one mate file ended before the other.
type UnpairedInputError struct {
	Pair      int64 // 1-based index of the pair that could not be completed
	Exhausted int   // mate (1 or 2) that ran out first
}

func (e *UnpairedInputError) Error() string {
	return fmt.Sprintf("mate %d ended at pair %d while mate %d has more reads", e.Exhausted, e.Pair, 3-e.Exhausted)
}

// Decision is the outcome for one pair.
type Decision struct {
	Mate1, Mate2 filter.Verdict
	Kept         bool
}

// Reason is the earliest failing filter across both mates, or None.
func (d Decision) Reason() filter.Reason {
	r1, r2 := d.Mate1.Reason, d.Mate2.Reason
	switch {
	case r1 == filter.None:
		return r2
	case r2 == filter.None:
		return r1
	case r2 < r1:
		return r2
	}
	return r1
}

// Decide evaluates both mates independently. There is no partial retention.
func Decide(r1, r2 *fastq.Record, cfg filter.Config) Decision {
	v1 := filter.Evaluate(r1, cfg)
	v2 := filter.Evaluate(r2, cfg)
	return Decision{Mate1: v1, Mate2: v2, Kept: v1.Passed && v2.Passed}
}

// Run filters pairs from mate1 and mate2 into sink until both sources are
// exhausted together. It returns the accumulated Stats even on error.
func Run(mate1, mate2 Source, sink Sink, opts Options) (Stats, error) {
	if err := opts.Filter.Validate(); err != nil {
		return Stats{}, err
	}

	stats := newStats()
	report := int64(firstReport)
	for {
		r1, err1 := mate1.Read()
		if err1 != nil && !errors.Is(err1, io.EOF) {
			return stats, err1
		}
		r2, err2 := mate2.Read()
		if err2 != nil && !errors.Is(err2, io.EOF) {
			return stats, err2
		}

		eof1, eof2 := err1 != nil, err2 != nil
		if eof1 && eof2 {
			return stats, nil
		}
		if eof1 || eof2 {
			mate := 1
			if eof2 {
				mate = 2
			}
			return stats, &UnpairedInputError{Pair: stats.Pairs + 1, Exhausted: mate}
		}

		stats.Pairs++
		stats.Total.add(r1.Len(), r2.Len())
		if opts.Logger != nil && stats.Total.Reads%report == 0 {
			opts.Logger.Printf("Processed: %d reads", stats.Total.Reads)
			report *= 2
		}

		d := Decide(r1, r2, opts.Filter)
		if !d.Kept {
			stats.Dropped[d.Reason()].add(r1.Len(), r2.Len())
			continue
		}
		if err := sink.WritePair(r1, r2); err != nil {
			return stats, err
		}
		stats.Retained.add(r1.Len(), r2.Len())
	}
}
