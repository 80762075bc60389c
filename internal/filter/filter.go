// Package filter decides whether a single read is kept. Filters run in a fixed
// order (s35, Ns, polyN, length) and the first failure is the verdict.
package filter

import "solexaFilter/internal/fastq"

const (
	S35Window   = 35   // read must be at least this long
	S35Core     = 25   // leading bases that must all be high quality
	S35MinScore = 30   // Phred score required in the core
	PolyNRatio  = 0.85 // dominant base fraction that marks low complexity
)

// polyN threshold as an integer percentage, to avoid float rounding.
const polyNPercent = 85

// Reason names the filter that discarded a read.
type Reason int

// Reasons are ordered by evaluation order, so a lower value fails earlier.
const (
	None Reason = iota
	S35
	Ns
	PolyN
	Length
)

// Reasons lists the discard reasons in evaluation order.
var Reasons = []Reason{S35, Ns, PolyN, Length}

func (r Reason) String() string {
	switch r {
	case S35:
		return "s35"
	case Ns:
		return "Ns"
	case PolyN:
		return "polyN"
	case Length:
		return "length"
	default:
		return "none"
	}
}

// Verdict is the outcome of filtering one read.
type Verdict struct {
	Passed bool
	Reason Reason
}

var pass = Verdict{Passed: true, Reason: None}

func fail(r Reason) Verdict { return Verdict{Passed: false, Reason: r} }

// Evaluate runs every enabled filter on rec and stops at the first failure.
// The length filter is always applied.
func Evaluate(rec *fastq.Record, cfg Config) Verdict {
	switch {
	case cfg.S35 && !PassS35(rec):
		return fail(S35)
	case cfg.Ns && !PassNs(rec.Seq):
		return fail(Ns)
	case cfg.PolyN && !PassPolyN(rec.Seq):
		return fail(PolyN)
	case !PassLength(rec.Seq, cfg.MinLength):
		return fail(Length)
	}
	return pass
}

// PassS35 requires at least S35Window bases, and a score of at least
// S35MinScore on each of the first S35Core bases.
func PassS35(rec *fastq.Record) bool {
	if rec.Len() < S35Window {
		return false
	}
	for i := 0; i < S35Core; i++ {
		if rec.Score(i) < S35MinScore {
			return false
		}
	}
	return true
}

// PassNs rejects any ambiguous base call, in either case.
func PassNs(seq string) bool {
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'N' || seq[i] == 'n' {
			return false
		}
	}
	return true
}

// PassPolyN rejects reads where one of A, C, G, T makes up PolyNRatio or
// more of the read length. N calls count toward the length only.
func PassPolyN(seq string) bool {
	if len(seq) == 0 {
		return true
	}
	var counts [4]int
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'a':
			counts[0]++
		case 'C', 'c':
			counts[1]++
		case 'G', 'g':
			counts[2]++
		case 'T', 't':
			counts[3]++
		}
	}
	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	return top*100 < len(seq)*polyNPercent
}

// PassLength is inclusive: a read of exactly minLen bases passes.
func PassLength(seq string, minLen int) bool {
	return len(seq) >= minLen
}
