package pairing

import "solexaFilter/internal/filter"

// Count is a number of reads and the bases they carry.
type Count struct {
	Reads int64
	Bases int64
}

func (c *Count) add(r1, r2 int) {
	c.Reads += 2
	c.Bases += int64(r1 + r2)
}

// Stats accumulates per-run totals. A dropped pair is charged to the earliest
// failing filter over both mates.
type Stats struct {
	Pairs    int64
	Total    Count
	Retained Count
	Dropped  map[filter.Reason]*Count
}

func newStats() Stats {
	s := Stats{Dropped: make(map[filter.Reason]*Count, len(filter.Reasons))}
	for _, r := range filter.Reasons {
		s.Dropped[r] = &Count{}
	}
	return s
}

// DroppedBy returns the drop count for reason, zero if none were dropped.
func (s Stats) DroppedBy(r filter.Reason) Count {
	if c, ok := s.Dropped[r]; ok {
		return *c
	}
	return Count{}
}

// RetainedReadPct is the percentage of reads kept, 0 for an empty run.
func (s Stats) RetainedReadPct() float64 {
	return pct(s.Retained.Reads, s.Total.Reads)
}

// RetainedBasePct is the percentage of bases kept, 0 for an empty run.
func (s Stats) RetainedBasePct() float64 {
	return pct(s.Retained.Bases, s.Total.Bases)
}

func pct(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
