// Package fastq decodes, parses and writes FASTQ records.
package fastq

// Record is one FASTQ entry. Header and Sep hold the raw '@' and '+' lines so
// they are written back exactly as read.
type Record struct {
	Header string
	Seq    string
	Sep    string
	Qual   string
	Offset int // 33 or 64
}

// Len returns the read length.
func (r *Record) Len() int { return len(r.Seq) }

// Score returns the Phred quality score of base i.
func (r *Record) Score(i int) int {
	return int(r.Qual[i]) - r.Offset
}
