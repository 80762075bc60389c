package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"

	"solexaFilter/internal/fastq"
	"solexaFilter/internal/filter"
	"solexaFilter/internal/output"
	"solexaFilter/internal/pairing"
)

// logName is the run log written next to the filtered reads.
const logName = "log"

type options struct {
	R1, R2    string
	OutDir    string
	Prefix    string
	Offset    int
	MinLength int
	Merge     bool
	Gzip      bool
	NoS35     bool
	NoNs      bool
	NoPolyN   bool
}

func (o options) filterConfig() filter.Config {
	return filter.Config{
		Offset:    o.Offset,
		MinLength: o.MinLength,
		S35:       !o.NoS35,
		Ns:        !o.NoNs,
		PolyN:     !o.NoPolyN,
	}
}

func (o options) outputOptions() output.Options {
	base := o.Prefix
	if base == "" {
		base = output.BaseName(o.R1)
	}
	return output.Options{Dir: o.OutDir, Base: base, Merge: o.Merge, Gzip: o.Gzip}
}

func Comma(value int64) string {
	str := strconv.FormatInt(value, 10)
	result := ""
	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(str[i]) + result
		count++
	}
	return result
}

// openMate opens one mate file as a record reader. The returned Lines must be
// closed by the caller.
func openMate(path string, offset int) (*fastq.Lines, *fastq.Reader, error) {
	lines, err := fastq.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return lines, fastq.NewReader(lines, path, offset), nil
}

// ProcessPairs filters the paired reads described by opts and writes the kept
// pairs into opts.OutDir. The summary is printed to stdout.
func ProcessPairs(opts options, stdout io.Writer) (stats pairing.Stats, err error) {
	startTime := time.Now()

	cfg := opts.filterConfig()
	if err := cfg.Validate(); err != nil {
		return stats, err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return stats, fmt.Errorf("creating output directory: %w", err)
	}
	logFile, err := os.Create(filepath.Join(opts.OutDir, logName))
	if err != nil {
		return stats, fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()
	logger := log.New(io.MultiWriter(stdout, logFile), "", log.LstdFlags)

	lines1, mate1, err := openMate(opts.R1, cfg.Offset)
	if err != nil {
		return stats, err
	}
	defer lines1.Close()
	lines2, mate2, err := openMate(opts.R2, cfg.Offset)
	if err != nil {
		return stats, err
	}
	defer lines2.Close()
	logger.Printf("Read 1: %s (%s)", opts.R1, lines1.Compression)
	logger.Printf("Read 2: %s (%s)", opts.R2, lines2.Compression)

	out, err := output.Create(opts.outputOptions())
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	stats, err = pairing.Run(mate1, mate2, out, pairing.Options{Filter: cfg, Logger: logger})
	if err != nil {
		logger.Printf("Aborted after %d pairs: %v", stats.Pairs, err)
		return stats, err
	}

	logSummary(logger, stats)
	for _, p := range out.Paths() {
		logger.Printf("Output: %s", p)
	}
	printSummary(stdout, stats, time.Since(startTime))
	return stats, nil
}

// logSummary records the per-filter breakdown in the run log.
func logSummary(logger *log.Logger, stats pairing.Stats) {
	for _, r := range filter.Reasons {
		c := stats.DroppedBy(r)
		logger.Printf("%s dropped reads: %d", r, c.Reads)
		logger.Printf("%s dropped bases: %d", r, c.Bases)
	}
	logger.Printf("Total reads: %d", stats.Total.Reads)
	logger.Printf("Total bases: %d", stats.Total.Bases)
	logger.Printf("Retained reads: %d (%.2f %%)", stats.Retained.Reads, stats.RetainedReadPct())
	logger.Printf("Retained bases: %d (%.2f %%)", stats.Retained.Bases, stats.RetainedBasePct())
}

func printSummary(w io.Writer, stats pairing.Stats, duration time.Duration) {
	green := color.New(color.FgHiGreen)
	magenta := color.New(color.FgHiMagenta)

	fmt.Fprintf(w, "\nTotal reads: %s\n", Comma(stats.Total.Reads))
	fmt.Fprintf(w, "Retained reads: %s\n", Comma(stats.Retained.Reads))
	green.Fprintf(w, "Percentage of retained reads: %.2f%%\n", stats.RetainedReadPct())
	fmt.Fprintln(w)
	for _, r := range filter.Reasons {
		magenta.Fprintf(w, "%s dropped reads: %s\n", r, Comma(stats.DroppedBy(r).Reads))
	}
	fmt.Fprintf(w, "\nApplication execution time: %s\n", duration)
}
