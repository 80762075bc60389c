package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"solexaFilter/internal/filter"
)

const version = "1.2"

// runError marks failures that happened while processing reads, as opposed to
// command-line usage mistakes.
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func newRootCmd(stdout io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "solexaFilter",
		Short:   "Filter paired-end FASTQ reads with the s35, Ns and polyN filters",
		Version: version,
		Long: `Filter paired-end FASTQ reads. A pair is kept only if both mates pass:
  s35    the first 25 of the first 35 bases must have quality >= 30
         (reads shorter than 35 bases are discarded)
  Ns     no ambiguous base calls
  polyN  no single base (A, C, G, T) makes up 85% or more of the read
Reads shorter than the minimum length are always discarded.
Inputs may be plain, gzip, bzip2 or zstd compressed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ProcessPairs(opts, stdout); err != nil {
				return &runError{err: err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.R1, "r1", "1", "", "read 1 in FASTQ format, plain, gzip, bzip2 or zstd (required)")
	flags.StringVarP(&opts.R2, "r2", "2", "", "read 2 in FASTQ format, plain, gzip, bzip2 or zstd (required)")
	flags.IntVarP(&opts.Offset, "quality-offset", "Q", 0, "quality score offset, 33 or 64 (required)")
	flags.IntVarP(&opts.MinLength, "min-length", "r", 1, "minimum read length to be retained")
	flags.StringVarP(&opts.OutDir, "outdir", "o", "", "output directory (required)")
	flags.StringVarP(&opts.Prefix, "prefix", "p", "", "output file base name (default: derived from read 1)")
	flags.BoolVarP(&opts.Merge, "merge", "m", false, "write read 1 and read 2 interleaved into one file")
	flags.BoolVar(&opts.Gzip, "gzip", false, "gzip the output files")
	flags.BoolVarP(&opts.NoS35, "no-s35", "z", false, "turn off s35 filtering")
	flags.BoolVarP(&opts.NoNs, "no-ns", "x", false, "turn off Ns filtering")
	flags.BoolVarP(&opts.NoPolyN, "no-polyn", "v", false, "turn off polyN filtering")

	_ = cmd.MarkFlagRequired("r1")
	_ = cmd.MarkFlagRequired("r2")
	_ = cmd.MarkFlagRequired("quality-offset")
	_ = cmd.MarkFlagRequired("outdir")

	return cmd
}

// exitCode is 2 for usage and configuration errors, 1 for processing errors.
func exitCode(err error) int {
	var cfgErr *filter.InvalidConfigurationError
	var runErr *runError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &cfgErr):
		return 2
	case errors.As(err, &runErr):
		return 1
	}
	return 2
}

func main() {
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		if exitCode(err) == 2 {
			fmt.Fprintln(os.Stderr, cmd.UsageString())
		}
		os.Exit(exitCode(err))
	}
}
