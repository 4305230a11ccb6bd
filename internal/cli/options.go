// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"panelidx/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	RefDir     string
	RegionFile string

	// Performance
	Threads int

	// Cache
	NoCache bool

	// Output
	Output string
	Header bool // true unless --no-header
	Quiet  bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: panel k-mer genome index

Builds (or loads from cache) a k-mer index mapping a target panel's 16-mers
to their coordinates, scans the whole reference for off-target occurrences,
and reports per-region uniqueness.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Inputs
	fs.StringVar(&opt.RefDir, "reference", "", "reference directory with per-chromosome .fa files [*]")
	fs.StringVar(&opt.RegionFile, "regions", "", "tab-delimited region file: chrom start end name [*]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of scan workers (0 = all CPUs) [0]")

	// Cache
	fs.BoolVar(&opt.NoCache, "no-cache", false, "always rebuild; do not read or write the cache file [false]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json [text]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	if opt.RefDir == "" {
		return opt, errors.New("--reference is required")
	}
	if opt.RegionFile == "" {
		return opt, errors.New("--regions is required")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}
