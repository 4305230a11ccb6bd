// internal/panel/region.go
package panel

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Region is one target-panel interval: 1-based inclusive coordinates within
// the named chromosome. Each region gets a synthetic sequential contig id
// that decouples panel-local coordinates from chromosome coordinates.
type Region struct {
	Chrom string
	Start int
	End   int
	Name  string
}

// WarnFunc receives non-fatal loader diagnostics (skipped lines).
type WarnFunc func(format string, a ...any)

// ParseRegions reads a whitespace/tab-delimited region file:
// one region per line, `chrom start end name`. Blank lines, #-comments and
// lines with fewer than 4 fields are skipped (the latter with a warning);
// unparseable start/end values are an error with file:line context.
func ParseRegions(path string, warn WarnFunc) ([]Region, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("region file: %w", err)
	}
	defer func() { _ = fh.Close() }()

	var list []Region
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 4 {
			if warn != nil {
				warn("%s:%d: skipping line with %d field(s)", path, ln, len(f))
			}
			continue
		}
		start, err := strconv.Atoi(f[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d bad start: %w", path, ln, err)
		}
		end, err := strconv.Atoi(f[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d bad end: %w", path, ln, err)
		}
		list = append(list, Region{Chrom: f[0], Start: start, End: end, Name: f[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}
