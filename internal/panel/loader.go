// internal/panel/loader.go
package panel

import (
	"fmt"
	"math"

	"panelidx/internal/fasta"
)

// BuildResult is the panel half of an index build: the region table keyed by
// synthetic contig id, each region's extracted sequence, and the panel index.
type BuildResult struct {
	Regions    map[int16]Region
	RegionSeqs map[int16]string
	Panel      *Index
}

// Build parses the region file, loads each referenced chromosome, slices out
// every region and feeds both orientations of all its k-mer windows into a
// fresh panel Index. It also returns the full ordered reference, which the
// caller hands to the genome-wide scanner.
//
// A chromosome that cannot be loaded, or a region outside its chromosome's
// bounds, aborts the whole build; no partial index is produced.
func Build(refDir, regionPath string, warn WarnFunc) (*BuildResult, []fasta.Record, error) {
	ref, err := fasta.LoadReference(refDir)
	if err != nil {
		return nil, nil, err
	}

	regions, err := ParseRegions(regionPath, warn)
	if err != nil {
		return nil, nil, err
	}
	if len(regions) > math.MaxInt16 {
		return nil, nil, fmt.Errorf("panel: %d regions exceed the contig id range", len(regions))
	}

	// Sequential contig ids, grouped by chromosome in order of first
	// appearance in the region file.
	var chromOrder []string
	byChrom := make(map[string][]int16)
	res := &BuildResult{
		Regions:    make(map[int16]Region, len(regions)),
		RegionSeqs: make(map[int16]string, len(regions)),
		Panel:      NewIndex(),
	}
	for i, r := range regions {
		id := int16(i)
		res.Regions[id] = r
		if _, seen := byChrom[r.Chrom]; !seen {
			chromOrder = append(chromOrder, r.Chrom)
		}
		byChrom[r.Chrom] = append(byChrom[r.Chrom], id)
	}

	for _, chrom := range chromOrder {
		rec, err := fasta.LoadChr(refDir, chrom)
		if err != nil {
			return nil, nil, err
		}
		for _, id := range byChrom[chrom] {
			r := res.Regions[id]
			if r.Start < 1 || r.End < r.Start || r.End > len(rec.Seq) {
				return nil, nil, fmt.Errorf("region %s (%s:%d-%d): outside chromosome bounds (len %d)",
					r.Name, r.Chrom, r.Start, r.End, len(rec.Seq))
			}
			sub := rec.Seq[r.Start-1 : r.End]
			res.Panel.IndexRegion(sub, id)
			res.RegionSeqs[id] = string(sub)
		}
	}
	return res, ref, nil
}
