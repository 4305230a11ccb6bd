// internal/output/rows.go
package output

import (
	"sort"

	"panelidx/internal/index"
	"panelidx/internal/kmer"
	"panelidx/pkg/api"
)

// BuildReport summarizes the bundle per region, in contig id order.
// Counts are per window orientation: a window whose forward and
// reverse-complement keys are both unique contributes two unique keys.
// Off-target hits are reference occurrences beyond the one the region itself
// accounts for (a unique key always matches its own locus at least once).
func BuildReport(b *index.Bundle) []api.RegionReportV1 {
	ids := make([]int, 0, len(b.Regions))
	for id := range b.Regions {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	rows := make([]api.RegionReportV1, 0, len(ids))
	for _, idInt := range ids {
		id := int16(idInt)
		r := b.Regions[id]
		seq := []byte(b.RegionSeqs[id])

		row := api.RegionReportV1{
			RegionID: idInt,
			Name:     r.Name,
			Chrom:    r.Chrom,
			Start:    r.Start,
			End:      r.End,
			Length:   len(seq),
		}
		if len(seq) >= kmer.K {
			row.Windows = len(seq) - kmer.K + 1
		}
		for i := 0; i+kmer.K <= len(seq); i++ {
			win := seq[i : i+kmer.K]
			fwd := kmer.Encode(win)
			tally(b, fwd, &row)
			tally(b, revCompKey(fwd), &row)
		}
		rows = append(rows, row)
	}
	return rows
}

func tally(b *index.Bundle, k kmer.Key, row *api.RegionReportV1) {
	if !k.Valid() {
		return
	}
	c, ok := b.Panel[k]
	switch {
	case !ok:
		// Not reachable for keys re-derived from the region sequence.
	case c.IsDuplicate():
		row.DuplicateKeys++
	case c.Located():
		row.UniqueKeys++
		if hits := b.Reference[k]; len(hits) > 1 {
			row.OffTargetHits += len(hits) - 1
		}
	}
}

// revCompKey derives the reverse-complement key without rebuilding the
// window: reverse the 2-bit codes and complement each (code^1).
func revCompKey(k kmer.Key) kmer.Key {
	if !k.Valid() {
		return kmer.Invalid
	}
	v := uint64(k)
	var out uint64
	for i := 0; i < kmer.K; i++ {
		out = out<<2 | ((v & 3) ^ 1)
		v >>= 2
	}
	return kmer.Key(out)
}
