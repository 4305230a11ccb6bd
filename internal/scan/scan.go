// internal/scan/scan.go
package scan

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"panelidx/internal/fasta"
	"panelidx/internal/genome"
	"panelidx/internal/kmer"
	"panelidx/internal/panel"
)

// PartialMap is one chromosome's contribution: every coordinate whose window
// encodes a panel key, both orientations, in scan-position order.
type PartialMap map[kmer.Key][]genome.Coord

const (
	keyMask = uint64(1)<<(2*kmer.K) - 1
	rcShift = 2 * (kmer.K - 1)
)

// ScanChromosome slides a K-wide window over seq and records the coordinate
// of every window (forward and reverse-complement) whose key is in
// panelKeys. Keys outside the set are skipped without allocation; windows
// containing an ambiguous base are never tested.
//
// Keys are maintained incrementally: appending base c shifts the forward
// register left and the reverse-complement register right (complement of a
// 2-bit code is code^1), so each base is touched once. The result is
// identical to encoding every window from scratch.
//
// The function reads only seq and the frozen panelKeys set and writes only
// its own result map, so calls for different chromosomes are safe to run
// concurrently.
func ScanChromosome(chromID int16, seq []byte, panelKeys *roaring64.Bitmap) PartialMap {
	out := make(PartialMap)
	var (
		fwd, rc uint64
		lastBad int // 1-based position of the most recent non-ACGT base
	)
	for j := 1; j <= len(seq); j++ {
		c := kmer.Code(seq[j-1])
		if c < 0 {
			lastBad = j
			c = 0
		}
		fwd = (fwd<<2 | uint64(c)) & keyMask
		rc = rc>>2 | uint64(c^1)<<rcShift
		if j < kmer.K {
			continue
		}
		i := j - kmer.K + 1 // window start, 1-based
		if lastBad >= i {
			continue
		}
		if panelKeys.Contains(fwd) {
			k := kmer.Key(fwd)
			out[k] = append(out[k], genome.Coord{Contig: chromID, Pos: int32(i), Strand: genome.Forward})
		}
		if panelKeys.Contains(rc) {
			k := kmer.Key(rc)
			out[k] = append(out[k], genome.Coord{Contig: chromID, Pos: int32(i + kmer.K - 1), Strand: genome.Reverse})
		}
	}
	return out
}

// ScanReference fans one ScanChromosome task per reference record out to a
// bounded worker group, waits for all of them, and merges the partial maps
// in chromosome order. The result holds an entry for every usable panel key,
// including keys with no genome-wide match (empty, non-nil list), so "never
// seen elsewhere" is distinguishable from "not computed".
//
// threads <= 0 means one worker per CPU. Results are identical for any
// worker count; a cancelled context aborts the whole scan.
func ScanReference(ctx context.Context, ref []fasta.Record, idx *panel.Index, threads int) (map[kmer.Key][]genome.Coord, error) {
	if len(ref) > math.MaxInt16 {
		return nil, fmt.Errorf("scan: %d reference records exceed the contig id range", len(ref))
	}
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	keys := idx.FilterSet()

	parts := make([]PartialMap, len(ref))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := range ref {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = ScanChromosome(int16(i), ref[i].Seq, keys)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[kmer.Key][]genome.Coord, keys.GetCardinality())
	it := keys.Iterator()
	for it.HasNext() {
		out[kmer.Key(it.Next())] = []genome.Coord{}
	}
	for _, p := range parts {
		for k, coords := range p {
			out[k] = append(out[k], coords...)
		}
	}
	return out, nil
}
