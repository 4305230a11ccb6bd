// internal/panel/index.go
package panel

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"panelidx/internal/dna"
	"panelidx/internal/genome"
	"panelidx/internal/kmer"
)

// InsertResult reports what InsertOrMarkDuplicate did with a key.
type InsertResult int

const (
	// Inserted: the key was new and now holds the given coordinate.
	Inserted InsertResult = iota
	// Collided: the key was already present; its value is now the
	// duplicate sentinel, permanently.
	Collided
	// AmbiguousKey: the key was the reserved invalid key. It is still
	// inserted (all ambiguous windows share it, so a second ambiguous
	// window anywhere collides it into the duplicate sentinel).
	AmbiguousKey
)

// Index maps each k-mer key observed across all panel regions to exactly one
// coordinate, or to the duplicate sentinel once the key has been seen twice.
// It is built single-threaded, then frozen and read concurrently during the
// genome-wide scan.
type Index struct {
	m map[kmer.Key]genome.Coord
}

func NewIndex() *Index {
	return &Index{m: make(map[kmer.Key]genome.Coord, 1<<12)}
}

// InsertOrMarkDuplicate records coord under key. A key seen for the second
// time (from any region, any orientation) is overwritten with the duplicate
// sentinel and stays that way.
func (x *Index) InsertOrMarkDuplicate(key kmer.Key, coord genome.Coord) InsertResult {
	if _, seen := x.m[key]; seen {
		x.m[key] = genome.Duplicate()
		return Collided
	}
	x.m[key] = coord
	if !key.Valid() {
		return AmbiguousKey
	}
	return Inserted
}

// IndexRegion slides a K-wide window over the region's sequence and inserts
// both orientations of every window. For a window starting at 1-based i the
// forward coordinate is (regionID, i, +1) and the reverse-complement reading
// of the same bases is (regionID, i+K-1, -1). Returns the collision count.
func (x *Index) IndexRegion(seq []byte, regionID int16) (collisions int) {
	n := len(seq)
	for i := 1; i+kmer.K-1 <= n; i++ {
		win := seq[i-1 : i-1+kmer.K]

		fwd := kmer.Encode(win)
		fc := genome.Coord{Contig: regionID, Pos: int32(i), Strand: genome.Forward}
		if x.InsertOrMarkDuplicate(fwd, fc) == Collided {
			collisions++
		}

		rev := kmer.Encode(dna.RevComp(win))
		rc := genome.Coord{Contig: regionID, Pos: int32(i + kmer.K - 1), Strand: genome.Reverse}
		if x.InsertOrMarkDuplicate(rev, rc) == Collided {
			collisions++
		}
	}
	return collisions
}

// Get returns the coordinate stored for key, or the unknown sentinel.
func (x *Index) Get(key kmer.Key) genome.Coord {
	c, ok := x.m[key]
	if !ok {
		return genome.Unknown()
	}
	return c
}

// Len returns the number of distinct keys (sentinel-valued entries included).
func (x *Index) Len() int { return len(x.m) }

// Map exposes the underlying key->coordinate map (for serialization).
func (x *Index) Map() map[kmer.Key]genome.Coord { return x.m }

// FromMap rebuilds an Index around an existing map (deserialization).
func FromMap(m map[kmer.Key]genome.Coord) *Index { return &Index{m: m} }

// FilterSet returns the frozen set of usable keys for genome-wide scanning:
// valid keys whose stored coordinate is a real location. Duplicate-marked
// keys and the ambiguous key never enter the set.
func (x *Index) FilterSet() *roaring64.Bitmap {
	bm := roaring64.New()
	for k, c := range x.m {
		if k.Valid() && c.Located() {
			bm.Add(uint64(k))
		}
	}
	return bm
}
