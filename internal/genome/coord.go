// internal/genome/coord.go
package genome

import (
	"fmt"
	"math"
)

// Strand values. Positions are always stated in forward-strand coordinates;
// Reverse marks a k-mer read as the reverse complement of the stored bases.
const (
	Forward int8 = 1
	Reverse int8 = -1
)

// Reserved contig ids. Real contigs are always >= 0.
const (
	duplicateContig int16 = -1
	unknownContig   int16 = -2
)

// Coord is an immutable genomic location: a contig (chromosome index, or a
// synthetic panel-region id), a 1-based position, and a strand.
//
// The two sentinel states (duplicate-key, key-unknown) are represented by
// reserved negative contigs and are only produced by Duplicate and Unknown;
// Distance refuses to do arithmetic on them.
type Coord struct {
	Contig int16
	Pos    int32
	Strand int8
}

// New validates the declared integer widths and builds a located Coord.
// Out-of-range contig/pos values are rejected, never truncated.
func New(contig, pos int, strand int8) (Coord, error) {
	if contig < 0 || contig > math.MaxInt16 {
		return Coord{}, fmt.Errorf("genome: contig %d out of range [0, %d]", contig, math.MaxInt16)
	}
	if pos < math.MinInt32 || pos > math.MaxInt32 {
		return Coord{}, fmt.Errorf("genome: pos %d out of int32 range", pos)
	}
	if strand != Forward && strand != Reverse {
		return Coord{}, fmt.Errorf("genome: strand must be +1 or -1, got %d", strand)
	}
	return Coord{Contig: int16(contig), Pos: int32(pos), Strand: strand}, nil
}

// Duplicate returns the sentinel for a key seen at more than one panel
// location and therefore unusable as a locator.
func Duplicate() Coord { return Coord{Contig: duplicateContig} }

// Unknown returns the sentinel for a key not present in the index.
func Unknown() Coord { return Coord{Contig: unknownContig} }

// Located reports whether c is a real location rather than a sentinel.
func (c Coord) Located() bool { return c.Contig >= 0 }

// IsDuplicate reports the duplicate-key sentinel.
func (c Coord) IsDuplicate() bool { return c.Contig == duplicateContig }

// IsUnknown reports the key-unknown sentinel.
func (c Coord) IsUnknown() bool { return c.Contig == unknownContig }

// Distance returns the signed position difference a.Pos - b.Pos.
// It is defined only for two located coordinates on the same contig and
// strand; ok is false otherwise.
func Distance(a, b Coord) (d int32, ok bool) {
	if !a.Located() || !b.Located() {
		return 0, false
	}
	if a.Contig != b.Contig || a.Strand != b.Strand {
		return 0, false
	}
	return a.Pos - b.Pos, true
}

func (c Coord) String() string {
	switch {
	case c.IsDuplicate():
		return "dup"
	case c.IsUnknown():
		return "unknown"
	case c.Strand == Reverse:
		return fmt.Sprintf("%d:%d:-", c.Contig, c.Pos)
	default:
		return fmt.Sprintf("%d:%d:+", c.Contig, c.Pos)
	}
}
