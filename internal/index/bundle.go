// internal/index/bundle.go
package index

import (
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"panelidx/internal/genome"
	"panelidx/internal/kmer"
	"panelidx/internal/panel"
)

// Bundle is the complete persisted index: the region table, each region's
// extracted sequence, the panel key->coordinate map, and the reference-wide
// key->coordinate-list map.
type Bundle struct {
	Regions    map[int16]panel.Region
	RegionSeqs map[int16]string
	Panel      map[kmer.Key]genome.Coord
	Reference  map[kmer.Key][]genome.Coord
}

// On-disk framing: 4-byte magic, uint16 format version, then a zstd stream
// wrapping the gob-encoded Bundle.
var bundleMagic = [4]byte{'P', 'I', 'D', 'X'}

const bundleVersion uint16 = 1

// EncodeTo writes the bundle as one unit.
func (b *Bundle) EncodeTo(w io.Writer) error {
	if _, err := w.Write(bundleMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, bundleVersion); err != nil {
		return err
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(zw).Encode(b); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode bundle: %w", err)
	}
	return zw.Close()
}

// DecodeFrom reads a bundle previously written by EncodeTo. Any framing or
// decoding problem is an error; there is no partial read.
func DecodeFrom(r io.Reader) (*Bundle, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("read bundle header: %w", err)
	}
	if magic != bundleMagic {
		return nil, fmt.Errorf("not an index bundle (magic %q)", magic[:])
	}
	var ver uint16
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		return nil, fmt.Errorf("read bundle version: %w", err)
	}
	if ver != bundleVersion {
		return nil, fmt.Errorf("unsupported bundle version %d (want %d)", ver, bundleVersion)
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	var b Bundle
	if err := gob.NewDecoder(zr).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &b, nil
}
