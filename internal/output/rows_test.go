// internal/output/rows_test.go
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelidx/internal/dna"
	"panelidx/internal/genome"
	"panelidx/internal/index"
	"panelidx/internal/kmer"
	"panelidx/internal/panel"
	"panelidx/pkg/api"
)

func TestRevCompKey(t *testing.T) {
	for _, s := range []string{"AAAAAAAACCCCCCCC", "ACGGTCAATGCTAGCT", "GGGGGGGGGGGGGGGG"} {
		want := kmer.Encode(dna.RevComp([]byte(s)))
		assert.Equal(t, want, revCompKey(kmer.Encode([]byte(s))), s)
	}
	assert.Equal(t, kmer.Invalid, revCompKey(kmer.Invalid))
}

func testBundle() *index.Bundle {
	seq := "AAAAAAAACCCCCCCCG" // 17 bp: two windows
	fk1 := kmer.Encode([]byte(seq[0:16]))
	rk1 := kmer.Encode(dna.RevComp([]byte(seq[0:16])))
	fk2 := kmer.Encode([]byte(seq[1:17]))
	rk2 := kmer.Encode(dna.RevComp([]byte(seq[1:17])))

	loc := func(pos int32, strand int8) genome.Coord {
		return genome.Coord{Contig: 0, Pos: pos, Strand: strand}
	}
	return &index.Bundle{
		Regions:    map[int16]panel.Region{0: {Chrom: "chr1", Start: 101, End: 117, Name: "geneA"}},
		RegionSeqs: map[int16]string{0: seq},
		Panel: map[kmer.Key]genome.Coord{
			fk1: loc(1, genome.Forward),
			rk1: loc(16, genome.Reverse),
			fk2: loc(2, genome.Forward),
			rk2: loc(17, genome.Reverse),
		},
		Reference: map[kmer.Key][]genome.Coord{
			fk1: {loc(101, genome.Forward), {Contig: 3, Pos: 500, Strand: genome.Forward}},
			rk1: {loc(116, genome.Reverse)},
			fk2: {loc(102, genome.Forward)},
			rk2: {loc(117, genome.Reverse)},
		},
	}
}

func TestBuildReport(t *testing.T) {
	rows := BuildReport(testBundle())
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "geneA", r.Name)
	assert.Equal(t, 17, r.Length)
	assert.Equal(t, 2, r.Windows)
	assert.Equal(t, 4, r.UniqueKeys)
	assert.Zero(t, r.DuplicateKeys)
	assert.Equal(t, 1, r.OffTargetHits, "one extra occurrence beyond the region's own")
}

func TestWriteText(t *testing.T) {
	rows := BuildReport(testBundle())
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, rows, true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "region_id\t"))
	assert.Contains(t, lines[1], "geneA")

	buf.Reset()
	require.NoError(t, WriteText(&buf, rows, false))
	assert.NotContains(t, buf.String(), "region_id")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, BuildReport(testBundle())))

	var got []api.RegionReportV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "geneA", got[0].Name)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
