// internal/panel/loader_test.go
package panel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelidx/internal/dna"
	"panelidx/internal/genome"
	"panelidx/internal/kmer"
)

const chr1Seq = "ACGGTCAATGCTAGCTAGGTAACGGTTCAATCGGATCAAGGTCCTAGCTA" // 50 bp

func writeRef(t *testing.T, chroms map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, seq := range chroms {
		err := os.WriteFile(filepath.Join(dir, name+".fa"), []byte(">"+name+"\n"+seq+"\n"), 0o644)
		require.NoError(t, err)
	}
	return dir
}

func writeRegions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildSingleRegion(t *testing.T) {
	refDir := writeRef(t, map[string]string{"chr1": chr1Seq})
	regionPath := writeRegions(t, "chr1\t10\t25\tgeneA\n")

	res, ref, err := Build(refDir, regionPath, nil)
	require.NoError(t, err)
	require.Len(t, ref, 1)
	require.Len(t, res.Regions, 1)

	want := chr1Seq[9:25] // 1-based inclusive [10, 25]
	assert.Equal(t, want, res.RegionSeqs[0])
	assert.Equal(t, Region{Chrom: "chr1", Start: 10, End: 25, Name: "geneA"}, res.Regions[0])

	// Exactly one window: a forward/reverse key pair, no collision.
	require.Equal(t, 2, res.Panel.Len())
	fwd := res.Panel.Get(kmer.Encode([]byte(want)))
	assert.Equal(t, genome.Coord{Contig: 0, Pos: 1, Strand: genome.Forward}, fwd)
	rev := res.Panel.Get(kmer.Encode(dna.RevComp([]byte(want))))
	assert.Equal(t, genome.Coord{Contig: 0, Pos: 16, Strand: genome.Reverse}, rev)
}

func TestBuildIdenticalRegionsCollide(t *testing.T) {
	refDir := writeRef(t, map[string]string{"chr1": chr1Seq})
	regionPath := writeRegions(t, "chr1\t10\t25\tgeneA\nchr1\t10\t25\tgeneA_copy\n")

	res, _, err := Build(refDir, regionPath, nil)
	require.NoError(t, err)
	require.Len(t, res.Regions, 2)

	for k, c := range res.Panel.Map() {
		assert.True(t, c.IsDuplicate(), "key %v should be duplicate", k)
	}
	assert.True(t, res.Panel.FilterSet().IsEmpty())
}

func TestBuildMissingChromosomeIsFatal(t *testing.T) {
	refDir := writeRef(t, map[string]string{"chr1": chr1Seq})
	regionPath := writeRegions(t, "chr1\t10\t25\tgeneA\nchr9\t1\t20\tgeneB\n")

	_, _, err := Build(refDir, regionPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chr9")
}

func TestBuildRegionOutOfBounds(t *testing.T) {
	refDir := writeRef(t, map[string]string{"chr1": chr1Seq})
	regionPath := writeRegions(t, "chr1\t40\t80\tgeneA\n")

	_, _, err := Build(refDir, regionPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geneA")
}
