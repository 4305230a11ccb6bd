// internal/app/app_test.go
package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"panelidx/internal/index"
	"panelidx/pkg/api"
)

const chr1Seq = "ACGGTCAATGCTAGCTAGGTAACGGTTCAATCGGATCAAGGTCCTAGCTA" // 50 bp

func setup(t *testing.T) (refDir, regionFile string) {
	t.Helper()
	refDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(refDir, "chr1.fa"), []byte(">chr1\n"+chr1Seq+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	regionFile = filepath.Join(t.TempDir(), "panel.tsv")
	if err := os.WriteFile(regionFile, []byte("chr1\t10\t25\tgeneA\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return refDir, regionFile
}

func TestRunTextOutput(t *testing.T) {
	refDir, regionFile := setup(t)
	var out, errb bytes.Buffer

	code := Run([]string{"--reference", refDir, "--regions", regionFile, "--threads", "1"}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errb.String())
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "region_id\t") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "geneA") || !strings.Contains(lines[1], "chr1") {
		t.Errorf("unexpected row: %q", lines[1])
	}

	// The build must leave a cache file next to the region file.
	cachePath, err := index.CachePath(refDir, regionFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Errorf("cache file not written: %v", err)
	}
}

func TestRunJSONOutput(t *testing.T) {
	refDir, regionFile := setup(t)
	var out, errb bytes.Buffer

	code := Run([]string{"--reference", refDir, "--regions", regionFile, "--output", "json", "--no-cache"}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errb.String())
	}
	var rows []api.RegionReportV1
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(rows) != 1 || rows[0].Name != "geneA" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[0].UniqueKeys != 2 {
		t.Errorf("one 16-bp region should give a unique fwd/rc key pair, got %d", rows[0].UniqueKeys)
	}

	// --no-cache must not persist anything.
	cachePath, err := index.CachePath(refDir, regionFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cachePath); err == nil {
		t.Error("--no-cache should not write a cache file")
	}
}

func TestRunUsageErrors(t *testing.T) {
	var out, errb bytes.Buffer
	if code := Run([]string{"--regions", "x.tsv"}, &out, &errb); code != 2 {
		t.Errorf("missing --reference: exit %d, want 2", code)
	}
	errb.Reset()
	if code := Run([]string{"--reference", "r", "--regions", "x.tsv", "--output", "xml"}, &out, &errb); code != 2 {
		t.Errorf("bad --output: exit %d, want 2", code)
	}
}

func TestRunRuntimeError(t *testing.T) {
	refDir, _ := setup(t)
	var out, errb bytes.Buffer
	code := Run([]string{"--reference", refDir, "--regions", filepath.Join(refDir, "missing.tsv")}, &out, &errb)
	if code != 1 {
		t.Errorf("missing region file: exit %d, want 1", code)
	}
	if errb.Len() == 0 {
		t.Error("expected an error message on stderr")
	}
}

func TestRunVersion(t *testing.T) {
	var out, errb bytes.Buffer
	if code := Run([]string{"--version"}, &out, &errb); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "panelidx version") {
		t.Errorf("unexpected version output: %q", out.String())
	}
}
