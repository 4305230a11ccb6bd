// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Record is one parsed FASTA sequence. Seq is uppercased on load.
type Record struct {
	Name string
	Seq  []byte
}

// ReadRecords parses every record from r. Sequence lines are concatenated
// and uppercased; record names are the header up to the first whitespace.
func ReadRecords(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		recs []Record
		name string
		seq  = make([]byte, 0, 1<<20)
	)
	flush := func() {
		if name == "" && len(seq) == 0 {
			return
		}
		recs = append(recs, Record{Name: name, Seq: bytes.ToUpper(append([]byte(nil), seq...))})
	}
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if name != "" || len(seq) > 0 {
				flush()
				seq = seq[:0]
			}
			name = parseHeaderName(line[1:])
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fasta scan: %w", err)
	}
	flush()
	return recs, nil
}

// LoadReference loads every chromosome file in dir (*.fa and *.fa.gz, in
// lexical filename order) and returns the ordered records of the whole
// reference. A file with no FASTA record is an error.
func LoadReference(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reference %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".fa") || strings.HasSuffix(n, ".fa.gz") {
			files = append(files, n)
		}
	}
	sort.Strings(files)

	var ref []Record
	for _, f := range files {
		recs, err := loadFile(filepath.Join(dir, f))
		if err != nil {
			return nil, err
		}
		ref = append(ref, recs...)
	}
	return ref, nil
}

// LoadChr loads one chromosome by name from dir/<name>.fa (or .fa.gz).
// If the file holds several records the one matching name wins, otherwise
// the first is returned.
func LoadChr(dir, name string) (Record, error) {
	path := filepath.Join(dir, name+".fa")
	if _, err := os.Stat(path); err != nil {
		gz := path + ".gz"
		if _, gerr := os.Stat(gz); gerr != nil {
			return Record{}, fmt.Errorf("chromosome %s: %w", name, err)
		}
		path = gz
	}
	recs, err := loadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("chromosome %s: %w", name, err)
	}
	for _, r := range recs {
		if r.Name == name {
			return r, nil
		}
	}
	return recs[0], nil
}

func loadFile(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	recs, err := ReadRecords(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: no FASTA record", path)
	}
	return recs, nil
}

func parseHeaderName(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
