// internal/index/cache.go
package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"panelidx/internal/panel"
	"panelidx/internal/scan"
)

// Options controls index construction.
type Options struct {
	// Threads is the scan worker count; <= 0 means one per CPU.
	Threads int
	// Warn receives non-fatal diagnostics (skipped region lines).
	Warn panel.WarnFunc
	// OnBuild, if set, is called once when a full build starts (i.e. the
	// cache was not used). Tests hook this to assert cache hits.
	OnBuild func()
}

// Fingerprint identifies the inputs by base name and byte size, not by
// content: `<region-base>.<region-size>_<ref-base>.<ref-size>`. For the
// reference directory the size is the sum of its chromosome files' sizes.
// Unchanged names and sizes mean the cached index is reused as-is.
func Fingerprint(refDir, regionFile string) (string, error) {
	st, err := os.Stat(regionFile)
	if err != nil {
		return "", fmt.Errorf("region file: %w", err)
	}
	refSize, err := referenceSize(refDir)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%d_%s.%d",
		filepath.Base(regionFile), st.Size(),
		filepath.Base(refDir), refSize), nil
}

func referenceSize(dir string) (int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reference %s: %w", dir, err)
	}
	var total int64
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !(strings.HasSuffix(n, ".fa") || strings.HasSuffix(n, ".fa.gz")) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, fmt.Errorf("reference %s: %w", dir, err)
		}
		total += info.Size()
	}
	return total, nil
}

// CachePath returns the cache file location, colocated with the region file.
func CachePath(refDir, regionFile string) (string, error) {
	fp, err := Fingerprint(refDir, regionFile)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(regionFile), fp+".idx"), nil
}

// LoadOrBuild is the sole entry point: it returns the cached bundle when a
// file for the current fingerprint exists, building and persisting a new one
// otherwise. A cache file that exists but cannot be decoded is an error —
// never a silent rebuild.
func LoadOrBuild(ctx context.Context, refDir, regionFile string, opts Options) (*Bundle, error) {
	path, err := CachePath(refDir, regionFile)
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path)
	switch {
	case err == nil:
		defer func() { _ = fh.Close() }()
		b, derr := DecodeFrom(fh)
		if derr != nil {
			return nil, fmt.Errorf("cache %s: %w", path, derr)
		}
		return b, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("cache %s: %w", path, err)
	}

	b, err := Build(ctx, refDir, regionFile, opts)
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(path, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Build constructs a bundle from scratch: panel first (single-threaded,
// frozen before any scan task starts), then the parallel genome-wide scan.
func Build(ctx context.Context, refDir, regionFile string, opts Options) (*Bundle, error) {
	if opts.OnBuild != nil {
		opts.OnBuild()
	}
	res, ref, err := panel.Build(refDir, regionFile, opts.Warn)
	if err != nil {
		return nil, err
	}
	refMap, err := scan.ScanReference(ctx, ref, res.Panel, opts.Threads)
	if err != nil {
		return nil, err
	}
	return &Bundle{
		Regions:    res.Regions,
		RegionSeqs: res.RegionSeqs,
		Panel:      res.Panel.Map(),
		Reference:  refMap,
	}, nil
}

// writeAtomic persists the bundle via a temp file + rename in the target
// directory, so a crash never leaves a truncated cache behind.
func writeAtomic(path string, b *Bundle) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("cache %s: %w", path, err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if err := b.EncodeTo(tmp); err != nil {
		return fmt.Errorf("cache %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("cache %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cache %s: %w", path, err)
	}
	return nil
}
