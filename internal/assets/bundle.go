package assets

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReadFileFromBundle reads a single file from a character asset bundle
// (a zip archive of sprite sheets and other referenced assets).
func ReadFileFromBundle(bundlePath, virtualPath string) ([]byte, error) {
	r, err := zip.OpenReader(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("open bundle %s: %w", bundlePath, err)
	}
	defer r.Close()

	lowerTarget := strings.ToLower(virtualPath)
	for _, f := range r.File {
		if strings.ToLower(f.Name) == lowerTarget {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s in %s: %w", virtualPath, bundlePath, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s not found in %s", virtualPath, bundlePath)
}

// WriteBundle creates a character asset bundle (zip) with the given
// files using Deflate compression.
func WriteBundle(outputPath string, files map[string][]byte) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	defer f.Close()

	return WriteBundleToWriter(f, files)
}

// WriteBundleToWriter writes a character asset bundle (zip) to w using
// Deflate compression.
func WriteBundleToWriter(w io.Writer, files map[string][]byte) error {
	zw := zip.NewWriter(w)

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		header := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("create entry %s: %w", name, err)
		}
		if _, err := fw.Write(files[name]); err != nil {
			return fmt.Errorf("write entry %s: %w", name, err)
		}
	}

	return zw.Close()
}

// IterateBundle iterates over entries in a character asset bundle,
// calling fn for each entry.
func IterateBundle(bundlePath string, fn func(name string, open func() (io.ReadCloser, error)) error) error {
	r, err := zip.OpenReader(bundlePath)
	if err != nil {
		return fmt.Errorf("open bundle %s: %w", bundlePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := fn(f.Name, f.Open); err != nil {
			return err
		}
	}
	return nil
}

// BuildFileIndex builds a case-insensitive file index across one or more
// character asset bundles. Later bundles override earlier ones — the
// same layering rule the teacher used for pk3 load order, reused here so
// a character's override bundle can replace individual sprite sheets
// without repacking the base bundle. Returns lowered path → source
// bundle path.
func BuildFileIndex(bundlePaths []string) (map[string]string, error) {
	index := make(map[string]string)
	for _, bundlePath := range bundlePaths {
		r, err := zip.OpenReader(bundlePath)
		if err != nil {
			return nil, fmt.Errorf("open bundle %s: %w", bundlePath, err)
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			index[strings.ToLower(f.Name)] = bundlePath
		}
		r.Close()
	}
	return index, nil
}

// ExtractFilesFromBundles reads the given virtual paths out of whichever
// bundle fileIndex says holds them, grouping reads by source bundle so
// each archive is opened once. Returns lowered path → file data for
// every path found; paths absent from fileIndex are silently skipped.
func ExtractFilesFromBundles(paths []string, fileIndex map[string]string) (map[string][]byte, error) {
	byBundle := make(map[string][]string)
	for _, path := range paths {
		lower := strings.ToLower(path)
		bundle, ok := fileIndex[lower]
		if !ok {
			continue
		}
		byBundle[bundle] = append(byBundle[bundle], lower)
	}

	result := make(map[string][]byte)

	for bundlePath, wantedPaths := range byBundle {
		wanted := make(map[string]bool, len(wantedPaths))
		for _, p := range wantedPaths {
			wanted[p] = true
		}

		r, err := zip.OpenReader(bundlePath)
		if err != nil {
			return nil, fmt.Errorf("open bundle %s: %w", bundlePath, err)
		}

		for _, f := range r.File {
			lower := strings.ToLower(f.Name)
			if !wanted[lower] {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				r.Close()
				return nil, fmt.Errorf("open %s in %s: %w", f.Name, bundlePath, err)
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				r.Close()
				return nil, fmt.Errorf("read %s in %s: %w", f.Name, bundlePath, err)
			}
			result[lower] = data
			delete(wanted, lower)
		}
		r.Close()
	}

	return result, nil
}
