package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".md", "cpp").
	// The leading dot is optional and matching is case-insensitive.
	// An empty list includes every file.
	Extensions []string
	// ExcludeSubpaths is a list of root-relative path prefixes to drop
	// (e.g., "vendor", "third_party/icu"). Applied before the extension filter.
	ExcludeSubpaths []string
	// ExcludeDirs is a list of directory names to exclude wherever they
	// appear in the tree (e.g., ".git", "node_modules")
	ExcludeDirs []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the paths of all matched regular files
	Files []string
	// Errors contains non-fatal errors encountered during scanning
	Errors []error
}

// ScanDirectory walks root recursively and returns every regular file that
// survives the subpath and extension filters.
//
// A root that cannot be read is fatal; per-entry errors (permission denied
// on a single file or subdirectory) are collected in ScanResult.Errors and
// scanning continues. Result ordering is not part of the contract.
func ScanDirectory(root string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	// Extension set for fast lookup, normalized to lowercase without the
	// leading dot so ".ts" and "ts" configure the same filter
	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		extMap[normalizeExtension(ext)] = true
	}

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	subpaths := make([]string, 0, len(opts.ExcludeSubpaths))
	for _, sub := range opts.ExcludeSubpaths {
		subpaths = append(subpaths, filepath.ToSlash(filepath.Clean(sub)))
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || excludedSubpath(root, path, subpaths) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only regular files are yielded; symlinks and special files are
		// skipped without being recorded as errors
		if !d.Type().IsRegular() {
			return nil
		}

		if excludedSubpath(root, path, subpaths) {
			return nil
		}

		if len(extMap) > 0 {
			ext := normalizeExtension(filepath.Ext(d.Name()))
			if !extMap[ext] {
				return nil
			}
		}

		result.Files = append(result.Files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}

// normalizeExtension lowercases an extension and strips the leading dot.
func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// excludedSubpath reports whether path, taken relative to root, falls under
// one of the excluded root-relative prefixes.
func excludedSubpath(root, path string, subpaths []string) bool {
	if len(subpaths) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, sub := range subpaths {
		if rel == sub || strings.HasPrefix(rel, sub+"/") {
			return true
		}
	}
	return false
}
