// Package fileutil provides the directory scanning layer of specmonkey.
//
// ScanDirectory walks a source tree and produces the list of regular files
// that the crawler should process, applying three filters in order:
//
//   - root-relative subpath exclusion (e.g. "vendor", "third_party/icu")
//   - directory-name exclusion (e.g. ".git", "node_modules")
//   - case-insensitive extension matching (leading dot optional)
//
// Scanning is error-tolerant: a root that cannot be accessed is fatal, but
// per-entry failures (an unreadable file or subdirectory) are collected in
// ScanResult.Errors and the walk continues. Callers must not depend on the
// ordering of the returned file list.
package fileutil
