// Package models defines the value types shared across the specmonkey
// pipeline.
package models

// Link is a single matched URL occurrence in a scanned file.
//
// Domain is always lowercase: it is either the whitelist entry that matched
// the URL's host (so sub.example.com groups under example.com) or, when no
// whitelist is configured, the lowercased host itself. URL preserves the
// original text of the match, including casing and any fragment.
//
// A Link is immutable once constructed and owned by the collection holding it.
type Link struct {
	URL        string `json:"url"`
	Domain     string `json:"domain"`
	Filepath   string `json:"filepath"`
	LineNumber int    `json:"line_number"`
}
